// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package apitest runs an in-memory workout backend for tests.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"gymlog/cli/internal/api"
)

// Messages returned by the fake backend.
const (
	MsgBadCredentials = "Incorrect e-mail and/or password."
	MsgEmailTaken     = "This e-mail is already in use."
	MsgInvalidToken   = "Invalid token."
	MsgOldPassword    = "Old password does not match."
	MsgNeedOld        = "You must provide the old password to set a new one."
	MsgNotFound       = "Exercise not found."
)

var signingKey = []byte("apitest-signing-key")

// Request is one request seen by the server.
type Request struct {
	Method string
	Path   string
	Auth   string
}

type account struct {
	user     api.User
	password string
}

type done struct {
	exerciseID api.ID
	at         time.Time
}

type failure struct {
	status  int
	message string
}

// Server is a fake backend. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	// Now stamps history records.
	Now func() time.Time
	// Delay, when set, is slept before every response.
	Delay time.Duration

	mu        sync.Mutex
	nextID    int
	accounts  map[string]*account // by e-mail, case-sensitive
	tokens    map[string]string   // token -> e-mail
	exercises []api.Exercise
	history   map[api.ID][]done
	failures  map[string]failure // "METHOD /path" -> canned error
	requests  []Request
}

// New starts a server with the default catalogue and registers Close with t.
func New(t testing.TB) *Server {
	s := &Server{
		Now:      time.Now,
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		history:  make(map[api.ID][]done),
		failures: make(map[string]failure),
	}
	s.exercises = []api.Exercise{
		{ID: "1", Name: "Pulley front", Group: "back", Series: 3, Repetitions: 12, Thumb: "pulley-front.png", Demo: "pulley-front.gif"},
		{ID: "2", Name: "Unilateral row", Group: "back", Series: 3, Repetitions: 12, Thumb: "row.png", Demo: "row.gif"},
		{ID: "3", Name: "Bench press", Group: "chest", Series: 4, Repetitions: 10, Thumb: "bench.png", Demo: "bench.gif"},
		{ID: "4", Name: "Hammer curl", Group: "biceps", Series: 3, Repetitions: 12, Thumb: "hammer.png", Demo: "hammer.gif"},
		{ID: "5", Name: "Squat", Group: "legs", Series: 4, Repetitions: 8, Thumb: "squat.png", Demo: "squat.gif"},
	}
	s.nextID = 1
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.delay)
	r.Use(s.cannedFailures)

	r.Post("/sessions", s.createSession)
	r.Post("/users", s.createUser)
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Put("/users", s.updateUser)
		r.Patch("/users/avatar", s.updateAvatar)
		r.Get("/groups", s.groups)
		r.Get("/exercises/bygroup/{group}", s.exercisesByGroup)
		r.Get("/exercises/{id}", s.exercise)
		r.Get("/history", s.listHistory)
		r.Post("/history", s.createHistory)
	})
	return r
}

// AddUser registers an account directly and returns its record.
func (s *Server) AddUser(name, email, password string) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(name, email, password)
}

func (s *Server) addUserLocked(name, email, password string) api.User {
	u := api.User{ID: api.ID(strconv.Itoa(s.nextID)), Name: name, Email: email}
	s.nextID++
	s.accounts[u.Email] = &account{user: u, password: password}
	return u
}

// SetExercises replaces the catalogue. Groups are derived from it.
func (s *Server) SetExercises(list []api.Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises = append([]api.Exercise(nil), list...)
}

// User returns the stored record for email.
func (s *Server) User(email string) (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return api.User{}, false
	}
	return a.user, true
}

// Password returns the stored password for email.
func (s *Server) Password(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[email]; ok {
		return a.password
	}
	return ""
}

// Fail makes every request to method+path answer with status and, when
// message is non-empty, a structured error body. An empty message yields a
// plain-text body.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Requests returns a copy of the requests seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestCount returns how many requests hit method+path.
func (s *Server) RequestCount(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Delay > 0 {
			select {
			case <-time.After(s.Delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cannedFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if f.message == "" {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, http.StatusText(f.status))
			return
		}
		writeError(w, f.status, f.message)
	})
}

type userKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		email, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, email)))
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	s.mu.Lock()
	a, ok := s.accounts[in.Email]
	if !ok || a.password != in.Password {
		s.mu.Unlock()
		writeError(w, http.StatusUnauthorized, MsgBadCredentials)
		return
	}
	token, err := issueToken(a.user.ID, s.Now())
	if err != nil {
		s.mu.Unlock()
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	s.tokens[token] = a.user.Email
	user := a.user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, api.SessionResponse{User: &user, Token: token, RefreshToken: "refresh-" + string(user.ID)})
}

// issueToken signs an HS256 token valid for one day.
func issueToken(sub api.ID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   string(sub),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		ID:        strconv.FormatInt(now.UnixNano(), 36),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in api.NewUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Provide name, e-mail and password.")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.accounts[in.Email]; taken {
		writeError(w, http.StatusBadRequest, MsgEmailTaken)
		return
	}
	s.addUserLocked(in.Name, in.Email, in.Password)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) currentAccount(r *http.Request) *account {
	email, _ := r.Context().Value(userKey{}).(string)
	return s.accounts[email]
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var in api.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.currentAccount(r)
	if in.Password != "" {
		if in.OldPassword == "" {
			writeError(w, http.StatusBadRequest, MsgNeedOld)
			return
		}
		if in.OldPassword != a.password {
			writeError(w, http.StatusBadRequest, MsgOldPassword)
			return
		}
		a.password = in.Password
	}
	if in.Name != "" {
		a.user.Name = in.Name
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) updateAvatar(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Send the photo in the avatar field.")
		return
	}
	_ = file.Close()

	s.mu.Lock()
	a := s.currentAccount(r)
	a.user.Avatar = fmt.Sprintf("%s-%s", a.user.ID, header.Filename)
	user := a.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) groups(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	seen := map[string]bool{}
	out := []string{}
	for _, e := range s.exercises {
		if !seen[e.Group] {
			seen[e.Group] = true
			out = append(out, e.Group)
		}
	}
	s.mu.Unlock()
	sort.Strings(out)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) exercisesByGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	s.mu.Lock()
	out := []api.Exercise{}
	for _, e := range s.exercises {
		if strings.EqualFold(e.Group, group) {
			out = append(out, e)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) findExercise(id api.ID) (api.Exercise, bool) {
	for _, e := range s.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return api.Exercise{}, false
}

func (s *Server) exercise(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	e, ok := s.findExercise(api.ID(chi.URLParam(r, "id")))
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) createHistory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ExerciseID api.ID `json:"exercise_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findExercise(in.ExerciseID); !ok {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	a := s.currentAccount(r)
	s.history[a.user.ID] = append(s.history[a.user.ID], done{exerciseID: in.ExerciseID, at: s.Now()})
	w.WriteHeader(http.StatusCreated)
}

// listHistory groups records by calendar day, newest day and newest entry first.
func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a := s.currentAccount(r)
	records := append([]done(nil), s.history[a.user.ID]...)
	var entries []api.HistoryEntry
	sort.SliceStable(records, func(i, j int) bool { return records[i].at.After(records[j].at) })
	for i, d := range records {
		e, _ := s.findExercise(d.exerciseID)
		entries = append(entries, api.HistoryEntry{
			ID:        api.ID(strconv.Itoa(i + 1)),
			Name:      e.Name,
			Group:     e.Group,
			Hour:      d.at.Format("15:04"),
			CreatedAt: d.at.UTC().Format(time.RFC3339),
		})
	}
	s.mu.Unlock()

	out := []api.HistoryByDay{}
	for i, e := range entries {
		title := records[i].at.Format("02.01.06")
		if n := len(out); n > 0 && out[n-1].Title == title {
			out[n-1].Data = append(out[n-1].Data, e)
			continue
		}
		out = append(out, api.HistoryByDay{Title: title, Data: []api.HistoryEntry{e}})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}
