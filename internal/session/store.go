// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the signed-in user for the lifetime of the process.
//
// A Store is created once by the command layer and passed to whoever needs
// it. It restores the persisted credential at startup, signs users in
// against the backend, merges profile changes and signs out. Every mutation
// is written through to the credential store before it becomes visible in
// memory, so the persisted copy never lags what a consumer has observed.
// Consumers follow changes through Subscribe.
package session

import (
	"context"
	"errors"
	"sync"

	"gymlog/cli/internal/api"
	apperr "gymlog/cli/internal/errors"
	"gymlog/cli/internal/logging"
)

var (
	// ErrNotRestored is returned by mutations attempted before Restore finished.
	ErrNotRestored = errors.New("session: restore has not completed")
	// ErrNotSignedIn is returned by UpdateProfile when there is no session.
	ErrNotSignedIn = apperr.New(apperr.Unauthenticated, "you are not signed in")
)

// Authenticator exchanges credentials for a user and token.
type Authenticator interface {
	CreateSession(ctx context.Context, email, password string) (*api.SessionResponse, error)
}

// Storage persists the serialized session under one fixed key.
// LoadSession returns (nil, nil) when nothing is stored.
type Storage interface {
	LoadSession() ([]byte, error)
	SaveSession(data []byte) error
	ClearSession() error
}

type subscriber struct {
	id   uint64
	fn   func(Snapshot)
	seen uint64 // version of the last snapshot delivered to fn
}

// Store holds the current Session.
type Store struct {
	auth    Authenticator
	storage Storage
	log     logging.Logger

	mu      sync.Mutex
	current Session
	status  Status
	version uint64

	restoreOnce sync.Once

	subMu   sync.Mutex
	subs    []*subscriber
	nextSub uint64
}

// NewStore returns a Store in StatusRestoring. Call Restore once at startup.
func NewStore(auth Authenticator, storage Storage, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		auth:    auth,
		storage: storage,
		log:     log.With("component", "session"),
		status:  StatusRestoring,
	}
}

// Snapshot returns the current status and session.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Session: s.current}
}

// Current returns the current session (zero value when signed out).
func (s *Store) Current() Session {
	return s.Snapshot().Session
}

// Token returns the bearer token of the current session, or "".
func (s *Store) Token() string {
	return s.Current().AuthToken
}

// Restore loads the persisted credential. It runs once per Store; later calls
// wait for the first one and return the current snapshot. Read failures and
// malformed data leave the user signed out instead of failing.
func (s *Store) Restore(ctx context.Context) Snapshot {
	s.restoreOnce.Do(func() { s.restore(ctx) })
	return s.Snapshot()
}

func (s *Store) restore(ctx context.Context) {
	var next Session
	data, err := s.storage.LoadSession()
	switch {
	case err != nil:
		s.log.Warn(ctx, "could not read persisted session, continuing signed out", "error", err)
	case len(data) == 0:
		s.log.Debug(ctx, "no persisted session")
	default:
		restored, ok := decode(data)
		if !ok {
			s.log.Warn(ctx, "persisted session is malformed, continuing signed out")
			break
		}
		next = restored
		s.log.Debug(ctx, "session restored", "user_id", next.UserID)
	}

	s.mu.Lock()
	s.current = next
	s.status = statusFor(next)
	snap, v := s.bumpLocked()
	s.mu.Unlock()

	s.publish(snap, v)
}

// SignIn authenticates against the backend and, on success, replaces and
// persists the session. On failure the session and storage are untouched and
// the backend or transport error is returned as is. No retry is attempted.
func (s *Store) SignIn(ctx context.Context, email, password string) (Session, error) {
	if err := s.requireRestored(); err != nil {
		return Session{}, err
	}

	resp, err := s.auth.CreateSession(ctx, email, password)
	if err != nil {
		s.log.Debug(ctx, "sign-in rejected", "error", err)
		return Session{}, err
	}
	if resp == nil || resp.User == nil || resp.User.ID == "" || resp.Token == "" {
		return Session{}, apperr.New(apperr.Transport, "sign-in response is missing the user or token")
	}

	next := Session{
		UserID:    string(resp.User.ID),
		Name:      resp.User.Name,
		Email:     resp.User.Email,
		AvatarRef: resp.User.Avatar,
		AuthToken: resp.Token,
	}
	return s.commit(ctx, "sign_in", func(Session) (Session, error) { return next, nil })
}

// UpdateProfile merges p into the current session and persists it. It does
// not call the backend; callers confirm the change with the server first.
func (s *Store) UpdateProfile(ctx context.Context, p Patch) (Session, error) {
	if err := s.requireRestored(); err != nil {
		return Session{}, err
	}
	return s.commit(ctx, "update_profile", func(cur Session) (Session, error) {
		if cur.Empty() {
			return Session{}, ErrNotSignedIn
		}
		if p.Name != nil {
			cur.Name = *p.Name
		}
		if p.AvatarRef != nil {
			cur.AvatarRef = *p.AvatarRef
		}
		return cur, nil
	})
}

// SignOut clears the session and the persisted copy.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.requireRestored(); err != nil {
		return err
	}
	_, err := s.commit(ctx, "sign_out", func(Session) (Session, error) { return Session{}, nil })
	return err
}

// Subscribe registers fn for every published snapshot and immediately
// delivers the current one. fn runs synchronously and must not call
// Subscribe or the returned cancel function.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	snap, v := s.versioned()
	s.subs = append(s.subs, &subscriber{id: id, fn: fn, seen: v})
	fn(snap)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// commit applies mutate to the current session while holding the lock. The
// result is persisted first; memory only changes once storage accepted it.
func (s *Store) commit(ctx context.Context, op string, mutate func(cur Session) (Session, error)) (Session, error) {
	s.mu.Lock()
	next, err := mutate(s.current)
	if err != nil {
		s.mu.Unlock()
		return Session{}, err
	}
	if err := s.persistLocked(next); err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "could not persist session, keeping previous state", "op", op, "error", err)
		return Session{}, apperr.Wrap(apperr.Storage, "could not save the session", err)
	}
	s.current = next
	s.status = statusFor(next)
	snap, v := s.bumpLocked()
	s.mu.Unlock()

	s.log.Debug(ctx, "session updated", "op", op, "status", snap.Status.String())
	s.publish(snap, v)
	return next, nil
}

func (s *Store) persistLocked(next Session) error {
	if next.Empty() {
		return s.storage.ClearSession()
	}
	data, err := encode(next)
	if err != nil {
		return err
	}
	return s.storage.SaveSession(data)
}

func (s *Store) bumpLocked() (Snapshot, uint64) {
	s.version++
	return Snapshot{Status: s.status, Session: s.current}, s.version
}

func (s *Store) versioned() (Snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Session: s.current}, s.version
}

// publish delivers snap to every subscriber that has not seen it or a
// newer snapshot yet.
func (s *Store) publish(snap Snapshot, version uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		if version <= sub.seen {
			continue
		}
		sub.seen = version
		sub.fn(snap)
	}
}

func (s *Store) requireRestored() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRestoring {
		return ErrNotRestored
	}
	return nil
}
