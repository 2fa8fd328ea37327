// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"encoding/json"
	"strings"
)

// Session is the in-memory record of the signed-in user and its credentials.
// The zero value is the unauthenticated session.
type Session struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarRef string `json:"avatar_ref"`
	AuthToken string `json:"auth_token"`
}

// Empty reports whether s carries no user.
func (s Session) Empty() bool { return s.UserID == "" }

// Status is the store lifecycle as seen by consumers.
type Status int

const (
	// StatusRestoring means the persisted credential has not been read yet.
	StatusRestoring Status = iota
	// StatusUnauthenticated means restore finished (or sign-out happened) with no user.
	StatusUnauthenticated
	// StatusAuthenticated means a user session is present.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusRestoring:
		return "restoring"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the store published to subscribers.
type Snapshot struct {
	Status  Status
	Session Session
}

// Patch lists the profile fields UpdateProfile may change. Nil fields are kept.
type Patch struct {
	Name      *string
	AvatarRef *string
}

func statusFor(s Session) Status {
	if s.Empty() {
		return StatusUnauthenticated
	}
	return StatusAuthenticated
}

// encode is the PersistedCredential format.
func encode(s Session) ([]byte, error) {
	return json.Marshal(s)
}

// decode parses a PersistedCredential. ok is false when data does not hold
// a usable session (bad JSON, missing user id or token).
func decode(data []byte) (s Session, ok bool) {
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false
	}
	if strings.TrimSpace(s.UserID) == "" || strings.TrimSpace(s.AuthToken) == "" {
		return Session{}, false
	}
	return s, true
}
