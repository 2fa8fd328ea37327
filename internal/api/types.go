// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a backend identifier. The backend emits numeric ids; ID accepts
// numbers and strings and always stores the decimal text.
type ID string

// UnmarshalJSON accepts 42 and "42".
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// User is the account as returned by the backend.
type User struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// SessionResponse is the body of POST /sessions.
type SessionResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Exercise describes one exercise of a muscle group.
type Exercise struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Series      int    `json:"series"`
	Repetitions int    `json:"repetitions"`
	Thumb       string `json:"thumb"`
	Demo        string `json:"demo"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// HistoryEntry is one completed exercise.
type HistoryEntry struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Hour      string `json:"hour"`
	CreatedAt string `json:"created_at"`
}

// HistoryByDay groups history entries under a day title.
type HistoryByDay struct {
	Title string         `json:"title"`
	Data  []HistoryEntry `json:"data"`
}

// NewUser is the body of POST /users.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT /users. Password fields are omitted when
// the password is not being changed.
type ProfileUpdate struct {
	Name        string `json:"name"`
	Password    string `json:"password,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
}
