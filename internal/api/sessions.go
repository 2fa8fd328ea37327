// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/http"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSession exchanges credentials for a user record and a token.
// A 401 comes back as *AppError carrying the backend message.
func (c *Client) CreateSession(ctx context.Context, email, password string) (*SessionResponse, error) {
	var out SessionResponse
	err := c.do(ctx, request{
		op:     "create session",
		method: http.MethodPost,
		path:   c.endpoints.Sessions,
		body:   credentials{Email: email, Password: password},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
