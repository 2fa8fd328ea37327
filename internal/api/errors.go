// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperr "gymlog/cli/internal/errors"
)

// AppError is a structured error returned by the backend. Message is meant
// for the user.
type AppError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.StatusCode)
}

// Unauthorized reports whether the backend rejected the credentials or token.
func (e *AppError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Unwrap lets errors.Is/As see the application kind.
func (e *AppError) Unwrap() error {
	return apperr.New(apperr.Application, e.Message)
}

// TransportError covers everything without a backend message: timeouts,
// refused connections, unexpected statuses and undecodable bodies.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return apperr.Wrap(apperr.Transport, e.Op, e.Err)
}

// errorBody is the backend's error payload: {"status":"error","message":"..."}.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// decodeError turns a non-2xx response into an *AppError when the body
// carries a message, and into a *TransportError otherwise.
func decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		return &AppError{Op: op, StatusCode: resp.StatusCode, Message: strings.TrimSpace(body.Message)}
	}
	detail := strings.TrimSpace(string(raw))
	if len(detail) > 200 {
		detail = detail[:200] + "..."
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(detail)}
}

// Message returns the backend message carried by err, or fallback when err
// has none (transport failures, local errors).
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Unauthorized()
	}
	var tErr *TransportError
	return errors.As(err, &tErr) && tErr.StatusCode == http.StatusUnauthorized
}
