// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
)

// CreateUser registers a new account. It does not sign in.
func (c *Client) CreateUser(ctx context.Context, u NewUser) error {
	return c.do(ctx, request{
		op:     "create user",
		method: http.MethodPost,
		path:   c.endpoints.Users,
		body:   u,
	})
}

// UpdateUser changes the signed-in user's name and, optionally, password.
func (c *Client) UpdateUser(ctx context.Context, p ProfileUpdate) error {
	return c.do(ctx, request{
		op:     "update user",
		method: http.MethodPut,
		path:   c.endpoints.Users,
		body:   p,
	})
}

// UpdateAvatar uploads a new profile photo as the multipart field "avatar"
// and returns the updated user record.
func (c *Client) UpdateAvatar(ctx context.Context, r io.Reader, filename, contentType string) (*User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename=%q`, filepath.Base(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, &TransportError{Op: "update avatar", Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &TransportError{Op: "update avatar", Err: fmt.Errorf("read photo: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Op: "update avatar", Err: err}
	}

	var out User
	err = c.do(ctx, request{
		op:          "update avatar",
		method:      http.MethodPatch,
		path:        c.endpoints.Avatar,
		raw:         &buf,
		contentType: mw.FormDataContentType(),
		out:         &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
