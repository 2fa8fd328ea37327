// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"net/url"
	"strings"
)

// Endpoints contains the REST paths used by the client, relative to the base URL.
type Endpoints struct {
	Sessions         string // POST
	Users            string // POST, PUT
	Avatar           string // PATCH multipart
	Groups           string // GET
	ExercisesByGroup string // GET + group
	Exercises        string // GET + id
	History          string // GET, POST
	AvatarFiles      string // static avatar images
	Thumbs           string // static exercise thumbnails
	Demos            string // static exercise animations
}

// DefaultEndpoints returns the paths served by the workout backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Sessions:         "/sessions",
		Users:            "/users",
		Avatar:           "/users/avatar",
		Groups:           "/groups",
		ExercisesByGroup: "/exercises/bygroup/",
		Exercises:        "/exercises/",
		History:          "/history",
		AvatarFiles:      "/avatar/",
		Thumbs:           "/exercise/thumb/",
		Demos:            "/exercise/demo/",
	}
}

// AvatarURL returns the public URL of an avatar reference, or "" for none.
func (c *Client) AvatarURL(ref string) string {
	return c.fileURL(c.endpoints.AvatarFiles, ref)
}

// ThumbURL returns the public URL of an exercise thumbnail.
func (c *Client) ThumbURL(ref string) string {
	return c.fileURL(c.endpoints.Thumbs, ref)
}

// DemoURL returns the public URL of an exercise demonstration.
func (c *Client) DemoURL(ref string) string {
	return c.fileURL(c.endpoints.Demos, ref)
}

// fileURL leaves absolute references alone and resolves bare file names
// against the static prefix.
func (c *Client) fileURL(prefix, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	return c.baseURL + prefix + url.PathEscape(ref)
}
