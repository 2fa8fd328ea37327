// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/http"
	"net/url"
)

// Groups lists the muscle group names.
func (c *Client) Groups(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, request{op: "list groups", method: http.MethodGet, path: c.endpoints.Groups, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// ExercisesByGroup lists the exercises of one muscle group.
func (c *Client) ExercisesByGroup(ctx context.Context, group string) ([]Exercise, error) {
	var out []Exercise
	err := c.do(ctx, request{
		op:     "list exercises",
		method: http.MethodGet,
		path:   c.endpoints.ExercisesByGroup + url.PathEscape(group),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exercise fetches one exercise by id.
func (c *Client) Exercise(ctx context.Context, id ID) (*Exercise, error) {
	var out Exercise
	err := c.do(ctx, request{
		op:     "get exercise",
		method: http.MethodGet,
		path:   c.endpoints.Exercises + url.PathEscape(string(id)),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
