// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/http"
)

// History returns the signed-in user's completed exercises grouped by day.
func (c *Client) History(ctx context.Context) ([]HistoryByDay, error) {
	var out []HistoryByDay
	if err := c.do(ctx, request{op: "list history", method: http.MethodGet, path: c.endpoints.History, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

type historyRecord struct {
	ExerciseID ID `json:"exercise_id"`
}

// CreateHistory records an exercise as completed now.
func (c *Client) CreateHistory(ctx context.Context, exerciseID ID) error {
	return c.do(ctx, request{
		op:     "register exercise",
		method: http.MethodPost,
		path:   c.endpoints.History,
		body:   historyRecord{ExerciseID: exerciseID},
	})
}
