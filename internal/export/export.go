// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package export copies the signed-in user's workout history into a
// PostgreSQL table so it can be queried with SQL.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/export/migrations"
)

// Row is one history entry as stored in workout_history.
type Row struct {
	UserID      string
	EntryID     string
	Day         string
	Hour        string
	Exercise    string
	Group       string
	CompletedAt *time.Time
}

// Rows flattens the grouped history of userID. Entries whose timestamp does
// not parse keep a nil CompletedAt.
func Rows(userID string, days []api.HistoryByDay) []Row {
	var out []Row
	for _, day := range days {
		for _, e := range day.Data {
			r := Row{
				UserID:   userID,
				EntryID:  string(e.ID),
				Day:      day.Title,
				Hour:     e.Hour,
				Exercise: e.Name,
				Group:    e.Group,
			}
			if ts, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
				ts = ts.UTC()
				r.CompletedAt = &ts
			}
			out = append(out, r)
		}
	}
	return out
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate creates or upgrades the export schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate export schema: %w", err)
	}
	return nil
}

// MigratePool runs Migrate over a database/sql view of pool.
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db)
}

// Batcher is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Batcher interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const upsertSQL = `
INSERT INTO workout_history (user_id, entry_id, day, hour, exercise, muscle_group, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, entry_id) DO UPDATE SET
    day = EXCLUDED.day,
    hour = EXCLUDED.hour,
    exercise = EXCLUDED.exercise,
    muscle_group = EXCLUDED.muscle_group,
    completed_at = EXCLUDED.completed_at,
    exported_at = now()`

// Write upserts rows in one batch and returns how many were written.
// Re-running an export updates rows in place.
func Write(ctx context.Context, db Batcher, rows []Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(upsertSQL, r.UserID, r.EntryID, r.Day, r.Hour, r.Exercise, r.Group, r.CompletedAt)
	}

	br := db.SendBatch(ctx, batch)
	written := 0
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return written, fmt.Errorf("write entry %s: %w", rows[i].EntryID, err)
		}
		written++
	}
	if err := br.Close(); err != nil {
		return written, fmt.Errorf("finish export batch: %w", err)
	}
	return written, nil
}
