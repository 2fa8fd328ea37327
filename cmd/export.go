// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"gymlog/cli/internal/dsn"
	apperr "gymlog/cli/internal/errors"
	"gymlog/cli/internal/export"
	"gymlog/cli/internal/logging"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/terminal"
)

var exportDSN string

// exportCmd copies the history into a PostgreSQL table.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy your exercise history into PostgreSQL",
	Long: `export writes your exercise history into the workout_history table of a
PostgreSQL database, creating the table on first use. Running it again
updates rows in place.

The connection string comes from --dsn, GYMLOG_EXPORT_DSN or DATABASE_URL,
in that order, and is asked for interactively when none is set.`,
	Annotations: inGraph(route.GraphApp),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), appFrom(cmd.Context()), exportDSN)
	},
}

func runExport(ctx context.Context, a *app, flag string) error {
	raw, source := dsn.Resolve(flag)
	if raw == "" && a.prompt.Interactive() {
		const label = "PostgreSQL DSN"
		var err error
		if raw, err = a.prompt.Line(label); err != nil {
			return err
		}
		// The DSN usually holds a password; do not leave it on screen.
		terminal.ClearPreviousLines(a.out, len(label)+2+len(raw))
		source = "prompt"
	}
	if strings.TrimSpace(raw) == "" {
		msg := "No database to export to. Pass --dsn or set GYMLOG_EXPORT_DSN."
		return a.fail(ctx, apperr.New(apperr.Validation, msg), msg, "")
	}

	normalized, err := dsn.Parse(raw)
	if err != nil {
		return a.fail(ctx, apperr.Wrap(apperr.Validation, "invalid DSN", err), err.Error(), "")
	}
	a.info("Exporting to %s (from %s)", dsn.Redact(raw), source)

	stop := a.spin("Loading history")
	days, err := a.client.History(ctx)
	stop()
	if err != nil {
		return a.fail(ctx, err, "Unable to load history", "loading history")
	}
	rows := export.Rows(a.store.Current().UserID, days)
	if len(rows) == 0 {
		a.println(emptyHistory)
		return nil
	}

	stop = a.spin("Writing to the database")
	n, err := writeExport(ctx, normalized, rows)
	stop()
	if err != nil {
		return a.fail(ctx, err, "Export failed: "+errSummary(err), "exporting")
	}
	a.success("%d exercises exported to workout_history.", n)
	return nil
}

func writeExport(ctx context.Context, normalized string, rows []export.Row) (int, error) {
	pool, err := export.Open(ctx, normalized)
	if err != nil {
		return 0, err
	}
	defer pool.Close()
	if err := export.MigratePool(ctx, pool); err != nil {
		return 0, err
	}
	return export.Write(ctx, pool, rows)
}

// errSummary returns the first line of err with secrets masked.
func errSummary(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return logging.Mask(line)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDSN, "dsn", "", "PostgreSQL connection string")
}
