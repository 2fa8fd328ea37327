// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/screen"
)

const emptyHistory = "There are no registered exercises yet. Let's do it today?"

// historyCmd lists completed exercises grouped by day.
var historyCmd = &cobra.Command{
	Use:         "history",
	Short:       "Show your exercise history by day",
	Annotations: inGraph(route.GraphApp),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd.Context(), appFrom(cmd.Context()))
	},
}

func runHistory(ctx context.Context, a *app) error {
	stop := a.spin("Loading history")
	state := screen.NewLoader[[]api.HistoryByDay](nil).Load(ctx, a.client.History)
	stop()

	var err error
	state.Match(screen.Cases[[]api.HistoryByDay]{
		Failed: func(e error) {
			err = a.fail(ctx, e, "Unable to load history", "loading history")
		},
		Loaded: func(days []api.HistoryByDay) {
			a.section("Exercise history")
			if len(days) == 0 {
				a.println(emptyHistory)
				return
			}
			for _, day := range days {
				a.println(pterm.Bold.Sprint(day.Title))
				data := pterm.TableData{{"Hour", "Group", "Exercise"}}
				for _, e := range day.Data {
					data = append(data, []string{e.Hour, e.Group, e.Name})
				}
				if err = a.table(data); err != nil {
					return
				}
			}
		},
	})
	if state.Kind != screen.Loaded && state.Kind != screen.Failed {
		return ctx.Err()
	}
	return err
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
