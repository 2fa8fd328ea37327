// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/screen"
)

var exerciseDone bool

// exerciseCmd shows one exercise and can mark it as done.
var exerciseCmd = &cobra.Command{
	Use:         "exercise <id>",
	Short:       "Show an exercise; --done records it in your history",
	Args:        cobra.ExactArgs(1),
	Annotations: inGraph(route.GraphApp),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExercise(cmd.Context(), appFrom(cmd.Context()), api.ID(args[0]), exerciseDone)
	},
}

func runExercise(ctx context.Context, a *app, id api.ID, done bool) error {
	stop := a.spin("Loading exercise")
	state := screen.NewLoader[*api.Exercise](nil).Load(ctx, func(ctx context.Context) (*api.Exercise, error) {
		return a.client.Exercise(ctx, id)
	})
	stop()
	switch state.Kind {
	case screen.Failed:
		return a.fail(ctx, state.Err, "Unable to load exercise details", "loading the exercise")
	case screen.Loaded:
	default:
		return ctx.Err()
	}

	e := state.Value
	a.section(e.Name)
	data := pterm.TableData{
		{"Group", e.Group},
		{"Series", fmt.Sprint(e.Series)},
		{"Repetitions", fmt.Sprint(e.Repetitions)},
	}
	if u := a.client.DemoURL(e.Demo); u != "" {
		data = append(data, []string{"Demo", u})
	}
	if u := a.client.ThumbURL(e.Thumb); u != "" {
		data = append(data, []string{"Thumbnail", u})
	}
	if err := pterm.DefaultTable.WithWriter(a.out).WithData(data).Render(); err != nil {
		return err
	}

	if !done {
		a.hint(fmt.Sprintf("Finished it? Run 'gymlog exercise %s --done'.", e.ID))
		return nil
	}

	stop = a.spin("Registering")
	err := a.client.CreateHistory(ctx, e.ID)
	stop()
	if err != nil {
		return a.fail(ctx, err, "Unable to register the exercise.", "registering the exercise")
	}
	a.success("Congratulations! Exercise registered in your history.")
	return nil
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.Flags().BoolVar(&exerciseDone, "done", false, "Mark the exercise as done")
}
