// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/api"
	apperr "gymlog/cli/internal/errors"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/screen"
)

// defaultGroup is selected when no group is asked for.
const defaultGroup = "back"

const noGroups = "No muscle groups yet. Check back once exercises are added."

var homeGroup string

// homeCmd lists the muscle groups and the exercises of the selected one.
var homeCmd = &cobra.Command{
	Use:         "home",
	Aliases:     []string{"exercises"},
	Short:       "List muscle groups and the exercises of one group",
	Annotations: inGraph(route.GraphApp),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHome(cmd.Context(), appFrom(cmd.Context()), homeGroup)
	},
}

func runHome(ctx context.Context, a *app, group string) error {
	s := a.store.Current()
	a.println(fmt.Sprintf("👋 Hello, %s", s.Name))

	stop := a.spin("Loading muscle groups")
	groups := screen.NewLoader[[]string](nil).Load(ctx, a.client.Groups)
	stop()
	switch groups.Kind {
	case screen.Failed:
		return a.fail(ctx, groups.Err, "Unable to load muscle groups", "loading muscle groups")
	case screen.Loaded:
	default:
		return ctx.Err()
	}

	if len(groups.Value) == 0 {
		a.println(noGroups)
		return nil
	}

	selected, ok := pickGroup(groups.Value, group)
	if !ok {
		err := apperr.New(apperr.Validation, fmt.Sprintf("Unknown muscle group %q.", group))
		a.toast(ctx, err, err.Message, "")
		a.hint("Available: " + strings.Join(groups.Value, ", "))
		return &reportedError{err: err}
	}
	a.println(renderGroups(groups.Value, selected))

	stop = a.spin("Loading exercises")
	exercises := screen.NewLoader[[]api.Exercise](nil).Load(ctx, func(ctx context.Context) ([]api.Exercise, error) {
		return a.client.ExercisesByGroup(ctx, selected)
	})
	stop()

	var renderErr error
	exercises.Match(screen.Cases[[]api.Exercise]{
		Failed: func(err error) {
			renderErr = a.fail(ctx, err, "Unable to load exercises", "loading exercises")
		},
		Loaded: func(list []api.Exercise) {
			renderErr = renderExercises(a, selected, list)
		},
	})
	if exercises.Kind != screen.Loaded && exercises.Kind != screen.Failed {
		return ctx.Err()
	}
	return renderErr
}

// pickGroup returns the group matching want case-insensitively. An empty
// want selects defaultGroup, or the first group when that does not exist.
// ok is false when nothing matches, including when there are no groups.
func pickGroup(groups []string, want string) (string, bool) {
	if len(groups) == 0 {
		return "", false
	}
	lookup := want
	if lookup == "" {
		lookup = defaultGroup
	}
	for _, g := range groups {
		if strings.EqualFold(g, lookup) {
			return g, true
		}
	}
	if want == "" {
		return groups[0], true
	}
	return "", false
}

func renderGroups(groups []string, selected string) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if g == selected {
			parts = append(parts, pterm.Bold.Sprint("["+strings.ToUpper(g)+"]"))
			continue
		}
		parts = append(parts, strings.ToUpper(g))
	}
	return strings.Join(parts, "  ")
}

func renderExercises(a *app, group string, list []api.Exercise) error {
	a.section(fmt.Sprintf("Exercises · %s (%d)", group, len(list)))
	if len(list) == 0 {
		a.println("No exercises in this group yet.")
		return nil
	}
	data := pterm.TableData{{"ID", "Exercise", "Series", "Repetitions"}}
	for _, e := range list {
		data = append(data, []string{string(e.ID), e.Name, fmt.Sprint(e.Series), fmt.Sprint(e.Repetitions)})
	}
	if err := a.table(data); err != nil {
		return err
	}
	a.hint("Run 'gymlog exercise <id>' for details.")
	return nil
}

func init() {
	rootCmd.AddCommand(homeCmd)
	homeCmd.Flags().StringVarP(&homeGroup, "group", "g", "", "Muscle group to list (default \"back\")")
}
