// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface of gymlog, a workout log
// client. Each screen of the app is a subcommand; which ones may run depends
// on whether a user is signed in, the same way the app shows either the
// sign-in screens or the main screens.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	apperr "gymlog/cli/internal/errors"
	"gymlog/cli/internal/logging"
	"gymlog/cli/internal/route"
)

var (
	flagAPIURL  string
	flagVerbose bool

	// bootstrapped is the app built by prepare, closed by Execute.
	bootstrapped *app
)

// graphAnnotation names the route graph a command belongs to.
const graphAnnotation = "graph"

func inGraph(g route.Graph) map[string]string {
	return map[string]string{graphAnnotation: g.String()}
}

// rootCmd represents the base command when called without any subcommands.
// Without arguments it shows the screen for the current session: the sign-in
// hint for anonymous users, the home screen otherwise.
var rootCmd = &cobra.Command{
	Use:   "gymlog",
	Short: "Track your workouts from the terminal",
	Long: `gymlog signs you in to your workout backend, lists exercises by muscle group,
records completed exercises and shows your history.

Run it without arguments to open the screen for your current session.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Annotations:       inGraph(route.GraphAny),
	PersistentPreRunE: prepare,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd.Context())
		switch a.routes.Current() {
		case route.GraphApp:
			return runHome(cmd.Context(), a, "")
		default:
			a.info("You're not signed in.")
			a.hint("Run 'gymlog login' to sign in or 'gymlog signup' to create an account.")
			return nil
		}
	},
}

// prepare builds the app once, restores the session and refuses commands
// that do not belong to the active route graph.
func prepare(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations["skip_session"] == "true" {
		return nil
	}

	ctx := cmd.Context()
	a := appFrom(ctx)
	if a == nil {
		var err error
		if a, err = bootstrap(); err != nil {
			return err
		}
		bootstrapped = a
		ctx = withApp(ctx, a)
		cmd.SetContext(ctx)
	}

	stop := a.spin("Loading")
	snap := a.store.Restore(ctx)
	stop()
	a.log.Debug(ctx, "session ready", "status", snap.Status.String(), "command", cmd.Name())

	return guard(ctx, cmd, a)
}

func guard(ctx context.Context, cmd *cobra.Command, a *app) error {
	want, err := route.Parse(cmd.Annotations[graphAnnotation])
	if err != nil {
		return err
	}
	current := a.routes.Current()
	if route.Allows(current, want) {
		return nil
	}

	switch want {
	case route.GraphApp:
		return a.fail(ctx, apperr.New(apperr.Unauthenticated, "You're not signed in."), "", cmd.Name())
	case route.GraphAuth:
		a.info("You're already signed in as %s.", a.store.Current().Email)
		a.hint("Run 'gymlog logout' first to use another account.")
		return &reportedError{err: fmt.Errorf("%s is not available while signed in", cmd.Name())}
	}
	return fmt.Errorf("%s is not available right now", cmd.Name())
}

// Execute runs the CLI application.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if bootstrapped != nil {
		bootstrapped.close()
	}
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL (overrides config and GYMLOG_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging on stderr")
}
