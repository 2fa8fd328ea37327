// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/config"
	"gymlog/cli/internal/keychain"
	"gymlog/cli/internal/logging"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/session"
	"gymlog/cli/internal/terminal"
)

// app holds the process-wide collaborators. It is built once by the root
// command and handed to subcommands through the command context.
type app struct {
	cfg    config.Config
	log    logging.Logger
	client *api.Client
	store  *session.Store
	routes *route.Selector
	prompt *terminal.Prompter
	out    io.Writer

	// spinnerDelay hides spinners for operations faster than this.
	spinnerDelay time.Duration
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(ctx context.Context) *app {
	a, _ := ctx.Value(appKey{}).(*app)
	return a
}

// newApp wires the collaborators around an already opened credential store.
func newApp(cfg config.Config, log logging.Logger, storage session.Storage, in io.Reader, out io.Writer) *app {
	a := &app{
		cfg:          cfg,
		log:          log,
		prompt:       terminal.NewPrompter(in, out),
		out:          out,
		spinnerDelay: 150 * time.Millisecond,
	}
	var store *session.Store
	a.client = api.New(api.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout(),
		UserAgent: "gymlog-cli/" + Version,
		Logger:    log,
		Token: func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		},
	})
	store = session.NewStore(a.client, storage, log)
	a.store = store
	a.routes = route.NewSelector(store)
	return a
}

// bootstrap loads configuration, applies root flags and opens the keyring.
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagAPIURL != "" {
		cfg.APIURL = strings.TrimRight(flagAPIURL, "/")
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	ring, err := keychain.Open(cfg.KeyringBackend)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	log.Debug(context.Background(), "bootstrapped", "api_url", cfg.APIURL, "keyring", cfg.KeyringBackend)
	return newApp(cfg, log, ring, os.Stdin, os.Stdout), nil
}

// close stops following the session store.
func (a *app) close() {
	a.routes.Close()
}

// spin starts a spinner on stderr so stdout stays clean for piping.
func (a *app) spin(text string) func() {
	if a.out != os.Stdout {
		return func() {}
	}
	return terminal.StartSpinner(os.Stderr, text, a.spinnerDelay)
}
