// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/health"
	"gymlog/cli/internal/httperrors"
	"gymlog/cli/internal/route"
)

// statusCmd reports whether the backend answers and what the session is.
var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Check the backend connection and the session state",
	Annotations: inGraph(route.GraphAny),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context(), appFrom(cmd.Context()))
	},
}

func runStatus(ctx context.Context, a *app) error {
	data := pterm.TableData{
		{"Check", "Result"},
		{"Backend", a.client.BaseURL()},
		{"API", probeAPI(ctx, a)},
		{"Session", a.store.Snapshot().Status.String()},
		{"Credential store", a.cfg.KeyringBackend},
	}
	if addr := strings.TrimSpace(a.cfg.HealthGRPCAddr); addr != "" {
		data = append(data, []string{"gRPC health", probeGRPC(ctx, a, addr)})
	}
	return a.table(data)
}

// probeAPI calls GET /groups. A 401 still proves the backend is up.
func probeAPI(ctx context.Context, a *app) string {
	started := time.Now()
	_, err := a.client.Groups(ctx)
	elapsed := time.Since(started).Round(time.Millisecond)
	switch {
	case err == nil:
		return "reachable (" + elapsed.String() + ")"
	case api.IsUnauthorized(err):
		return "reachable, sign in to use it (" + elapsed.String() + ")"
	default:
		a.log.Debug(ctx, "api probe failed", "error", err)
		return "unreachable: " + httperrors.Classify(err).String()
	}
}

func probeGRPC(ctx context.Context, a *app, addr string) string {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
	defer cancel()
	res, err := health.Probe(ctx, health.Target{
		Addr:     addr,
		Insecure: strings.HasPrefix(a.cfg.APIURL, "http://"),
		Token:    a.store.Token(),
	})
	if err != nil {
		a.log.Debug(ctx, "grpc health probe failed", "target", res.Target, "error", err)
		return "unreachable"
	}
	latency := res.Latency.Round(time.Millisecond).String()
	if !res.Serving() {
		return "not serving: " + strings.ToLower(res.Status) + " (" + latency + ")"
	}
	return "serving (" + latency + ")"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
