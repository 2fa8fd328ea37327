// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/config"
	"gymlog/cli/internal/route"
)

func standalone() map[string]string {
	return map[string]string{
		graphAnnotation: route.GraphAny.String(),
		"skip_session":  "true",
	}
}

// configCmd shows the settings saved in the config file.
var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show the saved settings",
	Annotations: standalone(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a saved setting",
	Long: `set writes one setting to the config file. Keys: ` + strings.Join(config.Keys, ", ") + `.

Environment variables and flags still override saved settings at run time.`,
	Args:        cobra.ExactArgs(2),
	ValidArgs:   config.Keys,
	Annotations: standalone(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

func runConfigShow(w io.Writer) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	c, err := config.ReadFile()
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	grpcAddr := c.HealthGRPCAddr
	if grpcAddr == "" {
		grpcAddr = "(not set)"
	}
	data := pterm.TableData{
		{"Setting", "Value"},
		{"api_url", c.APIURL},
		{"log_level", c.LogLevel},
		{"timeout_seconds", fmt.Sprint(c.TimeoutSeconds)},
		{"keyring_backend", c.KeyringBackend},
		{"health_grpc_addr", grpcAddr},
	}
	pterm.DefaultBasicText.WithWriter(w).Println("Config file: " + path)
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func runConfigSet(w io.Writer, key, value string) error {
	c, err := config.ReadFile()
	if err != nil {
		return err
	}
	if err := c.Set(key, value); err != nil {
		pterm.Error.WithWriter(w).Println(err.Error())
		return &reportedError{err: err}
	}
	if err := config.Save(c); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	pterm.Success.WithWriter(w).Println(fmt.Sprintf("Saved %s.", key))
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}
