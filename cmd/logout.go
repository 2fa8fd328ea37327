// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"gymlog/cli/internal/route"
)

// logoutCmd signs out and removes the persisted session from the keyring.
var logoutCmd = &cobra.Command{
	Use:         "logout",
	Aliases:     []string{"signout"},
	Short:       "Sign out and forget the saved session",
	Annotations: inGraph(route.GraphApp),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := appFrom(ctx)
		if err := a.store.SignOut(ctx); err != nil {
			return a.fail(ctx, err, "Unable to sign out.", "signing out")
		}
		a.success("Signed out. See you next workout!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
