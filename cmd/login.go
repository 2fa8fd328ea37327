// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"gymlog/cli/internal/route"
	"gymlog/cli/internal/validation"
)

var loginEmail string

// loginCmd is the sign-in screen.
var loginCmd = &cobra.Command{
	Use:         "login",
	Aliases:     []string{"signin"},
	Short:       "Sign in with your e-mail and password",
	Annotations: inGraph(route.GraphAuth),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := appFrom(ctx)

		in := validation.SignIn{Email: loginEmail}
		var err error
		if in.Email == "" {
			if in.Email, err = a.prompt.Line("E-mail"); err != nil {
				return err
			}
		}
		if in.Password, err = a.prompt.Password("Password"); err != nil {
			return err
		}
		return runSignIn(ctx, a, in)
	},
}

// runSignIn validates the form and signs in. Invalid forms never reach the
// backend.
func runSignIn(ctx context.Context, a *app, in validation.SignIn) error {
	res := validation.ValidateSignIn(in)
	if !res.Valid() {
		return a.fail(ctx, res.Err(), "", "signing in")
	}

	stop := a.spin("Signing in")
	s, err := a.store.SignIn(ctx, res.Value.Email, res.Value.Password)
	stop()
	if err != nil {
		return a.fail(ctx, err, "Unable to sign in. Try again later.", "signing in")
	}
	a.success("Welcome, %s!", s.Name)
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "E-mail to sign in with (prompted when omitted)")
}
