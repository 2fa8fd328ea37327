// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/validation"
)

// signupCmd is the account creation screen. A new account is signed in
// right away.
var signupCmd = &cobra.Command{
	Use:         "signup",
	Short:       "Create an account and sign in",
	Annotations: inGraph(route.GraphAuth),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := appFrom(ctx)

		var in validation.SignUp
		var err error
		if in.Name, err = a.prompt.Line("Name"); err != nil {
			return err
		}
		if in.Email, err = a.prompt.Line("E-mail"); err != nil {
			return err
		}
		if in.Password, err = a.prompt.Password("Password"); err != nil {
			return err
		}
		if in.ConfirmPassword, err = a.prompt.Password("Confirm the password"); err != nil {
			return err
		}
		return runSignUp(ctx, a, in)
	},
}

func runSignUp(ctx context.Context, a *app, in validation.SignUp) error {
	res := validation.ValidateSignUp(in)
	if !res.Valid() {
		return a.fail(ctx, res.Err(), "", "creating the account")
	}
	form := res.Value

	stop := a.spin("Creating your account")
	err := a.client.CreateUser(ctx, api.NewUser{Name: form.Name, Email: form.Email, Password: form.Password})
	stop()
	if err != nil {
		return a.fail(ctx, err, "Unable to create the account. Try again later.", "creating the account")
	}
	a.success("Account created.")

	return runSignIn(ctx, a, validation.SignIn{Email: form.Email, Password: form.Password})
}

func init() {
	rootCmd.AddCommand(signupCmd)
}
