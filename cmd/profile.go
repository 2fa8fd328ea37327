// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/api"
	"gymlog/cli/internal/avatar"
	apperr "gymlog/cli/internal/errors"
	"gymlog/cli/internal/route"
	"gymlog/cli/internal/session"
	"gymlog/cli/internal/validation"
)

var (
	profileName     string
	profilePassword bool
	profilePhoto    string
)

// profileCmd shows the profile and changes name, password or photo.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long: `Without flags, profile shows your account. --name renames you, --password
asks for the current and a new password, and --photo uploads a new profile
photo (JPEG, PNG, GIF or WebP up to 5MB).`,
	Annotations: inGraph(route.GraphApp),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := appFrom(ctx)

		if profilePhoto != "" {
			if err := runPhoto(ctx, a, profilePhoto); err != nil {
				return err
			}
		}
		if profileName == "" && !profilePassword {
			if profilePhoto == "" {
				return showProfile(a)
			}
			return nil
		}

		form := validation.Profile{Name: profileName}
		if form.Name == "" {
			form.Name = a.store.Current().Name
		}
		if profilePassword {
			var err error
			if form.OldPassword, err = a.prompt.Password("Current password"); err != nil {
				return err
			}
			if form.Password, err = a.prompt.Password("New password"); err != nil {
				return err
			}
			if form.ConfirmPassword, err = a.prompt.Password("Confirm the new password"); err != nil {
				return err
			}
		}
		return runProfile(ctx, a, form)
	},
}

func showProfile(a *app) error {
	s := a.store.Current()
	data := pterm.TableData{
		{"Name", s.Name},
		{"E-mail", s.Email},
	}
	photo := a.client.AvatarURL(s.AvatarRef)
	if photo == "" {
		photo = "(none)"
	}
	data = append(data, []string{"Photo", photo})
	a.section("Profile")
	if err := pterm.DefaultTable.WithWriter(a.out).WithData(data).Render(); err != nil {
		return err
	}
	a.hint("Use --name, --password or --photo to change it.")
	return nil
}

// runProfile confirms the change with the backend first; the session only
// takes the new name after the backend accepted it.
func runProfile(ctx context.Context, a *app, in validation.Profile) error {
	res := validation.ValidateProfile(in)
	if !res.Valid() {
		return a.fail(ctx, res.Err(), "", "updating the profile")
	}
	form := res.Value

	update := api.ProfileUpdate{Name: form.Name}
	if form.ChangesPassword() {
		update.Password = form.Password
		update.OldPassword = form.OldPassword
	}

	stop := a.spin("Updating profile")
	err := a.client.UpdateUser(ctx, update)
	stop()
	if err != nil {
		return a.fail(ctx, err, "Unable to update the profile. Try again later.", "updating the profile")
	}
	if _, err := a.store.UpdateProfile(ctx, session.Patch{Name: &form.Name}); err != nil {
		return a.fail(ctx, err, "Profile updated, but the local session could not be saved.", "saving the session")
	}
	a.success("Profile updated successfully!")
	return nil
}

// runPhoto checks and uploads a photo, then stores the new avatar reference.
func runPhoto(ctx context.Context, a *app, path string) error {
	photo, err := avatar.Inspect(path)
	if err != nil {
		msg := "Unable to read the photo."
		switch {
		case errors.Is(err, avatar.ErrTooLarge):
			msg = "This image is very large. Choose one up to 5MB."
		case errors.Is(err, avatar.ErrNotImage):
			msg = "Choose a JPEG, PNG, GIF or WebP image."
		case errors.Is(err, os.ErrNotExist):
			msg = "Photo not found: " + path
		}
		return a.fail(ctx, apperr.Wrap(apperr.Validation, msg, err), msg, "")
	}

	f, err := os.Open(photo.Path)
	if err != nil {
		return a.fail(ctx, err, "Unable to read the photo.", "")
	}
	defer f.Close()

	stop := a.spin("Uploading photo")
	user, err := a.client.UpdateAvatar(ctx, f, photo.Path, photo.ContentType)
	stop()
	if err != nil {
		return a.fail(ctx, err, "Unable to update the photo. Try again later.", "uploading the photo")
	}
	if _, err := a.store.UpdateProfile(ctx, session.Patch{AvatarRef: &user.Avatar}); err != nil {
		return a.fail(ctx, err, "Photo uploaded, but the local session could not be saved.", "saving the session")
	}
	a.success("Photo updated!")
	return nil
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileCmd.Flags().BoolVar(&profilePassword, "password", false, "Change the password (prompts)")
	profileCmd.Flags().StringVar(&profilePhoto, "photo", "", "Path of a new profile photo")
}
