// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"gymlog/cli/internal/api"
	apperr "gymlog/cli/internal/errors"
	"gymlog/cli/internal/httperrors"
	"gymlog/cli/internal/logging"
	"gymlog/cli/internal/validation"
)

// reportedError is an error that was already shown to the user. Execute
// only sets the exit code for it.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail shows err as a toast and returns it marked as reported. fallback is
// the message for failures without a backend message; action describes
// what was being done, for network diagnostics.
func (a *app) fail(ctx context.Context, err error, fallback, action string) error {
	a.toast(ctx, err, fallback, action)
	return &reportedError{err: err}
}

func (a *app) toast(ctx context.Context, err error, fallback, action string) {
	errPrinter := pterm.Error.WithWriter(a.out)

	var fields validation.Errors
	var appErr *api.AppError
	switch {
	case errors.As(err, &fields):
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			errPrinter.Println(fields[name])
		}
	case errors.As(err, &appErr):
		errPrinter.Println(appErr.Message)
		if appErr.Unauthorized() && !a.store.Current().Empty() {
			a.hint("Your session is no longer accepted. Run 'gymlog logout' and sign in again.")
		}
	case apperr.Is(err, apperr.Transport):
		errPrinter.Println(fallback)
		if httperrors.Classify(err) != httperrors.Other {
			httperrors.Present(a.out, err, action, httperrors.ExtractHostFromURL(a.client.BaseURL()))
		}
	case apperr.Is(err, apperr.Unauthenticated):
		errPrinter.Println(apperrMessage(err))
		a.hint("Run 'gymlog login' or 'gymlog signup' first.")
	case apperr.Is(err, apperr.Storage):
		errPrinter.Println(logging.PresentError("Could not access the credential store", errors.Unwrap(err)))
	default:
		errPrinter.Println(fallback)
	}
	a.log.Debug(ctx, "command failed", "action", action, "error", logging.Mask(err.Error()))
}

func apperrMessage(err error) string {
	var e *apperr.E
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func (a *app) success(format string, args ...any) {
	pterm.Success.WithWriter(a.out).Println(fmt.Sprintf(format, args...))
}

func (a *app) info(format string, args ...any) {
	pterm.Info.WithWriter(a.out).Println(fmt.Sprintf(format, args...))
}

func (a *app) hint(text string) {
	pterm.DefaultBasicText.WithWriter(a.out).Println("   " + text)
}

func (a *app) println(args ...any) {
	pterm.DefaultBasicText.WithWriter(a.out).Println(args...)
}

func (a *app) section(title string) {
	pterm.DefaultSection.WithWriter(a.out).Println(title)
}

func (a *app) table(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithWriter(a.out).WithData(data).Render()
}
