// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validation

import "strings"

// Messages shown for invalid fields.
const (
	MsgNameRequired        = "Enter the name."
	MsgEmailRequired       = "Enter the e-mail."
	MsgEmailInvalid        = "Invalid e-mail."
	MsgPasswordRequired    = "Enter the password."
	MsgPasswordTooShort    = "Password must have at least 6 characters."
	MsgConfirmRequired     = "Confirm the password."
	MsgConfirmMismatch     = "Password confirmation does not match."
	MsgOldPasswordRequired = "Enter the current password to change it."
)

// MinPasswordLength applies to sign-up and password changes.
const MinPasswordLength = 6

// SignIn is the sign-in form.
type SignIn struct {
	Email    string
	Password string
}

// SignUp is the sign-up form.
type SignUp struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Profile is the profile form. Password fields are optional; leaving
// Password empty keeps the current password.
type Profile struct {
	Name            string
	OldPassword     string
	Password        string
	ConfirmPassword string
}

// ChangesPassword reports whether the form asks for a new password.
func (p Profile) ChangesPassword() bool { return p.Password != "" }

// normalizeEmail only trims: the backend owns e-mail matching.
func normalizeEmail(s string) string {
	return strings.TrimSpace(s)
}

// ValidateSignIn checks the sign-in form. The returned value has the e-mail
// trimmed, with its case kept.
func ValidateSignIn(in SignIn) Result[SignIn] {
	in.Email = normalizeEmail(in.Email)
	errs := check(
		field{"email", in.Email, []Validator{Required(MsgEmailRequired), Email(MsgEmailInvalid)}},
		field{"password", in.Password, []Validator{Required(MsgPasswordRequired)}},
	)
	return Result[SignIn]{Value: in, Errors: errs}
}

// ValidateSignUp checks the sign-up form.
func ValidateSignUp(in SignUp) Result[SignUp] {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	errs := check(
		field{"name", in.Name, []Validator{Required(MsgNameRequired)}},
		field{"email", in.Email, []Validator{Required(MsgEmailRequired), Email(MsgEmailInvalid)}},
		field{"password", in.Password, []Validator{Required(MsgPasswordRequired), MinLength(MinPasswordLength, MsgPasswordTooShort)}},
		field{"password_confirm", in.ConfirmPassword, []Validator{Required(MsgConfirmRequired), EqualTo(in.Password, MsgConfirmMismatch)}},
	)
	return Result[SignUp]{Value: in, Errors: errs}
}

// ValidateProfile checks the profile form.
func ValidateProfile(in Profile) Result[Profile] {
	in.Name = strings.TrimSpace(in.Name)
	changing := in.ChangesPassword()
	errs := check(
		field{"name", in.Name, []Validator{Required(MsgNameRequired)}},
		field{"old_password", in.OldPassword, []Validator{When(changing, Required(MsgOldPasswordRequired))}},
		field{"password", in.Password, []Validator{MinLength(MinPasswordLength, MsgPasswordTooShort)}},
		field{"password_confirm", in.ConfirmPassword, []Validator{
			When(changing, Required(MsgConfirmRequired)),
			EqualTo(in.Password, MsgConfirmMismatch),
		}},
	)
	return Result[Profile]{Value: in, Errors: errs}
}
