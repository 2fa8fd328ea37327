// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validation checks form input locally, before any request is made.
// A form is a set of fields, each with an ordered list of validators; the
// first failing validator of a field decides its message.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	apperr "gymlog/cli/internal/errors"
)

// Validator checks one field value. It returns "" when the value is valid,
// otherwise the message shown next to the field.
type Validator func(value string) string

// Required fails on empty or blank values.
func Required(msg string) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return msg
		}
		return ""
	}
}

// MinLength fails on values shorter than n characters. Empty values pass;
// combine with Required when the field is mandatory.
func MinLength(n int, msg string) Validator {
	return func(value string) string {
		if value != "" && len([]rune(value)) < n {
			return msg
		}
		return ""
	}
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email fails on values that do not look like an e-mail address. Empty
// values pass.
func Email(msg string) Validator {
	return func(value string) string {
		if value != "" && !emailRe.MatchString(value) {
			return msg
		}
		return ""
	}
}

// EqualTo fails when value differs from other.
func EqualTo(other, msg string) Validator {
	return func(value string) string {
		if value != other {
			return msg
		}
		return ""
	}
}

// When applies v only if cond holds.
func When(cond bool, v Validator) Validator {
	return func(value string) string {
		if !cond {
			return ""
		}
		return v(value)
	}
}

// Errors maps field names to messages.
type Errors map[string]string

// Error lists the messages ordered by field name.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}

// Result is either a valid value or the field errors that prevented it.
type Result[T any] struct {
	Value  T
	Errors Errors
}

// Valid reports whether no field failed.
func (r Result[T]) Valid() bool { return len(r.Errors) == 0 }

// Err returns the field errors as a validation error, or nil.
func (r Result[T]) Err() error {
	if r.Valid() {
		return nil
	}
	return apperr.Wrap(apperr.Validation, "check the highlighted fields", r.Errors)
}

// field is one input together with its rules.
type field struct {
	name  string
	value string
	rules []Validator
}

func check(fields ...field) Errors {
	errs := Errors{}
	for _, f := range fields {
		for _, rule := range f.rules {
			if msg := rule(f.value); msg != "" {
				errs[f.name] = msg
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
