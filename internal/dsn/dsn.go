// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dsn parses and normalizes the PostgreSQL connection string used by
// the history export.
package dsn

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables consulted, in order, when no DSN flag is given.
var EnvVars = []string{"GYMLOG_EXPORT_DSN", "DATABASE_URL"}

// Info contains the parts of a DSN.
type Info struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Params   map[string]string
	Original string
}

// ParseError reports a malformed DSN. It never includes the password.
type ParseError struct {
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid DSN format: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid DSN format: %s", e.Reason)
}

func newParseError(reason, hint string) *ParseError {
	return &ParseError{Reason: reason, Hint: hint}
}

// Resolve picks the DSN: the flag value first, then EnvVars. source names
// where it came from ("flag", the variable name, or "" when none was set).
func Resolve(flag string) (value, source string) {
	if v := strings.TrimSpace(flag); v != "" {
		return v, "flag"
	}
	for _, name := range EnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, name
		}
	}
	return "", ""
}

// Parse validates dsn and returns the canonical postgresql:// form.
func Parse(dsn string) (string, error) {
	info, err := ParseInfo(dsn)
	if err != nil {
		return "", err
	}
	return info.Normalize(), nil
}

// Redact returns dsn with the password replaced by "****". Unparseable input
// is returned as "<invalid dsn>" so nothing secret leaks into messages.
func Redact(dsn string) string {
	info, err := ParseInfo(dsn)
	if err != nil {
		return "<invalid dsn>"
	}
	if info.Password != "" {
		info.Password = "****"
	}
	return info.normalize(false)
}
