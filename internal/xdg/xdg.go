// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves XDG Base Directory paths for gymlog.
// Directories are created on demand with private permissions because they
// hold the config file and, for the file keyring backend, encrypted credentials.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "gymlog"

// ConfigDir returns $XDG_CONFIG_HOME/gymlog, falling back to ~/.config/gymlog.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/gymlog, falling back to ~/.local/state/gymlog.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", ".local", "state")
}

// KeyringDir returns the directory used by the encrypted file keyring.
func KeyringDir() (string, error) {
	base, err := StateDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "keyring")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// resolve joins the env-provided base (or the home fallback) with AppName
// and makes sure the directory exists with 0700 permissions.
func resolve(env string, fallback ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
