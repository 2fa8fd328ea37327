// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe access to the credential store that
// holds the persisted session. It wraps github.com/99designs/keyring so the
// same code runs against the OS keychain, an encrypted file or memory.
//
// The whole session is stored as a single item under KeySession. A write is
// one keyring Set call, so a reader never observes a half-written session.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/99designs/keyring"

	"gymlog/cli/internal/config"
	"gymlog/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "gymlog"

// KeySession is the fixed key of the persisted session.
const KeySession = "session"

// passwordEnv supplies the passphrase of the encrypted file backend.
const passwordEnv = "GYMLOG_KEYRING_PASSWORD"

// nativeBackends are tried, in order, before falling back to the file backend.
var nativeBackends = []keyring.BackendType{
	keyring.KeychainBackend,
	keyring.WinCredBackend,
	keyring.SecretServiceBackend,
	keyring.KWalletBackend,
	keyring.PassBackend,
}

// Manager provides centralized, thread-safe operations on the credential store.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager wraps an already opened keyring.
func NewManager(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// NewMemoryManager returns a Manager backed by an in-process keyring.
// Nothing survives the process; used by tests and the "memory" backend.
func NewMemoryManager() *Manager {
	return NewManager(keyring.NewArrayKeyring(nil))
}

// Open opens the keyring selected by backend (see config.Keyring*).
func Open(backend string) (*Manager, error) {
	if backend == config.KeyringMemory {
		return NewMemoryManager(), nil
	}

	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		FilePasswordFunc:         filePassword,
	}

	switch backend {
	case config.KeyringFile:
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	case config.KeyringAuto, "":
		cfg.AllowedBackends = append(append([]keyring.BackendType{}, nativeBackends...), keyring.FileBackend)
	default:
		return nil, fmt.Errorf("unknown keyring backend %q (use auto, file or memory)", backend)
	}

	dir, err := xdg.KeyringDir()
	if err != nil {
		return nil, err
	}
	cfg.FileDir = dir

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return NewManager(ring), nil
}

// filePassword reads the file backend passphrase from the environment and
// falls back to an interactive terminal prompt.
func filePassword(prompt string) (string, error) {
	if v := os.Getenv(passwordEnv); v != "" {
		return v, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// SaveSession stores the serialized session.
// This method is thread-safe.
func (m *Manager) SaveSession(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         KeySession,
		Data:        data,
		Label:       "gymlog session",
		Description: "Signed-in gymlog account",
	})
}

// LoadSession returns the serialized session, or (nil, nil) when none is stored.
// This method is thread-safe.
func (m *Manager) LoadSession() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeySession)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it.Data, nil
}

// ClearSession removes the stored session. Removing a missing session is not an error.
// This method is thread-safe.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ring.Remove(KeySession)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !os.IsNotExist(err) {
		return err
	}
	return nil
}
