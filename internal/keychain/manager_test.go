// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymlog/cli/internal/config"
)

func TestLoadSessionMissing(t *testing.T) {
	m := NewMemoryManager()

	data, err := m.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSaveLoadClear(t *testing.T) {
	m := NewMemoryManager()

	require.NoError(t, m.SaveSession([]byte(`{"user_id":"1"}`)))
	data, err := m.LoadSession()
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"1"}`, string(data))

	require.NoError(t, m.SaveSession([]byte(`{"user_id":"2"}`)))
	data, err = m.LoadSession()
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"2"}`, string(data))

	require.NoError(t, m.ClearSession())
	data, err = m.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, m.ClearSession(), "clearing twice is fine")
}

func TestOpenMemoryBackend(t *testing.T) {
	m, err := Open(config.KeyringMemory)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestOpenFileBackendRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv(passwordEnv, "test-passphrase")

	m, err := Open(config.KeyringFile)
	require.NoError(t, err)
	require.NoError(t, m.SaveSession([]byte(`{"user_id":"7"}`)))

	reopened, err := Open(config.KeyringFile)
	require.NoError(t, err)
	data, err := reopened.LoadSession()
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"7"}`, string(data))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("floppy")
	require.Error(t, err)
}
