// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package avatar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func write(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestInspect(t *testing.T) {
	p := write(t, "me.png", pngHeader)
	photo, err := Inspect(p)
	require.NoError(t, err)
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, int64(len(pngHeader)), photo.Size)
}

func TestInspectRejects(t *testing.T) {
	big := make([]byte, MaxSize+1)
	copy(big, pngHeader)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"too large", write(t, "big.png", big), ErrTooLarge},
		{"text file", write(t, "notes.png", []byte("hello there")), ErrNotImage},
		{"empty file", write(t, "empty.png", nil), ErrNotImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Inspect(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Inspect(t.TempDir())
	assert.Error(t, err)
}
