// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  ana@example.com \n\nlast"), &out)
	assert.False(t, p.Interactive())

	v, err := p.Line("E-mail")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", v)
	assert.Equal(t, "E-mail: ", out.String())

	v, err = p.Line("Group")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	v, err = p.Line("Name")
	require.NoError(t, err)
	assert.Equal(t, "last", v)

	_, err = p.Line("More")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestPrompterPassword(t *testing.T) {
	p := NewPrompter(strings.NewReader(" s3cret \r\n"), &bytes.Buffer{})
	v, err := p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, " s3cret ", v)

	var out bytes.Buffer
	p = NewPrompter(strings.NewReader(""), &out)
	p.fd = 0
	p.readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }
	v, err = p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "hidden", v)
	assert.Equal(t, "Password: \n", out.String())

	p.readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = p.Password("Password")
	assert.Error(t, err)
}

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 2, linesFor(0, 80))
	assert.Equal(t, 2, linesFor(80, 80))
	assert.Equal(t, 3, linesFor(81, 80))
}

func TestClearLines(t *testing.T) {
	var buf bytes.Buffer
	ClearLines(&buf, 2)
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", buf.String())
}

func TestSpinnerStaysQuietWhenFast(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Loading", time.Hour)
	stop()
	stop()
	assert.Empty(t, buf.String())
}
