// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"gymlog/cli/internal/api"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, Other},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), Timeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.example"}, DNS},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, Refused},
		{"tls", errors.New("x509: certificate signed by unknown authority"), TLS},
		{"5xx", &api.TransportError{Op: "list groups", StatusCode: 502, Err: errors.New("Bad Gateway")}, Server},
		{"4xx without message", &api.TransportError{Op: "list groups", StatusCode: 404, Err: errors.New("Not Found")}, Other},
		{"other", errors.New("boom"), Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestPresent(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	Present(&buf, &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, "signing in", "localhost:3333")
	assert.Contains(t, buf.String(), "Connection refused while signing in")
	assert.Contains(t, buf.String(), "localhost:3333")

	buf.Reset()
	Present(&buf, nil, "x", "y")
	assert.Empty(t, buf.String())
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "api.example:3333", ExtractHostFromURL("http://api.example:3333/x"))
	assert.Equal(t, "the server", ExtractHostFromURL("::"))
}
