// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly reporting of failed backend calls.
package httperrors

import (
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"gymlog/cli/internal/api"
)

// Category is the kind of network failure.
type Category int

const (
	Other Category = iota
	Timeout
	DNS
	Refused
	TLS
	Server
)

func (c Category) String() string {
	switch c {
	case Timeout:
		return "timeout"
	case DNS:
		return "dns"
	case Refused:
		return "refused"
	case TLS:
		return "tls"
	case Server:
		return "server"
	}
	return "other"
}

// Classify inspects a transport failure.
func Classify(err error) Category {
	switch {
	case err == nil:
		return Other
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return Refused
	case isSSLError(err):
		return TLS
	case isServerError(err):
		return Server
	}
	return Other
}

// Present writes a short explanation of a transport failure to w. action
// describes what was being done ("loading exercises"), host names the
// backend.
func Present(w io.Writer, err error, action, host string) {
	if err == nil {
		return
	}
	p := pterm.DefaultBasicText.WithWriter(w)
	switch Classify(err) {
	case Timeout:
		p.Printf("⏱️  Connection timeout while %s\n\n", action)
		p.Println("The server took too long to respond. Check your connection and try again in a few moments.")
	case DNS:
		p.Printf("🌐 Cannot resolve %s while %s\n\n", host, action)
		p.Println("Check that your internet connection works and that api_url in the config is correct.")
	case Refused:
		p.Printf("🚫 Connection refused while %s\n\n", action)
		p.Printf("Nothing is accepting connections at %s. Is the backend running?\n", host)
	case TLS:
		p.Printf("🔒 Secure connection failed while %s\n\n", action)
		p.Println("Check the server certificate, your proxy settings and the system clock.")
	case Server:
		p.Printf("⚠️  Server error while %s\n\n", action)
		p.Println("The backend failed to handle the request. Please try again in a few minutes.")
	default:
		p.Printf("❌ Cannot reach %s while %s\n", host, action)
		details := err.Error()
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		pterm.Debug.WithWriter(w).Printf("Technical details: %s\n", details)
	}
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError reports a 5xx answer without a structured message.
func isServerError(err error) bool {
	var tErr *api.TransportError
	return errors.As(err, &tErr) && tErr.StatusCode >= 500
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "the server"
	}
	return u.Host
}
