// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure a command can surface is tagged with a machine-readable Kind so
// the presentation layer can pick the right message without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation marks local, field-level input problems. Never reaches the network.
	Validation Kind = "validation"
	// Application marks structured errors returned by the backend.
	Application Kind = "application"
	// Transport marks timeouts, connection failures and malformed responses.
	Transport Kind = "transport"
	// Storage marks failures reading or writing the credential store.
	Storage Kind = "storage"
	// Unauthenticated marks operations that need a signed-in session.
	Unauthenticated Kind = "unauthenticated"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost *E in err's chain, or "".
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
