// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package screen models the data a screen shows while it is being fetched.
package screen

// Kind is the loading phase of a screen.
type Kind int

const (
	Idle Kind = iota
	Loading
	Loaded
	Failed
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is what a screen renders: nothing yet, a spinner, data, or an error.
// Value is meaningful only when Kind is Loaded, Err only when Failed.
type State[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

func IdleState[T any]() State[T] { return State[T]{Kind: Idle} }
func LoadingState[T any]() State[T] { return State[T]{Kind: Loading} }
func LoadedState[T any](v T) State[T] { return State[T]{Kind: Loaded, Value: v} }
func FailedState[T any](err error) State[T] { return State[T]{Kind: Failed, Err: err} }

// Cases holds one renderer per Kind. Nil entries render nothing.
type Cases[T any] struct {
	Idle    func()
	Loading func()
	Loaded  func(T)
	Failed  func(error)
}

// Match calls the case for s.Kind.
func (s State[T]) Match(c Cases[T]) {
	switch s.Kind {
	case Idle:
		if c.Idle != nil {
			c.Idle()
		}
	case Loading:
		if c.Loading != nil {
			c.Loading()
		}
	case Loaded:
		if c.Loaded != nil {
			c.Loaded(s.Value)
		}
	case Failed:
		if c.Failed != nil {
			c.Failed(s.Err)
		}
	}
}
