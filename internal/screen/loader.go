// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package screen

import (
	"context"
	"sync"
)

// Loader runs fetches for one screen and keeps the resulting State.
//
// Only the most recent Load may publish: a result that arrives after a newer
// Load started, or after the context it was started with was cancelled, is
// dropped. This is what keeps a left screen from being updated.
type Loader[T any] struct {
	mu       sync.Mutex
	state    State[T]
	gen      uint64
	onChange func(State[T])
}

// NewLoader returns an idle loader. onChange, when non-nil, is called with
// every state the loader publishes.
func NewLoader[T any](onChange func(State[T])) *Loader[T] {
	return &Loader[T]{state: IdleState[T](), onChange: onChange}
}

// State returns the last published state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load moves to Loading, runs fetch and publishes Loaded or Failed. It
// returns the state the call ended with; when the result was dropped that is
// the state some other call published.
func (l *Loader[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) State[T] {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()
	l.publish(ctx, gen, LoadingState[T]())

	v, err := fetch(ctx)
	if err != nil {
		l.publish(ctx, gen, FailedState[T](err))
	} else {
		l.publish(ctx, gen, LoadedState(v))
	}
	return l.State()
}

// Cancel invalidates any fetch in flight and returns to Idle.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	l.gen++
	l.state = IdleState[T]()
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn(IdleState[T]())
	}
}

func (l *Loader[T]) publish(ctx context.Context, gen uint64, s State[T]) {
	l.mu.Lock()
	if gen != l.gen || ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	l.state = s
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
