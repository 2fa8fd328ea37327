// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package route decides which command graph is active for a session state:
// a loading placeholder while the persisted session is being restored, the
// sign-in/sign-up graph for anonymous users, and the app graph otherwise.
package route

import (
	"fmt"
	"sync"

	"gymlog/cli/internal/session"
)

// Graph is a set of screens (commands) shown together.
type Graph int

const (
	GraphLoading Graph = iota
	GraphAuth
	GraphApp
	// GraphAny marks commands available regardless of session state.
	GraphAny
)

func (g Graph) String() string {
	switch g {
	case GraphLoading:
		return "loading"
	case GraphAuth:
		return "auth"
	case GraphApp:
		return "app"
	case GraphAny:
		return "any"
	default:
		return fmt.Sprintf("graph(%d)", int(g))
	}
}

// Parse maps a command annotation to a Graph.
func Parse(s string) (Graph, error) {
	switch s {
	case "loading":
		return GraphLoading, nil
	case "auth":
		return GraphAuth, nil
	case "app":
		return GraphApp, nil
	case "any", "":
		return GraphAny, nil
	}
	return GraphAny, fmt.Errorf("unknown route graph %q", s)
}

// Select returns the graph for snap. Only the user id decides between auth
// and app.
func Select(snap session.Snapshot) Graph {
	if snap.Status == session.StatusRestoring {
		return GraphLoading
	}
	if snap.Session.UserID != "" {
		return GraphApp
	}
	return GraphAuth
}

// Allows reports whether a command declared for want may run while current
// is active.
func Allows(current, want Graph) bool {
	return want == GraphAny || want == current
}

// Subscriber is the part of session.Store the Selector needs.
type Subscriber interface {
	Subscribe(fn func(session.Snapshot)) (cancel func())
}

// Selector tracks the active graph as the session changes.
type Selector struct {
	mu       sync.Mutex
	current  Graph
	handlers []func(Graph)
	cancel   func()
}

// NewSelector subscribes to store. The current graph is known on return.
func NewSelector(store Subscriber) *Selector {
	s := &Selector{current: GraphLoading}
	s.cancel = store.Subscribe(s.update)
	return s
}

func (s *Selector) update(snap session.Snapshot) {
	next := Select(snap)
	s.mu.Lock()
	if next == s.current {
		s.mu.Unlock()
		return
	}
	s.current = next
	handlers := append([]func(Graph){}, s.handlers...)
	s.mu.Unlock()

	for _, h := range handlers {
		h(next)
	}
}

// Current returns the active graph.
func (s *Selector) Current() Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnChange registers fn to run whenever the active graph changes.
func (s *Selector) OnChange(fn func(Graph)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, fn)
}

// Close stops following the store.
func (s *Selector) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}
