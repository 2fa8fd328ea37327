// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderPublishesLoadingThenLoaded(t *testing.T) {
	var kinds []Kind
	l := NewLoader(func(s State[int]) { kinds = append(kinds, s.Kind) })
	assert.Equal(t, Idle, l.State().Kind)

	s := l.Load(context.Background(), func(context.Context) (int, error) { return 7, nil })
	assert.Equal(t, Loaded, s.Kind)
	assert.Equal(t, 7, s.Value)
	assert.Equal(t, []Kind{Loading, Loaded}, kinds)
}

func TestLoaderFailure(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader[string](nil)
	s := l.Load(context.Background(), func(context.Context) (string, error) { return "", boom })
	assert.Equal(t, Failed, s.Kind)
	assert.ErrorIs(t, s.Err, boom)
}

func TestLoaderDropsResultAfterCancel(t *testing.T) {
	l := NewLoader[int](nil)
	ctx, cancel := context.WithCancel(context.Background())

	s := l.Load(ctx, func(context.Context) (int, error) {
		cancel()
		return 1, nil
	})
	assert.Equal(t, Loading, s.Kind, "result arriving after cancellation is dropped")
}

func TestLoaderDropsStaleGeneration(t *testing.T) {
	l := NewLoader[string](nil)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan State[string])

	go func() {
		done <- l.Load(context.Background(), func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
	}()
	<-started

	fresh := l.Load(context.Background(), func(context.Context) (string, error) { return "new", nil })
	require.Equal(t, "new", fresh.Value)

	close(release)
	<-done
	assert.Equal(t, "new", l.State().Value)
}

func TestLoaderCancel(t *testing.T) {
	l := NewLoader[int](nil)
	l.Load(context.Background(), func(context.Context) (int, error) { return 3, nil })
	l.Cancel()
	assert.Equal(t, Idle, l.State().Kind)
}

func TestMatch(t *testing.T) {
	var got string
	c := Cases[int]{
		Loading: func() { got = "loading" },
		Loaded:  func(v int) { got = "loaded" },
		Failed:  func(err error) { got = err.Error() },
	}
	LoadingState[int]().Match(c)
	assert.Equal(t, "loading", got)
	LoadedState(1).Match(c)
	assert.Equal(t, "loaded", got)
	FailedState[int](errors.New("x")).Match(c)
	assert.Equal(t, "x", got)

	got = "unchanged"
	IdleState[int]().Match(c)
	assert.Equal(t, "unchanged", got)
	assert.Equal(t, "failed", Failed.String())
}
