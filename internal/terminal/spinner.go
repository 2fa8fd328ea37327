// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

// Frames is the stick-style spinner animation.
var Frames = []string{"|", "/", "-", "\\"}

// StartSpinner shows frames followed by text on a single line of w until the
// returned function is called. Nothing is drawn if stop comes within delay,
// so fast operations do not flash. Stop clears the line and is idempotent.
func StartSpinner(w io.Writer, text string, delay time.Duration) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-done:
			return
		case <-time.After(delay):
		}

		cursor.Hide()
		defer cursor.Show()
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			line := fmt.Sprintf("%s %s", Frames[i%len(Frames)], text)
			fmt.Fprintf(w, "\r%s", line)
			select {
			case <-done:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
