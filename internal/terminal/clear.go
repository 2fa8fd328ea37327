// Package terminal provides prompts, spinners and line clearing for the
// interactive commands.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// Width returns the width of stdout, or 80 when it is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// ClearPreviousLines erases text that was echoed to w, typically a prompt
// and the secret typed after it. textLength is the prompt plus the input;
// the wrapped line count is derived from the terminal width, plus one for
// the line Enter moved to.
func ClearPreviousLines(w io.Writer, textLength int) {
	ClearLines(w, linesFor(textLength, Width()))
}

func linesFor(textLength, width int) int {
	total := int(math.Ceil(float64(textLength) / float64(width)))
	if total < 1 {
		total = 1
	}
	return total + 1
}

// ClearLines erases n lines ending at the cursor.
func ClearLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
