package term

import (
	"os"
	"strconv"
	"strings"

	xterm "github.com/charmbracelet/x/term"
)

// IsTerminal reports whether f is an interactive terminal. TERM=dumb counts
// as not interactive.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	return xterm.IsTerminal(f.Fd())
}

// Width returns the column count of f, falling back to $COLUMNS and then 0.
func Width(f *os.File) int {
	if f != nil {
		if w, _, err := xterm.GetSize(f.Fd()); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	return 0
}
