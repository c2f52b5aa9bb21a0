package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
)

var (
	warningPrefixes = []string{
		"Image file not found:",
		"Linked note not found:",
		"Export failed:",
		"Image export failed:",
		"Linked note export failed:",
	}
	successPrefixes = []string{"Export completed:"}
)

// Classify maps an export notification to its severity by the message kind
// it starts with. Note and file names after the prefix never change it.
func Classify(msg string) Kind {
	switch {
	case hasAnyPrefix(msg, warningPrefixes):
		return KindWarning
	case hasAnyPrefix(msg, successPrefixes):
		return KindSuccess
	default:
		return KindInfo
	}
}

func hasAnyPrefix(msg string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return false
}

// Console prints notifications one per line.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	quiet   bool
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
}

// NewConsole returns a Console writing to w. A quiet console only prints
// warnings.
func NewConsole(w io.Writer, quiet bool) *Console {
	return &Console{
		out:     w,
		quiet:   quiet,
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

func (c *Console) Notify(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch Classify(msg) {
	case KindWarning:
		fmt.Fprintln(c.out, c.warning.Render("! ")+msg)
	case KindSuccess:
		if !c.quiet {
			fmt.Fprintln(c.out, c.success.Render("✓ ")+msg)
		}
	default:
		if !c.quiet {
			fmt.Fprintln(c.out, c.info.Render("· "+msg))
		}
	}
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Count returns how many notifications contain substr.
func (r *Recorder) Count(substr string) int {
	n := 0
	for _, msg := range r.Messages() {
		if strings.Contains(msg, substr) {
			n++
		}
	}
	return n
}

// Tee fans a notification out to several sinks.
type Tee []interface{ Notify(string) }

func (t Tee) Notify(msg string) {
	for _, n := range t {
		n.Notify(msg)
	}
}
