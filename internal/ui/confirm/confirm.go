package confirm

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sleroq/md-export/internal/domain/note"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Prompter asks for the export choices in the terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompter) Prompt(ctx context.Context, req note.PromptRequest) (note.Choices, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(newModel(req), opts...).Run()
	if err != nil {
		return note.Choices{}, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(model)
	if !ok || !m.confirmed {
		return note.Choices{}, note.ErrDeclined
	}
	return m.choices(), nil
}

type option struct {
	label string
	value bool
}

type model struct {
	title     string
	options   []option
	cursor    int
	confirmed bool
	done      bool
}

func newModel(req note.PromptRequest) model {
	options := []option{{label: "Rename image files (image01, image02, ...)", value: req.Defaults.Rename}}
	if req.Compat {
		options = append(options,
			option{label: "Insert image size style", value: req.Defaults.InsertStyle},
			option{label: "Insert line breaks (two trailing spaces)", value: req.Defaults.InsertLineBreaks},
		)
	}
	return model{
		title:   fmt.Sprintf("Export %q with linked files", req.NoteName),
		options: options,
	}
}

func (m model) choices() note.Choices {
	c := note.Choices{Rename: m.options[0].value}
	if len(m.options) == 3 {
		c.InsertStyle = m.options[1].value
		c.InsertLineBreaks = m.options[2].value
	}
	return c
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "x":
		m.options[m.cursor].value = !m.options[m.cursor].value
	case "enter", "y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "esc", "q", "n", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if opt.value {
			box = selectedStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, opt.label)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: toggle • enter: export • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
