package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sleroq/md-export/internal/domain/note"
	"github.com/sleroq/md-export/internal/infra/term"
)

var ErrNoteNotFound = errors.New("note not found")

// Exporter runs one export invocation: it resolves the start note, asks for
// the export choices once and walks the link graph.
type Exporter struct {
	// VaultDir is the base for a relative ExportDir.
	VaultDir     string
	ExportDir    string
	Store        note.ContentStore
	Writer       note.Writer
	Notifier     note.Notifier
	Prompter     note.Prompter
	Logger       *log.Logger
	Layout       Layout
	ShowProgress bool
}

func (e Exporter) DestinationRoot() string {
	dir := e.ExportDir
	if dir == "" {
		dir = note.DefaultExportDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(e.VaultDir, dir)
}

// FindNote resolves the start note by vault path, or by name the same way
// linked notes are resolved.
func (e Exporter) FindNote(notePath string) (note.File, error) {
	if f, ok := e.Store.Resolve(notePath); ok {
		return f, nil
	}
	if f, _, ok := Resolve(notePath, NoteResolvers(e.Store, note.File{})); ok {
		return f, nil
	}
	return note.File{}, fmt.Errorf("%w: %s", ErrNoteNotFound, notePath)
}

func (e Exporter) Export(ctx context.Context, notePath string) (Stats, error) {
	choices, src, err := e.Prepare(ctx, notePath)
	if err != nil {
		return Stats{}, err
	}
	return e.Run(src, choices)
}

// Prepare resolves the start note and collects the user's choices.
func (e Exporter) Prepare(ctx context.Context, notePath string) (note.Choices, note.File, error) {
	if e.Store == nil || e.Writer == nil {
		return note.Choices{}, note.File{}, fmt.Errorf("store and writer are required")
	}
	src, err := e.FindNote(notePath)
	if err != nil {
		return note.Choices{}, note.File{}, err
	}

	prompter := e.Prompter
	if prompter == nil {
		prompter = note.StaticPrompter{Rename: true}
	}
	choices, err := prompter.Prompt(ctx, note.PromptRequest{
		NoteName: src.Basename,
		Compat:   e.Layout.Compat,
		Defaults: note.Choices{Rename: true},
	})
	if err != nil {
		return note.Choices{}, note.File{}, err
	}
	return choices, src, nil
}

// Run exports src with already collected choices. A fresh visited set is used
// for every call.
func (e Exporter) Run(src note.File, choices note.Choices) (Stats, error) {
	text, err := e.Store.ReadText(src)
	if err != nil {
		return Stats{}, fmt.Errorf("read note %s: %w", src.Path, err)
	}

	root := e.DestinationRoot()
	ec := note.NewExportContext(root, choices)
	w := NewWalker(e.Store, e.Writer, e.Notifier, e.Logger, e.Layout)
	if e.ShowProgress && term.IsTerminal(os.Stderr) {
		w.progress = newExportProgressBar(os.Stderr, term.Width(os.Stderr))
		defer w.progress.Close()
	}

	w.logger.Debug("starting export", "note", src.Path, "root", root, "rename", choices.Rename, "style", choices.InsertStyle, "lineBreaks", choices.InsertLineBreaks)
	w.ExportWithLinks(src, text, ExtractLinks(text), filepath.Join(root, src.Basename), ec)
	w.progress.Finish("done")

	return w.Stats(), nil
}
