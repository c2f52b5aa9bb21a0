package note

import (
	"context"
	"errors"
	"path"
)

// ErrDeclined is returned by a Prompter when the user cancels the export.
var ErrDeclined = errors.New("export declined")

// File is one entry of the content store. Path is vault-relative and always
// uses forward slashes.
type File struct {
	Path      string
	Name      string
	Basename  string
	Extension string
}

// Dir returns the vault-relative directory of f, "" for the vault root.
func (f File) Dir() string {
	dir := path.Dir(f.Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// LinkSet holds the references scanned from one note. Images and MdFiles keep
// first-appearance order. RawImages maps a decoded image reference to the raw
// target strings it was decoded from. WikiImages marks references written as
// ![[...]], whose alias and heading suffixes are not part of the file name.
type LinkSet struct {
	Images     []string
	MdFiles    []string
	RawImages  map[string][]string
	WikiImages map[string]struct{}
}

// ImageTarget returns the file name part of an image reference.
func (l LinkSet) ImageTarget(ref string) string {
	if _, ok := l.WikiImages[ref]; ok {
		return LinkTarget(ref)
	}
	return ref
}

type Choices struct {
	Rename           bool
	InsertStyle      bool
	InsertLineBreaks bool
}

// PromptRequest tells the prompt which questions to ask. Compat is false for
// the rename-only variant.
type PromptRequest struct {
	NoteName string
	Compat   bool
	Defaults Choices
}

// ExportContext is shared by reference across one whole traversal.
type ExportContext struct {
	DestinationRoot string
	Choices         Choices
	Visited         map[string]struct{}
}

func NewExportContext(root string, choices Choices) *ExportContext {
	return &ExportContext{
		DestinationRoot: root,
		Choices:         choices,
		Visited:         map[string]struct{}{},
	}
}

// Visit marks identity as visited and reports whether it was new.
func (c *ExportContext) Visit(identity string) bool {
	if _, seen := c.Visited[identity]; seen {
		return false
	}
	c.Visited[identity] = struct{}{}
	return true
}

type ContentStore interface {
	Resolve(path string) (File, bool)
	ReadText(f File) (string, error)
	ReadBinary(f File) ([]byte, error)
	ListAll() ([]File, error)
}

type Writer interface {
	EnsureDir(path string) error
	WriteText(path string, content string) error
	WriteBinary(path string, data []byte) error
}

type Notifier interface {
	Notify(msg string)
}

type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (Choices, error)
}

// StaticPrompter answers every prompt with the same choices.
type StaticPrompter Choices

func (p StaticPrompter) Prompt(_ context.Context, req PromptRequest) (Choices, error) {
	c := Choices(p)
	if !req.Compat {
		c.InsertStyle = false
		c.InsertLineBreaks = false
	}
	return c, nil
}
