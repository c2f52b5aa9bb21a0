package exporter

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sleroq/md-export/internal/domain/note"
)

// Layout controls the shape of the exported tree.
type Layout struct {
	ImageDir  string
	LinkStyle note.LinkStyle
	// Compat enables the frontmatter and line-break formatting stage.
	Compat bool
}

func DefaultLayout() Layout {
	return Layout{ImageDir: note.DefaultImageDir, LinkStyle: note.LinkStyleRelative, Compat: true}
}

type Stats struct {
	Notes   int
	Images  int
	Missing int
	Failed  int
	Visited []string
}

// Walker exports a note and everything it links to. It is single-use state
// for one traversal and is not safe for concurrent use.
type Walker struct {
	store    note.ContentStore
	writer   note.Writer
	notifier note.Notifier
	logger   *log.Logger
	layout   Layout
	progress *exportProgressBar
	stats    Stats
}

func NewWalker(store note.ContentStore, writer note.Writer, notifier note.Notifier, logger *log.Logger, layout Layout) *Walker {
	if logger == nil {
		logger = log.Default()
	}
	if layout.ImageDir == "" {
		layout.ImageDir = note.DefaultImageDir
	}
	if layout.LinkStyle == "" {
		layout.LinkStyle = note.LinkStyleRelative
	}
	return &Walker{
		store:    store,
		writer:   writer,
		notifier: notifier,
		logger:   logger,
		layout:   layout,
	}
}

func (w *Walker) Stats() Stats {
	return w.stats
}

// ExportWithLinks writes src into dir, copies its images and recurses into
// linked notes. Failures are reported through the notifier and never
// returned.
func (w *Walker) ExportWithLinks(src note.File, text string, links note.LinkSet, dir string, ec *note.ExportContext) {
	if !ec.Visit(src.Path) {
		w.logger.Debug("already exported", "note", src.Path)
		return
	}
	w.stats.Visited = append(w.stats.Visited, src.Path)

	if err := w.exportNote(src, text, links, dir, ec); err != nil {
		w.stats.Failed++
		w.notify("Export failed: %v", err)
		return
	}
	w.notify("Export completed: %s", src.Basename)
}

func (w *Walker) exportNote(src note.File, text string, links note.LinkSet, dir string, ec *note.ExportContext) error {
	if err := w.writer.EnsureDir(dir); err != nil {
		return err
	}
	outPath := filepath.Join(dir, src.Basename+".md")
	if err := w.writer.WriteText(outPath, text); err != nil {
		return err
	}
	w.logger.Debug("wrote baseline", "note", src.Path, "path", outPath)

	names := AssignImageNames(links, ec.Choices.Rename)
	copied := make(map[string]string, len(names))
	resolvers := ImageResolvers(w.store, src)
	for _, ref := range links.Images {
		if isRemoteRef(ref) {
			w.logger.Debug("skipping remote image", "note", src.Path, "ref", ref)
			continue
		}
		f, strategy, ok := Resolve(links.ImageTarget(ref), resolvers)
		if !ok {
			w.stats.Missing++
			w.notify("Image file not found: %s", ref)
			continue
		}
		w.logger.Debug("resolved image", "ref", ref, "path", f.Path, "strategy", strategy)
		if w.copyImage(f, dir, names[ref]) {
			copied[ref] = names[ref]
		}
	}

	text = RewriteImageLinks(text, links, copied, w.layout.ImageDir, w.layout.LinkStyle)
	if w.layout.Compat {
		text = FormatCompat(text, ec.Choices.InsertStyle, ec.Choices.InsertLineBreaks)
	}
	if err := w.writer.WriteText(outPath, text); err != nil {
		return err
	}
	w.stats.Notes++
	w.progress.Advance(src.Basename)

	w.progress.Grow(len(links.MdFiles))
	noteResolvers := NoteResolvers(w.store, src)
	for _, ref := range links.MdFiles {
		linked, strategy, ok := Resolve(ref, noteResolvers)
		if !ok {
			w.stats.Missing++
			w.notify("Linked note not found: %s.md", note.LinkTarget(ref))
			continue
		}
		if _, seen := ec.Visited[linked.Path]; seen {
			w.logger.Debug("skipping visited note", "ref", ref, "path", linked.Path)
			continue
		}
		w.logger.Debug("resolved note", "ref", ref, "path", linked.Path, "strategy", strategy)
		w.notify("Exporting linked note: %s.md", note.LinkTarget(ref))

		linkedText, err := w.store.ReadText(linked)
		if err != nil {
			w.stats.Failed++
			w.notify("Linked note export failed: %v", err)
			continue
		}
		subDir := filepath.Join(dir, filepath.FromSlash(linkDirName(ref)))
		w.ExportWithLinks(linked, linkedText, ExtractLinks(linkedText), subDir, ec)
	}
	return nil
}

func (w *Walker) copyImage(f note.File, dir string, name string) bool {
	w.notify("Copying image file: %s → %s/%s", f.Path, w.layout.ImageDir, name)
	data, err := w.store.ReadBinary(f)
	if err != nil {
		w.stats.Failed++
		w.notify("Image export failed: %v", err)
		return false
	}
	if len(data) == 0 {
		w.stats.Failed++
		w.notify("Image export failed: %s is empty.", f.Path)
		return false
	}
	imagesDir := filepath.Join(dir, w.layout.ImageDir)
	if err := w.writer.EnsureDir(imagesDir); err != nil {
		w.stats.Failed++
		w.notify("Image export failed: %v", err)
		return false
	}
	outPath := filepath.Join(imagesDir, filepath.FromSlash(name))
	if err := w.writer.WriteBinary(outPath, data); err != nil {
		w.stats.Failed++
		w.notify("Image export failed: %v", err)
		return false
	}
	w.stats.Images++
	w.logger.Debug("copied image", "src", f.Path, "path", outPath, "bytes", len(data))
	return true
}

func (w *Walker) notify(format string, args ...any) {
	if w.notifier == nil {
		return
	}
	w.notifier.Notify(fmt.Sprintf(format, args...))
}

var remoteRefPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// isRemoteRef reports references with a URL scheme (https:, data:, ...).
// Windows drive letters are single characters and do not match.
func isRemoteRef(ref string) bool {
	m := remoteRefPattern.FindString(ref)
	return len(m) > 2
}

// linkDirName names the sub-directory a linked note is exported into.
func linkDirName(ref string) string {
	target := strings.ReplaceAll(note.LinkTarget(ref), "\\", "/")
	target = strings.TrimSuffix(target, ".md")
	cleaned := path.Clean(strings.TrimLeft(target, "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		base := path.Base(cleaned)
		if base == "." || base == ".." || base == "/" {
			return "_"
		}
		return base
	}
	return cleaned
}
