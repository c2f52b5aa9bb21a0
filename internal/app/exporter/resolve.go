package exporter

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sleroq/md-export/internal/domain/note"
	"github.com/sleroq/md-export/internal/infra/vaultfs"
)

// Resolver is one lookup strategy. Chains are tried in order and the first
// hit wins.
type Resolver struct {
	Name string
	Find func(ref string) (note.File, bool)
}

func Resolve(ref string, chain []Resolver) (note.File, string, bool) {
	for _, r := range chain {
		if f, ok := r.Find(ref); ok {
			return f, r.Name, true
		}
	}
	return note.File{}, "", false
}

// ImageResolvers returns the lookup chain for an image referenced from src.
// Its strategies take the file name part of a reference (LinkSet.ImageTarget).
func ImageResolvers(store note.ContentStore, src note.File) []Resolver {
	return []Resolver{
		{Name: "direct path", Find: func(target string) (note.File, bool) {
			if !strings.Contains(target, "/") && !strings.HasPrefix(target, ".") {
				return note.File{}, false
			}
			return resolveDirect(store, src, target)
		}},
		{Name: "note ancestors", Find: func(target string) (note.File, bool) {
			if strings.Contains(target, "/") {
				return note.File{}, false
			}
			for dir := src.Dir(); dir != ""; dir = parentDir(dir) {
				if f, ok := store.Resolve(dir + "/" + target); ok {
					return f, true
				}
			}
			return note.File{}, false
		}},
		{Name: "asset dirs", Find: func(target string) (note.File, bool) {
			return resolveInAssetDirs(store, target)
		}},
		{Name: "vault scan", Find: func(target string) (note.File, bool) {
			name := norm.NFC.String(target)
			return scanStore(store, func(f note.File) bool { return f.Name == name })
		}},
	}
}

// NoteResolvers returns the lookup chain for a note linked from src.
func NoteResolvers(store note.ContentStore, src note.File) []Resolver {
	return []Resolver{
		{Name: "direct path", Find: func(ref string) (note.File, bool) {
			return resolveDirect(store, src, notePath(ref))
		}},
		{Name: "asset dirs", Find: func(ref string) (note.File, bool) {
			return resolveInAssetDirs(store, notePath(ref))
		}},
		{Name: "vault scan", Find: func(ref string) (note.File, bool) {
			basename := norm.NFC.String(path.Base(strings.TrimSuffix(notePath(ref), ".md")))
			return scanStore(store, func(f note.File) bool {
				return strings.EqualFold(f.Extension, "md") && f.Basename == basename
			})
		}},
	}
}

func notePath(ref string) string {
	target := note.LinkTarget(ref)
	if strings.HasSuffix(strings.ToLower(target), ".md") {
		return target
	}
	return target + ".md"
}

func resolveDirect(store note.ContentStore, src note.File, target string) (note.File, bool) {
	if p := vaultfs.CleanPath(target); p != "" {
		if f, ok := store.Resolve(p); ok {
			return f, true
		}
	}
	if dir := src.Dir(); dir != "" && !strings.HasPrefix(target, "/") {
		if p := vaultfs.CleanPath(path.Join(dir, target)); p != "" {
			return store.Resolve(p)
		}
	}
	return note.File{}, false
}

func resolveInAssetDirs(store note.ContentStore, target string) (note.File, bool) {
	for _, dir := range note.ConventionalAssetDirs {
		if f, ok := store.Resolve(path.Join(dir, target)); ok {
			return f, true
		}
	}
	return note.File{}, false
}

func scanStore(store note.ContentStore, match func(note.File) bool) (note.File, bool) {
	files, err := store.ListAll()
	if err != nil {
		return note.File{}, false
	}
	for _, f := range files {
		if match(f) {
			return f, true
		}
	}
	return note.File{}, false
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == "." || parent == "/" {
		return ""
	}
	return parent
}
