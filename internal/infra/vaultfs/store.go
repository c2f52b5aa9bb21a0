package vaultfs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/sleroq/md-export/internal/domain/note"
)

type Store struct {
	fsys    fs.FS
	exclude []string

	once    sync.Once
	files   []note.File
	listErr error
}

type Option func(*Store)

// WithExcludedDir hides a vault-relative directory from ListAll. Used for the
// export root when it lives inside the vault.
func WithExcludedDir(dir string) Option {
	return func(s *Store) {
		dir = strings.Trim(path.Clean(strings.ReplaceAll(dir, "\\", "/")), "/")
		if dir == "" || dir == "." || strings.HasPrefix(dir, "..") {
			return
		}
		s.exclude = append(s.exclude, dir)
	}
}

func New(fsys fs.FS, opts ...Option) *Store {
	s := &Store{fsys: fsys}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve looks up a vault-relative path. Only regular files resolve.
func (s *Store) Resolve(p string) (note.File, bool) {
	p = CleanPath(p)
	if p == "" || !fs.ValidPath(p) {
		return note.File{}, false
	}
	info, err := fs.Stat(s.fsys, p)
	if err != nil || info.IsDir() {
		return note.File{}, false
	}
	return fileFromPath(p), true
}

func (s *Store) ReadText(f note.File) (string, error) {
	data, err := fs.ReadFile(s.fsys, f.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Path, err)
	}
	return string(data), nil
}

func (s *Store) ReadBinary(f note.File) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

// ListAll returns every regular file in the vault in fs.WalkDir order. The
// listing is computed once per Store.
func (s *Store) ListAll() ([]note.File, error) {
	s.once.Do(func() {
		s.files, s.listErr = s.walk()
	})
	return s.files, s.listErr
}

func (s *Store) walk() ([]note.File, error) {
	var out []note.File
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && (strings.HasPrefix(d.Name(), ".") || s.excluded(p)) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		out = append(out, fileFromPath(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vault: %w", err)
	}
	return out, nil
}

func (s *Store) excluded(p string) bool {
	for _, dir := range s.exclude {
		if p == dir {
			return true
		}
	}
	return false
}

// CleanPath turns a link target into a vault-relative slash path. It returns
// "" for paths that point outside the vault.
func CleanPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}

func fileFromPath(p string) note.File {
	name := norm.NFC.String(path.Base(p))
	ext := path.Ext(name)
	return note.File{
		Path:      p,
		Name:      name,
		Basename:  strings.TrimSuffix(name, ext),
		Extension: strings.TrimPrefix(ext, "."),
	}
}
