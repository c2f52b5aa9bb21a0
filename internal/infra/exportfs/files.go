package exportfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// OS writes export output to the local filesystem.
type OS struct{}

func (OS) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	return nil
}

func (w OS) WriteText(path string, content string) error {
	return w.write(path, []byte(content))
}

func (w OS) WriteBinary(path string, data []byte) error {
	return w.write(path, data)
}

func (w OS) write(path string, data []byte) error {
	if err := w.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
