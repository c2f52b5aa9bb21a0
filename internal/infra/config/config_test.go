package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ExportDir != "export" || cfg.ImageDir != "images" || cfg.LinkStyle != "relative" || !cfg.Compat() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	vault := t.TempDir()
	cfg := Default()
	if err := cfg.Set("export-dir", "out/notes"); err != nil {
		t.Fatalf("set export dir: %v", err)
	}
	if err := cfg.Set("compat-format", "off"); err != nil {
		t.Fatalf("set compat: %v", err)
	}
	if err := cfg.Set("link-style", "root"); err != nil {
		t.Fatalf("set link style: %v", err)
	}
	if err := Save(vault, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(vault, TOMLFile))
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(raw), `export_dir = "out/notes"`) {
		t.Fatalf("expected TOML output, got:\n%s", raw)
	}

	loaded, err := Load(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ExportDir != "out/notes" || loaded.Compat() || loaded.LinkStyle != "root" {
		t.Fatalf("unexpected loaded config %+v", loaded)
	}
	entries, _ := os.ReadDir(vault)
	if len(entries) != 1 {
		t.Fatalf("expected only the config file to remain, got %d entries", len(entries))
	}
}

func TestLoadFallsBackToYAML(t *testing.T) {
	vault := t.TempDir()
	yamlBody := "export_dir: published\nimage_dir: linked-images\n"
	if err := os.WriteFile(filepath.Join(vault, YAMLFile), []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := Load(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ExportDir != "published" || cfg.ImageDir != "linked-images" || !cfg.Compat() {
		t.Fatalf("unexpected yaml config %+v", cfg)
	}
}

func TestLoadRejectsInvalidLinkStyle(t *testing.T) {
	vault := t.TempDir()
	if err := os.WriteFile(filepath.Join(vault, TOMLFile), []byte("link_style = \"sideways\"\n"), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	if _, err := Load(vault); err == nil {
		t.Fatalf("expected invalid link style to fail")
	}
}

func TestGetAndSetUnknownKey(t *testing.T) {
	cfg := Default()
	if err := cfg.Set("nope", "x"); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
	if v, err := cfg.Get("EXPORT_DIR"); err != nil || v != "export" {
		t.Fatalf("expected export dir, got %q (%v)", v, err)
	}
	if err := cfg.Set("compat-format", "maybe"); err == nil {
		t.Fatalf("expected invalid boolean to fail")
	}
}
