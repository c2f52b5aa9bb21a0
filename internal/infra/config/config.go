// Package config loads and persists the per-vault export settings.
//
// Settings live next to the vault content:
//   - <vault>/.mdexport.toml (read and written)
//   - <vault>/.mdexport.yaml (read only, when no TOML file exists)
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sleroq/md-export/internal/domain/note"
)

const (
	TOMLFile = ".mdexport.toml"
	YAMLFile = ".mdexport.yaml"
)

type Config struct {
	// ExportDir is relative to the vault root unless absolute.
	ExportDir string `toml:"export_dir" yaml:"export_dir"`
	ImageDir  string `toml:"image_dir" yaml:"image_dir"`
	// LinkStyle is "relative" (./images/x) or "root" (/images/x).
	LinkStyle string `toml:"link_style" yaml:"link_style"`
	// CompatFormat enables frontmatter and line-break formatting.
	CompatFormat *bool `toml:"compat_format" yaml:"compat_format"`
}

func Default() Config {
	compat := true
	return Config{
		ExportDir:    note.DefaultExportDir,
		ImageDir:     note.DefaultImageDir,
		LinkStyle:    string(note.LinkStyleRelative),
		CompatFormat: &compat,
	}
}

func (c Config) Compat() bool {
	return c.CompatFormat == nil || *c.CompatFormat
}

// Path returns the file Save writes to.
func Path(vaultDir string) string {
	return filepath.Join(vaultDir, TOMLFile)
}

// Load reads the vault config. A missing file yields Default().
func Load(vaultDir string) (Config, error) {
	cfg := Default()

	tomlPath := filepath.Join(vaultDir, TOMLFile)
	if _, err := toml.DecodeFile(tomlPath, &cfg); err == nil {
		return cfg.withDefaults()
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("parse %s: %w", tomlPath, err)
	}

	yamlPath := filepath.Join(vaultDir, YAMLFile)
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", yamlPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", yamlPath, err)
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() (Config, error) {
	def := Default()
	c.ExportDir = strings.TrimSpace(c.ExportDir)
	if c.ExportDir == "" {
		c.ExportDir = def.ExportDir
	}
	c.ImageDir = strings.Trim(strings.TrimSpace(c.ImageDir), "/")
	if c.ImageDir == "" {
		c.ImageDir = def.ImageDir
	}
	style, err := note.ParseLinkStyle(c.LinkStyle)
	if err != nil {
		return Config{}, err
	}
	c.LinkStyle = string(style)
	if c.CompatFormat == nil {
		c.CompatFormat = def.CompatFormat
	}
	return c, nil
}

// Save writes cfg as TOML, replacing the file atomically.
func Save(vaultDir string, cfg Config) error {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	target := Path(vaultDir)
	tmp, err := os.CreateTemp(vaultDir, TOMLFile+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}

// Set updates one key by its CLI name.
func (c *Config) Set(key, value string) error {
	switch normalizeKey(key) {
	case "export_dir":
		c.ExportDir = value
	case "image_dir":
		c.ImageDir = value
	case "link_style":
		style, err := note.ParseLinkStyle(value)
		if err != nil {
			return err
		}
		c.LinkStyle = string(style)
	case "compat_format":
		v, err := parseBool(value)
		if err != nil {
			return err
		}
		c.CompatFormat = &v
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Get returns one key by its CLI name.
func (c Config) Get(key string) (string, error) {
	switch normalizeKey(key) {
	case "export_dir":
		return c.ExportDir, nil
	case "image_dir":
		return c.ImageDir, nil
	case "link_style":
		return c.LinkStyle, nil
	case "compat_format":
		return fmt.Sprintf("%t", c.Compat()), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func Keys() []string {
	return []string{"export-dir", "image-dir", "link-style", "compat-format"}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}
