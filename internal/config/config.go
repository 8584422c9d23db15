// Package config loads and saves sociogram settings as TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// Config holds persistent settings shared by socio and socioedit.
type Config struct {
	Form   FormConfig   `toml:"form"`
	Export ExportConfig `toml:"export"`
	Editor EditorConfig `toml:"editor"`
	Log    LogConfig    `toml:"log"`
}

// FormConfig seeds the form on startup.
type FormConfig struct {
	Count    int      `toml:"count"`
	FontSize int      `toml:"font_size"`
	Radius   int      `toml:"radius"`
	Names    []string `toml:"names"`
}

// ExportConfig controls where images go.
type ExportConfig struct {
	Dir        string `toml:"dir"`
	OpenViewer bool   `toml:"open_viewer"`
}

// EditorConfig controls the terminal canvas. Cell sizes are scene pixels
// per terminal cell at zoom 1.
type EditorConfig struct {
	CellWidth    int `toml:"cell_width"`
	CellHeight   int `toml:"cell_height"`
	SidebarWidth int `toml:"sidebar_width"`
}

// LogConfig controls the editor's log file.
type LogConfig struct {
	File  string `toml:"file"`  // empty means <config dir>/socioedit.log
	Level string `toml:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Form: FormConfig{
			Count:    sociogram.DefaultCount,
			FontSize: sociogram.DefaultFontSize,
			Radius:   sociogram.DefaultRadius,
		},
		Export: ExportConfig{Dir: ".", OpenViewer: false},
		Editor: EditorConfig{CellWidth: 8, CellHeight: 16, SidebarWidth: 30},
		Log:    LogConfig{Level: "info"},
	}
}

// ConfigDir returns the sociogram config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sociogram")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config at path. A missing file yields defaults. Values out
// of range are clamped.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureExists writes defaults to path unless a file is already there.
// It reports whether a file was created.
func EnsureExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := Save(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

// Normalize clamps numeric settings and fills blanks with defaults.
func (c *Config) Normalize() {
	d := Default()
	c.Form.Count = clamp(c.Form.Count, sociogram.MinCount, sociogram.MaxCount)
	c.Form.FontSize = clamp(c.Form.FontSize, sociogram.MinFontSize, sociogram.MaxFontSize)
	c.Form.Radius = clamp(c.Form.Radius, sociogram.MinRadius, sociogram.MaxRadius)
	if c.Export.Dir == "" {
		c.Export.Dir = d.Export.Dir
	}
	if c.Editor.CellWidth < 1 {
		c.Editor.CellWidth = d.Editor.CellWidth
	}
	if c.Editor.CellHeight < 1 {
		c.Editor.CellHeight = d.Editor.CellHeight
	}
	if c.Editor.SidebarWidth < 20 {
		c.Editor.SidebarWidth = d.Editor.SidebarWidth
	}
}

// NewForm builds the startup form. Configured names fill the first slots;
// the rest get placeholders.
func (c *Config) NewForm() *sociogram.Form {
	f := &sociogram.Form{
		Names: append([]string(nil), c.Form.Names...),
	}
	if len(f.Names) > c.Form.Count {
		f.Names = f.Names[:c.Form.Count]
	}
	f.SetCount(c.Form.Count)
	f.SetFontSize(c.Form.FontSize)
	f.SetRadius(c.Form.Radius)
	return f
}

// LogPath returns the editor log file path.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(ConfigDir(), "socioedit.log")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
