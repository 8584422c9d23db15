package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Form.Count != 5 {
		t.Errorf("default count = %d, want 5", cfg.Form.Count)
	}
	if cfg.Form.FontSize != 14 {
		t.Errorf("default font size = %d, want 14", cfg.Form.FontSize)
	}
	if cfg.Form.Radius != 150 {
		t.Errorf("default radius = %d, want 150", cfg.Form.Radius)
	}
	if cfg.Export.OpenViewer {
		t.Error("default open_viewer should be false")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-config")
	if got, want := ConfigDir(), "/tmp/test-config/sociogram"; got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got, want := Path(), "/tmp/test-config/sociogram/config.toml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Form.Count != sociogram.DefaultCount {
		t.Errorf("count = %d, want default", cfg.Form.Count)
	}
}

func TestLoadParsesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[form]
count = 40
font_size = 2
radius = 220
names = ["Ana", "Ben"]

[export]
dir = "/tmp/out"
open_viewer = true

[editor]
cell_width = 0

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Form.Count != sociogram.MaxCount {
		t.Errorf("count = %d, want clamp to %d", cfg.Form.Count, sociogram.MaxCount)
	}
	if cfg.Form.FontSize != sociogram.MinFontSize {
		t.Errorf("font size = %d, want clamp to %d", cfg.Form.FontSize, sociogram.MinFontSize)
	}
	if cfg.Form.Radius != 220 {
		t.Errorf("radius = %d, want 220", cfg.Form.Radius)
	}
	if cfg.Export.Dir != "/tmp/out" || !cfg.Export.OpenViewer {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Editor.CellWidth != Default().Editor.CellWidth {
		t.Errorf("cell width = %d, want default", cfg.Editor.CellWidth)
	}
	if cfg.Editor.CellHeight != Default().Editor.CellHeight {
		t.Errorf("missing cell height = %d, want default", cfg.Editor.CellHeight)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[form\ncount = "), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg == nil || cfg.Form.Count != sociogram.DefaultCount {
		t.Error("parse failure should still return defaults")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Form.Names = []string{"Ana", "Ben", "Cid"}
	cfg.Form.Count = 3
	cfg.Export.OpenViewer = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Form.Names) != 3 || loaded.Form.Names[2] != "Cid" {
		t.Errorf("names = %v", loaded.Form.Names)
	}
	if !loaded.Export.OpenViewer {
		t.Error("open_viewer should round-trip")
	}
}

func TestEnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	created, err := EnsureExists(path)
	if err != nil || !created {
		t.Fatalf("first EnsureExists = %v, %v; want created", created, err)
	}
	created, err = EnsureExists(path)
	if err != nil || created {
		t.Errorf("second EnsureExists = %v, %v; want existing", created, err)
	}
}

func TestNewForm(t *testing.T) {
	tests := []struct {
		name  string
		count int
		names []string
		want  []string
	}{
		{"placeholders", 3, nil, []string{"Node 1", "Node 2", "Node 3"}},
		{"partial names", 3, []string{"Ana"}, []string{"Ana", "Node 2", "Node 3"}},
		{"extra names dropped", 2, []string{"Ana", "Ben", "Cid"}, []string{"Ana", "Ben"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Form.Count = tt.count
			cfg.Form.Names = tt.names

			f := cfg.NewForm()
			if len(f.Names) != len(tt.want) {
				t.Fatalf("names = %v, want %v", f.Names, tt.want)
			}
			for i := range tt.want {
				if f.Names[i] != tt.want[i] {
					t.Errorf("names[%d] = %q, want %q", i, f.Names[i], tt.want[i])
				}
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	cfg := Default()
	if got, want := cfg.LogPath(), "/tmp/xdg/sociogram/socioedit.log"; got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
	cfg.Log.File = "/var/log/s.log"
	if got := cfg.LogPath(); got != "/var/log/s.log" {
		t.Errorf("LogPath() = %q, want explicit file", got)
	}
}
