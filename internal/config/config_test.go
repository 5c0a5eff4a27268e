package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Launcher.Prefix != ":ha" || cfg.Launcher.MaxEntries != 5 {
		t.Fatalf("unexpected launcher defaults: %+v", cfg.Launcher)
	}
	if cfg.IPCTimeout() != 0 {
		t.Fatalf("expected no ipc timeout by default, got %v", cfg.IPCTimeout())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "warning" || len(res.Files) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "auto" {
		t.Fatalf("expected backend auto, got %q", res.Config.Backend)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", strings.Join([]string{
		"backend: Hyprland",
		"ipc_timeout_ms: 1500",
		"notify: false",
		"launcher:",
		"  prefix: \":act\"",
		"palette:",
		"  fuzzy_matching: true",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Backend != "hyprland" {
		t.Fatalf("backend = %q", cfg.Backend)
	}
	if cfg.IPCTimeout().Milliseconds() != 1500 {
		t.Fatalf("ipc timeout = %v", cfg.IPCTimeout())
	}
	if cfg.Notify {
		t.Fatal("expected notify false")
	}
	if cfg.Launcher.Prefix != ":act" || cfg.Launcher.MaxEntries != 5 {
		t.Fatalf("launcher = %+v", cfg.Launcher)
	}
	if !cfg.Palette.FuzzyMatching || cfg.Palette.Backend != "auto" {
		t.Fatalf("palette = %+v", cfg.Palette)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "hotkey: Mod4-Return\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "log_level: info\nlauncher:\n  max_entries: 0\n")
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Path != "launcher.max_entries" {
		t.Fatalf("path = %q", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 3 {
		t.Fatalf("source = %+v", verr.Source)
	}
	if !strings.Contains(err.Error(), ":3:") {
		t.Fatalf("error lacks position: %v", err)
	}
}

func TestValidate_Enumerations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"backend", func(c *Config) { c.Backend = "sway" }, "backend"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"palette", func(c *Config) { c.Palette.Backend = "anyrun" }, "palette.backend"},
		{"prefix", func(c *Config) { c.Launcher.Prefix = " " }, "launcher.prefix"},
		{"lock timeout", func(c *Config) { c.LockTimeoutMS = -1 }, "lock_timeout_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			var verr *ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) || verr.Path != tt.path {
				t.Fatalf("Validate = %v, want path %q", err, tt.path)
			}
		})
	}
}

func TestLoadFromPath_Includes(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "conf.d")
	if err := os.MkdirAll(incDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, incDir, "10-log.yaml", "log_level: debug\nlauncher:\n  max_entries: 8\n")
	writeConfig(t, incDir, "ignored.txt", "not: yaml: at all")
	path := writeConfig(t, dir, "config.yaml", "include: conf.d\nlauncher:\n  prefix: \":x\"\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "debug" || res.Config.Launcher.MaxEntries != 8 || res.Config.Launcher.Prefix != ":x" {
		t.Fatalf("merged config = %+v", res.Config)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")
	if _, err := LoadFromPath(filepath.Join(dir, "a.yaml")); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestResolvedStatePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	cfg := DefaultConfig()
	got, err := cfg.ResolvedStatePath()
	if err != nil || got != "/xdg/state/hypract/state.json" {
		t.Fatalf("ResolvedStatePath = %q, %v", got, err)
	}

	t.Setenv("HOME", "/home/tester")
	cfg.StatePath = "~/hypract.json"
	got, err = cfg.ResolvedStatePath()
	if err != nil || got != "/home/tester/hypract.json" {
		t.Fatalf("ResolvedStatePath = %q, %v", got, err)
	}
}

func TestExplain(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "notify: false\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, src, err := Explain(res, "notify")
	if err != nil || v != false || src.Kind != SourceFile {
		t.Fatalf("Explain(notify) = %v, %+v, %v", v, src, err)
	}
	v, src, err = Explain(res, "launcher.max_entries")
	if err != nil || v != 5 || src.Kind != SourceDefault {
		t.Fatalf("Explain(launcher.max_entries) = %v, %+v, %v", v, src, err)
	}
	if _, _, err := Explain(res, "hotkey"); err == nil {
		t.Fatal("expected unknown path error")
	}
}
