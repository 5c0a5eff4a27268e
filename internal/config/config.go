// Package config loads hypract's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/hypract/internal/paths"
)

// Config is the effective configuration after defaults and files are merged.
type Config struct {
	Backend       string         `yaml:"backend"`
	StatePath     string         `yaml:"state_path"`
	LockTimeoutMS int            `yaml:"lock_timeout_ms"`
	IPCTimeoutMS  int            `yaml:"ipc_timeout_ms"`
	LogLevel      string         `yaml:"log_level"`
	LogFile       string         `yaml:"log_file"`
	Launcher      LauncherConfig `yaml:"launcher"`
	Palette       PaletteConfig  `yaml:"palette"`
	Notify        bool           `yaml:"notify"`
}

// LauncherConfig controls the launcher trigger and result size.
type LauncherConfig struct {
	Prefix     string `yaml:"prefix"`
	MaxEntries int    `yaml:"max_entries"`
}

// PaletteConfig selects the dmenu-style program used by `hypract palette`.
type PaletteConfig struct {
	Backend       string `yaml:"backend"`
	FuzzyMatching bool   `yaml:"fuzzy_matching"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:       "auto",
		LockTimeoutMS: 2000,
		IPCTimeoutMS:  0,
		LogLevel:      "warning",
		Launcher: LauncherConfig{
			Prefix:     ":ha",
			MaxEntries: 5,
		},
		Palette: PaletteConfig{
			Backend: "auto",
		},
		Notify: true,
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "hyprland", "ewmh":
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, hyprland, ewmh")}
	}
	if c.LockTimeoutMS < 0 {
		return &ValidationError{Path: "lock_timeout_ms", Err: fmt.Errorf("lock_timeout_ms must be >= 0")}
	}
	if c.IPCTimeoutMS < 0 {
		return &ValidationError{Path: "ipc_timeout_ms", Err: fmt.Errorf("ipc_timeout_ms must be >= 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if strings.TrimSpace(c.Launcher.Prefix) == "" {
		return &ValidationError{Path: "launcher.prefix", Err: fmt.Errorf("prefix must not be empty")}
	}
	if c.Launcher.MaxEntries < 1 {
		return &ValidationError{Path: "launcher.max_entries", Err: fmt.Errorf("max_entries must be >= 1")}
	}
	switch c.Palette.Backend {
	case "auto", "rofi", "fuzzel", "dmenu", "wofi":
	default:
		return &ValidationError{Path: "palette.backend", Err: fmt.Errorf("palette.backend must be one of: auto, rofi, fuzzel, dmenu, wofi")}
	}
	return nil
}

// LockTimeout is how long a command waits for the state lock.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMS) * time.Millisecond
}

// IPCTimeout bounds each compositor request; zero means no bound.
func (c *Config) IPCTimeout() time.Duration {
	return time.Duration(c.IPCTimeoutMS) * time.Millisecond
}

// ResolvedStatePath returns state_path with "~" expanded, or the XDG
// default when it is empty.
func (c *Config) ResolvedStatePath() (string, error) {
	if strings.TrimSpace(c.StatePath) == "" {
		return paths.StatePath()
	}
	return expandHome(c.StatePath)
}

// ResolvedLogFile returns log_file with "~" expanded; empty means stderr.
func (c *Config) ResolvedLogFile() (string, error) {
	if strings.TrimSpace(c.LogFile) == "" {
		return "", nil
	}
	return expandHome(c.LogFile)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
