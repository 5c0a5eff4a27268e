package config

import (
	"fmt"
	"strings"
)

// ValidationError reports an invalid value at a YAML path, with the file
// position that set it when known.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = strings.ToLower(strings.TrimSpace(*raw.Backend))
	}
	if raw.StatePath != nil {
		cfg.StatePath = *raw.StatePath
	}
	if raw.LockTimeoutMS != nil {
		cfg.LockTimeoutMS = *raw.LockTimeoutMS
	}
	if raw.IPCTimeoutMS != nil {
		cfg.IPCTimeoutMS = *raw.IPCTimeoutMS
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.Notify != nil {
		cfg.Notify = *raw.Notify
	}
	if l := raw.Launcher; l != nil {
		if l.Prefix != nil {
			cfg.Launcher.Prefix = *l.Prefix
		}
		if l.MaxEntries != nil {
			cfg.Launcher.MaxEntries = *l.MaxEntries
		}
	}
	if p := raw.Palette; p != nil {
		if p.Backend != nil {
			cfg.Palette.Backend = strings.ToLower(strings.TrimSpace(*p.Backend))
		}
		if p.FuzzyMatching != nil {
			cfg.Palette.FuzzyMatching = *p.FuzzyMatching
		}
	}
	return cfg
}
