package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig is one file's content. A nil field was not set by that file.
type RawConfig struct {
	Include       IncludeList  `yaml:"include"`
	Backend       *string      `yaml:"backend"`
	StatePath     *string      `yaml:"state_path"`
	LockTimeoutMS *int         `yaml:"lock_timeout_ms"`
	IPCTimeoutMS  *int         `yaml:"ipc_timeout_ms"`
	LogLevel      *string      `yaml:"log_level"`
	LogFile       *string      `yaml:"log_file"`
	Launcher      *RawLauncher `yaml:"launcher"`
	Palette       *RawPalette  `yaml:"palette"`
	Notify        *bool        `yaml:"notify"`
}

type RawLauncher struct {
	Prefix     *string `yaml:"prefix"`
	MaxEntries *int    `yaml:"max_entries"`
}

type RawPalette struct {
	Backend       *string `yaml:"backend"`
	FuzzyMatching *bool   `yaml:"fuzzy_matching"`
}

// merge returns r overridden by every field other sets.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	out.Include = nil
	if other.Backend != nil {
		out.Backend = other.Backend
	}
	if other.StatePath != nil {
		out.StatePath = other.StatePath
	}
	if other.LockTimeoutMS != nil {
		out.LockTimeoutMS = other.LockTimeoutMS
	}
	if other.IPCTimeoutMS != nil {
		out.IPCTimeoutMS = other.IPCTimeoutMS
	}
	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}
	if other.LogFile != nil {
		out.LogFile = other.LogFile
	}
	if other.Notify != nil {
		out.Notify = other.Notify
	}
	if other.Launcher != nil {
		merged := RawLauncher{}
		if out.Launcher != nil {
			merged = *out.Launcher
		}
		if other.Launcher.Prefix != nil {
			merged.Prefix = other.Launcher.Prefix
		}
		if other.Launcher.MaxEntries != nil {
			merged.MaxEntries = other.Launcher.MaxEntries
		}
		out.Launcher = &merged
	}
	if other.Palette != nil {
		merged := RawPalette{}
		if out.Palette != nil {
			merged = *out.Palette
		}
		if other.Palette.Backend != nil {
			merged.Backend = other.Palette.Backend
		}
		if other.Palette.FuzzyMatching != nil {
			merged.FuzzyMatching = other.Palette.FuzzyMatching
		}
		out.Palette = &merged
	}
	return out
}
