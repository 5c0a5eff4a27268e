package config

import "fmt"

// Explain returns the effective value at a YAML path and where it came from.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "backend":
		return cfg.Backend, nil
	case "state_path":
		return cfg.StatePath, nil
	case "lock_timeout_ms":
		return cfg.LockTimeoutMS, nil
	case "ipc_timeout_ms":
		return cfg.IPCTimeoutMS, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "log_file":
		return cfg.LogFile, nil
	case "notify":
		return cfg.Notify, nil
	case "launcher.prefix":
		return cfg.Launcher.Prefix, nil
	case "launcher.max_entries":
		return cfg.Launcher.MaxEntries, nil
	case "palette.backend":
		return cfg.Palette.Backend, nil
	case "palette.fuzzy_matching":
		return cfg.Palette.FuzzyMatching, nil
	case "":
		return nil, fmt.Errorf("path is empty")
	default:
		return nil, fmt.Errorf("unknown config path %q", path)
	}
}
