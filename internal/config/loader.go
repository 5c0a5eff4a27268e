package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/hypract/internal/paths"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source records where a config value came from.
type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML path -> last file that set it
	Files   []string          // loaded files, in load order
}

// Load reads the configuration from the default location. A missing file
// yields the defaults.
func Load() (*LoadResult, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path and its includes, merges them over the defaults
// and validates the result. A missing path yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		seen:    map[string]bool{},
		sources: map[string]Source{},
	}

	if _, err := os.Stat(path); err == nil {
		if err := l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := BuildEffectiveConfig(l.raw)
	if err := cfg.Validate(); err != nil {
		return nil, l.withSource(err)
	}
	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader folds a file and its includes into one RawConfig. Includes are
// applied before the including file, so the including file wins.
type loader struct {
	raw     RawConfig
	sources map[string]Source
	files   []string

	seen  map[string]bool
	chain []string
}

func (l *loader) load(path string) error {
	file, err := canonicalPath(path)
	if err != nil {
		return err
	}
	if slices.Contains(l.chain, file) {
		return fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.chain, " -> "), file)
	}
	if l.seen[file] {
		return nil
	}
	l.seen[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var raw RawConfig
	if err := decodeStrict(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	l.chain = append(l.chain, file)
	for _, inc := range raw.Include {
		targets, err := resolveInclude(file, inc)
		if err != nil {
			return fmt.Errorf("%s: include %q: %w", file, inc, err)
		}
		for _, target := range targets {
			if err := l.load(target); err != nil {
				return err
			}
		}
	}
	l.chain = l.chain[:len(l.chain)-1]

	l.raw = l.raw.merge(raw)
	recordSources(&doc, file, l.sources)
	l.files = append(l.files, file)
	return nil
}

// withSource points a validation error at the file and line that set the
// offending key.
func (l *loader) withSource(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if src, ok := l.sources[verr.Path]; ok {
			verr.Source = src
		}
	}
	return err
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// resolveInclude turns an include entry into files. Relative entries are
// relative to the including file; a directory contributes its *.yaml and
// *.yml files in name order.
func resolveInclude(from, include string) ([]string, error) {
	if strings.TrimSpace(include) == "" {
		return nil, errors.New("path is empty")
	}
	target, err := expandHome(include)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(from), target)
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	var yamlFiles []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(target, pattern))
		if err != nil {
			return nil, err
		}
		yamlFiles = append(yamlFiles, matches...)
	}
	yamlFiles = slices.DeleteFunc(yamlFiles, func(p string) bool {
		fi, err := os.Stat(p)
		return err != nil || fi.IsDir()
	})
	slices.Sort(yamlFiles)
	return yamlFiles, nil
}

// recordSources maps every dotted key path in doc to its position in file.
func recordSources(doc *yaml.Node, file string, into map[string]Source) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var walk func(n *yaml.Node, prefix string)
	walk = func(n *yaml.Node, prefix string) {
		if n == nil || n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			if prefix != "" {
				key = prefix + "." + key
			}
			into[key] = Source{Kind: SourceFile, File: file, Line: val.Line, Column: val.Column}
			walk(val, key)
		}
	}
	walk(root, "")
}
