// Package config loads .toonrc.toml configuration: project file over
// global XDG config over built-in defaults.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/madstone-tech/toon/internal/core/entities"
	"github.com/madstone-tech/toon/internal/core/usecases"
	"github.com/madstone-tech/toon/internal/toon/codec"
)

// Config is the project's house style for the encode/decode option
// defaults (spec.md §6); an alias for entities.ToonConfig so the
// usecases.ConfigLoader port and this package's own API agree on one
// type instead of two shapes that happen to match.
type Config = entities.ToonConfig

// DefaultConfig returns the documented defaults (spec.md §6).
func DefaultConfig() *Config {
	return entities.DefaultToonConfig()
}

type tomlDoc struct {
	Toon Config `toml:"toon"`
}

// Ensure Loader implements usecases.ConfigLoader.
var _ usecases.ConfigLoader = (*Loader)(nil)

// Loader reads .toonrc.toml files, project file over global file over
// built-in defaults.
type Loader struct {
	globalConfigPath string
}

// NewLoader creates a config loader. globalConfigPath is typically
// XDGPathResolver.ConfigFile(); a blank path disables global config.
func NewLoader(globalConfigPath string) *Loader {
	return &Loader{globalConfigPath: globalConfigPath}
}

// LoadConfig reads the global config (if any) then the project-local
// .toonrc.toml (if any), with the project file overriding the global
// one field at a time, both layered over DefaultConfig.
func (l *Loader) LoadConfig(ctx context.Context, projectRoot string) (*Config, error) {
	cfg, err := l.LoadGlobalConfig(ctx)
	if err != nil {
		return nil, err
	}

	projectConfigPath := filepath.Join(projectRoot, ".toonrc.toml")
	if _, err := os.Stat(projectConfigPath); err == nil {
		if err := l.mergeFromFile(projectConfigPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
	}

	return cfg, nil
}

// LoadGlobalConfig reads the XDG global config file layered over the
// built-in defaults; a missing file is not an error.
func (l *Loader) LoadGlobalConfig(ctx context.Context) (*Config, error) {
	cfg := DefaultConfig()
	if l.globalConfigPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(l.globalConfigPath); err == nil {
		if err := l.mergeFromFile(l.globalConfigPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}
	return cfg, nil
}

func (l *Loader) mergeFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var doc tomlDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	applyOverrides(cfg, doc.Toon)
	return nil
}

// applyOverrides copies every field present in the parsed document over
// cfg; since Config has no pointer fields, "present" means non-zero,
// which matches the option.go defaults (indent 2, strict true) closely
// enough for house-style overrides and keeps the TOML schema flat.
func applyOverrides(cfg *Config, parsed Config) {
	if parsed.Indent != 0 {
		cfg.Indent = parsed.Indent
	}
	if parsed.Delimiter != "" {
		cfg.Delimiter = parsed.Delimiter
	}
	if parsed.KeyFolding != "" {
		cfg.KeyFolding = parsed.KeyFolding
	}
	if parsed.FlattenDepth != 0 {
		cfg.FlattenDepth = parsed.FlattenDepth
	}
	if parsed.ExpandPaths != "" {
		cfg.ExpandPaths = parsed.ExpandPaths
	}
	cfg.Strict = parsed.Strict || cfg.Strict
	cfg.LengthMarkers = parsed.LengthMarkers || cfg.LengthMarkers
}

// SaveConfig persists configuration to a project's .toonrc.toml.
func (l *Loader) SaveConfig(ctx context.Context, projectRoot string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	configPath := filepath.Join(projectRoot, ".toonrc.toml")
	return writeConfigFile(configPath, cfg)
}

// SaveGlobalConfig persists configuration to the resolved global config
// file path.
func (l *Loader) SaveGlobalConfig(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if l.globalConfigPath == "" {
		return fmt.Errorf("no global config path configured")
	}
	if err := os.MkdirAll(filepath.Dir(l.globalConfigPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return writeConfigFile(l.globalConfigPath, cfg)
}

func writeConfigFile(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	f.WriteString("# toon project configuration\n\n")

	data, err := toml.Marshal(tomlDoc{Toon: *cfg})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncoderOptions translates the loaded house style into codec encoder
// options (spec.md §6), the bridge between the .toonrc.toml schema and
// the codec's functional options.
func EncoderOptions(cfg *Config) []codec.EncoderOption {
	opts := []codec.EncoderOption{
		codec.WithIndent(cfg.Indent),
		codec.WithDelimiter(parseDelimiter(cfg.Delimiter)),
		codec.WithKeyFolding(parseFoldMode(cfg.KeyFolding)),
		codec.WithLengthMarkers(cfg.LengthMarkers),
	}
	if cfg.FlattenDepth > 0 {
		opts = append(opts, codec.WithFlattenDepth(cfg.FlattenDepth))
	}
	return opts
}

// DecoderOptions translates the loaded house style into codec decoder
// options (spec.md §6).
func DecoderOptions(cfg *Config) []codec.DecoderOption {
	return []codec.DecoderOption{
		codec.WithDecoderIndent(cfg.Indent),
		codec.WithStrict(cfg.Strict),
		codec.WithExpandPaths(parseFoldMode(cfg.ExpandPaths)),
	}
}

func parseDelimiter(name string) codec.Delimiter {
	switch name {
	case "tab":
		return codec.DelimiterTab
	case "pipe":
		return codec.DelimiterPipe
	case "", "comma":
		return codec.DelimiterComma
	default:
		r := []rune(name)
		if len(r) == 1 {
			return codec.Delimiter(r[0])
		}
		return codec.DelimiterComma
	}
}

func parseFoldMode(name string) codec.KeyFoldMode {
	if name == "safe" {
		return codec.Safe
	}
	return codec.Off
}
