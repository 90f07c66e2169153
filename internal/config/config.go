// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

// Package config loads clangdb CLI settings.
//
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/woozymasta/clangdb"
)

// Defaults.
const (
	DefaultFileName  = ".clangdb.yaml"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultJobs      = 4
	DefaultDebounce  = 100

	envPrefix = "CLANGDB_"
)

// ErrInvalidConfig indicates settings that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all CLI settings.
type Config struct {
	// Project is the project root directory.
	Project string `koanf:"project"`
	// ConfigName is the clangd config file name inside Project.
	ConfigName string `koanf:"config_name"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`
	// Jobs limits parallel file lookups.
	Jobs int `koanf:"jobs"`
	// DebounceMs delays config reloads in watch mode.
	DebounceMs int `koanf:"debounce_ms"`

	// fileUsed is the settings file that was loaded, empty when none.
	fileUsed string
}

// Load reads settings from defaults, the settings file, CLANGDB_* env vars
// and explicitly set flags.
//
// cfgFile names the settings file; empty means DefaultFileName in the
// working directory when it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"project":     cwd,
		"config_name": clangdb.DefaultConfigFileName,
		"log_level":   DefaultLogLevel,
		"log_format":  DefaultLogFormat,
		"jobs":        DefaultJobs,
		"debounce_ms": DefaultDebounce,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Settings file
	used := findConfigFile(cfgFile)
	fk := koanf.New(".")
	if used != "" {
		if err := fk.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}

		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("failed to merge config file %s: %w", used, err)
		}
	}

	// 3. Environment: CLANGDB_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only when explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}

			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.fileUsed = used

	// A project path written in the settings file is relative to that file,
	// one from env or flags is relative to the working directory.
	base := cwd
	if fk.Exists("project") && cfg.Project == fk.String("project") {
		base = fileDir(used, cwd)
	}
	cfg.Project = resolvePathRelativeTo(cfg.Project, base)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks setting values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q (want text|json)", ErrInvalidConfig, c.LogFormat)
	}

	if c.Jobs <= 0 {
		return fmt.Errorf("%w: jobs must be positive, got %d", ErrInvalidConfig, c.Jobs)
	}

	if c.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce_ms must not be negative, got %d", ErrInvalidConfig, c.DebounceMs)
	}

	return nil
}

// FileUsed returns the settings file that was loaded, empty when none.
func (c *Config) FileUsed() string {
	return c.fileUsed
}

// Debounce returns the watch debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// NewLogger builds a slog logger writing to w per LogLevel and LogFormat.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q (want debug|info|warn|error)", ErrInvalidConfig, name)
	}

	return level, nil
}

// findConfigFile returns the explicit settings file or the default one when
// it exists in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}

	return ""
}

// fileDir returns the absolute directory of the settings file.
func fileDir(fileUsed string, cwd string) string {
	if fileUsed == "" {
		return cwd
	}

	abs, err := filepath.Abs(fileUsed)
	if err != nil {
		return cwd
	}

	return filepath.Dir(abs)
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(baseDir, path)
}
