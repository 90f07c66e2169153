// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
)

// DefaultConfigFileName is the clangd project config file name.
const DefaultConfigFileName = ".clangd"

// ConfigListener receives config file change notifications.
type ConfigListener interface {
	// Reload replaces the active rule set with the one parsed from path.
	Reload(path string) error
	// Clear drops the active rule set.
	Clear()
}

// ResolverOptions configures per-project resolver behavior.
type ResolverOptions struct {
	// ConfigFileName is the config file loaded from the project root.
	// Empty value defaults to ".clangd".
	ConfigFileName string `json:"config_file_name,omitempty" yaml:"config_file_name,omitempty"`
	// Logger receives config load diagnostics. Nil discards them.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// Resolver holds per-project lookup state and finds compilation databases.
type Resolver struct {
	// rules is the active rule set, nil when no config is loaded.
	rules *RuleSet
	// logger receives config load diagnostics.
	logger *slog.Logger
	// root is absolute project root directory path, empty after Close.
	root string
	// configFileName is the config file name inside root.
	configFileName string
	// lastValue is the directive selected by the most recent rule lookup.
	lastValue string

	// mu guards all fields above.
	mu sync.Mutex
}

var _ ConfigListener = (*Resolver)(nil)

// NewResolver creates a resolver rooted at projectRoot.
//
// The project config file is loaded when present. A config that fails to
// load is logged and leaves the resolver without rules.
func NewResolver(projectRoot string, opts ResolverOptions) (*Resolver, error) {
	name, err := cleanConfigFileName(opts.ConfigFileName)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Resolver{
		configFileName: name,
		logger:         logger,
	}

	if err := r.SetProjectRoot(projectRoot); err != nil {
		return nil, err
	}

	return r, nil
}

// SetProjectRoot switches the resolver to another project.
//
// All state is replaced wholesale and the new project config is loaded
// when present, in one critical section.
func (r *Resolver) SetProjectRoot(projectRoot string) error {
	if r == nil {
		return ErrNilResolver
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("abs root: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.root = absRoot
	r.rules = nil
	r.lastValue = ""

	configPath := filepath.Join(absRoot, r.configFileName)
	if !fileExists(configPath) {
		r.logger.Debug("no project config", "root", absRoot, "config", configPath)
		return nil
	}

	// Load failure is already logged and leaves the project without rules.
	_ = r.reloadLocked(configPath)
	return nil
}

// Reload parses the config at path and publishes it as the active rule set.
//
// On failure the resolver drops to "no rule set" rather than keeping the
// previous one, and the error is returned for the caller to report.
func (r *Resolver) Reload(path string) error {
	if r == nil {
		return ErrNilResolver
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.root == "" {
		return ErrResolverClosed
	}

	return r.reloadLocked(path)
}

// reloadLocked loads path into the active rule set. Caller must hold r.mu.
func (r *Resolver) reloadLocked(path string) error {
	rs, err := LoadRuleSetFile(path)

	r.lastValue = ""
	if err != nil {
		r.rules = nil
		r.logger.Warn("failed to parse configuration file", "path", path, "error", err)
		return err
	}

	r.rules = rs
	r.logger.Debug("configuration loaded", "path", path, "rules", rs.Len())
	return nil
}

// Clear drops the active rule set and cached directive.
func (r *Resolver) Clear() {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.rules = nil
	r.lastValue = ""
	r.mu.Unlock()
}

// Close releases project state. Lookups on a closed resolver find nothing.
func (r *Resolver) Close() error {
	if r == nil {
		return ErrNilResolver
	}

	r.mu.Lock()
	r.rules = nil
	r.lastValue = ""
	r.root = ""
	r.mu.Unlock()

	return nil
}

// ProjectRoot returns the absolute project root, empty after Close.
func (r *Resolver) ProjectRoot() string {
	if r == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// ConfigPath returns the project config file path, empty after Close.
func (r *Resolver) ConfigPath() string {
	root := r.ProjectRoot()
	if root == "" {
		return ""
	}

	return filepath.Join(root, r.configFileName)
}

// ConfigFileName returns the project config file name.
func (r *Resolver) ConfigFileName() string {
	if r == nil {
		return ""
	}

	return r.configFileName
}

// RuleSet returns the active rule set, nil when no config is loaded.
func (r *Resolver) RuleSet() *RuleSet {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rules
}

// LastCompilationDatabase returns the directive cached by the most recent lookup.
func (r *Resolver) LastCompilationDatabase() string {
	if r == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastValue
}

// CompilationDatabase returns the raw CompilationDatabase directive for a file,
// before any filesystem search.
func (r *Resolver) CompilationDatabase(filePath string) (string, bool) {
	if r == nil {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	value := r.lookupLocked(filePath)
	return value, value != ""
}

// FindCompileCommands returns the compile_commands.json that supplies flags
// for filePath.
//
// Lookup order:
// 1. "None" directive: no database.
// 2. Any other non-empty directive except "Ancestors": search starts at the
// directive path, joined with project root when relative.
// 3. Otherwise search starts at the project root; parent directories are
// searched only for "Ancestors".
func (r *Resolver) FindCompileCommands(filePath string) (string, bool) {
	if r == nil {
		return "", false
	}

	r.mu.Lock()
	root := r.root
	value := r.lookupLocked(filePath)
	r.mu.Unlock()

	if root == "" {
		return "", false
	}

	switch {
	case IsNone(value):
		return "", false
	case value != "" && !IsAncestors(value):
		return FindCompileCommands(absUnder(root, value), false)
	default:
		return FindCompileCommands(root, IsAncestors(value))
	}
}

// lookupLocked evaluates the active rule set and refreshes the cached directive.
// Without a rule set the cached directive is kept. Caller must hold r.mu.
func (r *Resolver) lookupLocked(filePath string) string {
	if r.rules != nil {
		value, _ := r.rules.CompilationDatabase(filePath)
		r.lastValue = value
	}

	return r.lastValue
}

// IsConfigNotExist reports whether err is a config load failure caused by a
// missing file.
func IsConfigNotExist(err error) bool {
	return errors.Is(err, ErrConfigUnreadable) && errors.Is(err, fs.ErrNotExist)
}
