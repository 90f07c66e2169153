// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

// Package watch notifies a config listener when the project config file
// is created, modified or deleted.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/woozymasta/clangdb"
)

// DefaultDebounce coalesces the write bursts editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned by Run after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Kind is the action applied to the listener.
type Kind uint8

const (
	// KindReload means the config was created or modified.
	KindReload Kind = iota + 1
	// KindClear means the config was deleted or renamed away.
	KindClear
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindReload:
		return "reload"
	case KindClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Event describes one applied config change.
type Event struct {
	// Path is the config file path.
	Path string
	// Kind is the applied action.
	Kind Kind
	// Err is the reload error, nil for successful reloads and clears.
	Err error
}

// Options configures watcher behavior.
type Options struct {
	// Debounce delays applying changes until events settle.
	// Zero applies every change immediately.
	Debounce time.Duration
	// Logger receives watcher diagnostics. Nil discards them.
	Logger *slog.Logger
	// OnChange is called after each applied change from the Run goroutine.
	OnChange func(Event)
}

// Watcher drives a clangdb.ConfigListener from filesystem events.
type Watcher struct {
	fsw        *fsnotify.Watcher
	listener   clangdb.ConfigListener
	logger     *slog.Logger
	onChange   func(Event)
	configPath string
	debounce   time.Duration
}

// New watches the config file configName inside projectRoot.
//
// The project directory is watched rather than the file itself, so the
// config may be created after the watcher starts and atomic replaces made
// by editors are observed.
func New(projectRoot string, configName string, listener clangdb.ConfigListener, opts Options) (*Watcher, error) {
	if listener == nil {
		return nil, errors.New("watch: nil listener")
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("abs root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(absRoot); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absRoot, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		fsw:        fsw,
		listener:   listener,
		logger:     logger,
		onChange:   opts.OnChange,
		configPath: filepath.Join(absRoot, configName),
		debounce:   opts.Debounce,
	}, nil
}

// ConfigPath returns the watched config file path.
func (w *Watcher) ConfigPath() string {
	return w.configPath
}

// Run processes events until ctx is done or the watcher is closed.
//
// A pending debounced change is dropped on shutdown.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Kind
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}

			kind := w.classify(event)
			if kind == 0 {
				continue
			}

			w.logger.Debug("config event", "path", event.Name, "op", event.Op.String())

			if w.debounce <= 0 {
				w.apply(kind)
				continue
			}

			pending = kind
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.apply(pending)
			pending = 0

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}

			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops watching. A running Run returns ErrWatcherClosed.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// classify maps an fsnotify event to a listener action, 0 for unrelated events.
func (w *Watcher) classify(event fsnotify.Event) Kind {
	if filepath.Clean(event.Name) != w.configPath {
		return 0
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		return KindClear
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		return KindReload
	default:
		return 0
	}
}

// apply forwards one change to the listener.
func (w *Watcher) apply(kind Kind) {
	ev := Event{Path: w.configPath, Kind: kind}

	switch kind {
	case KindReload:
		ev.Err = w.listener.Reload(w.configPath)
		if ev.Err != nil {
			w.logger.Warn("config reload failed", "path", w.configPath, "error", ev.Err)
		} else {
			w.logger.Info("config reloaded", "path", w.configPath)
		}

	case KindClear:
		w.listener.Clear()
		w.logger.Info("config cleared", "path", w.configPath)

	default:
		return
	}

	if w.onChange != nil {
		w.onChange(ev)
	}
}
