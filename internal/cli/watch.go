// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/woozymasta/clangdb/internal/watch"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [FILE...]",
		Short: "Reload the project config on change and re-resolve files",
		Long: `Watch keeps the project's config loaded, reloading it when it is created
or modified and clearing it when it is deleted. After every change the given
files are resolved again and printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			files := make([]string, len(args))
			for i, arg := range args {
				if files[i], err = filepath.Abs(arg); err != nil {
					return fmt.Errorf("abs %s: %w", arg, err)
				}
			}

			out := cmd.OutOrStdout()
			report := func() {
				results := make([]fileResult, len(files))
				for i, file := range files {
					db, ok := s.resolver.FindCompileCommands(file)
					results[i] = fileResult{File: args[i], Database: db, Found: ok}
				}

				_ = writeResults(out, results, false)
			}

			w, err := watch.New(s.resolver.ProjectRoot(), s.resolver.ConfigFileName(), s.resolver, watch.Options{
				Debounce: s.cfg.Debounce(),
				Logger:   s.logger,
				OnChange: func(ev watch.Event) {
					s.index.Invalidate()
					s.logger.Info("project config changed", "path", ev.Path, "kind", ev.Kind.String())
					report()
				},
			})
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s.logger.Info("watching project config", "path", w.ConfigPath())
			report()

			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}
}
