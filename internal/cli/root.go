// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

// Package cli provides the clangdb command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/woozymasta/clangdb"
	"github.com/woozymasta/clangdb/compdb"
	"github.com/woozymasta/clangdb/internal/config"
)

// Version is set at build time.
var Version = "dev"

// sessionKey stores the command session in context.
type sessionKey struct{}

// session is the per-invocation state shared by subcommands.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver *clangdb.Resolver
	index    *compdb.Index
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "clangdb",
		Short: "Resolve compile_commands.json for C/C++ sources",
		Long: `clangdb finds the compilation database that supplies build flags for a
source file, honoring CompilationDatabase overrides declared in the
project's .clangd config.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipSession(cmd) {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			if used := cfg.FileUsed(); used != "" {
				logger.Debug("using settings file", "path", used)
			}

			resolver, err := clangdb.NewResolver(cfg.Project, clangdb.ResolverOptions{
				ConfigFileName: cfg.ConfigName,
				Logger:         logger,
			})
			if err != nil {
				return fmt.Errorf("open project %s: %w", cfg.Project, err)
			}

			s := &session{
				cfg:      cfg,
				logger:   logger,
				resolver: resolver,
				index:    compdb.NewIndex(),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if s, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
				return s.resolver.Close()
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "settings file (default: ./"+config.DefaultFileName+")")
	pf.StringP("project", "p", "", "project root directory (default: working directory)")
	pf.String("config-name", "", "project config file name (default: "+clangdb.DefaultConfigFileName+")")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (text|json)")
	pf.IntP("jobs", "j", 0, "parallel lookups")
	pf.Int("debounce-ms", 0, "watch debounce in milliseconds")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newDatabaseCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newFlagsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}

// skipSession reports commands that run without a project.
func skipSession(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "__complete", "version":
		return true
	default:
		return false
	}
}

// sessionFrom returns the session stored by the root pre-run hook.
func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok {
		return nil, fmt.Errorf("%s: project not loaded", cmd.Name())
	}

	return s, nil
}
