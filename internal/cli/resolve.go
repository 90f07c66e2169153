// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// notFound is printed for files without a result.
const notFound = "-"

// fileResult is one resolved file in command output.
type fileResult struct {
	File     string `json:"file"`
	Database string `json:"database,omitempty"`
	Found    bool   `json:"found"`
}

func newResolveCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Print the compile_commands.json used for each file",
		Long: `Resolve applies the project's CompilationDatabase rules to each file and
searches the filesystem for the compile_commands.json that supplies its
flags. Files without a database print "-".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			results := make([]fileResult, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(s.cfg.Jobs)

			for i, arg := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}

					file, err := filepath.Abs(arg)
					if err != nil {
						return fmt.Errorf("abs %s: %w", arg, err)
					}

					db, ok := s.resolver.FindCompileCommands(file)
					results[i] = fileResult{File: arg, Database: db, Found: ok}
					s.logger.Debug("resolved", "file", file, "database", db, "found", ok)
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			return writeResults(cmd.OutOrStdout(), results, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func newDatabaseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "database FILE...",
		Short: "Print the raw CompilationDatabase value selected for each file",
		Long: `Database evaluates the project's config rules for each file without any
filesystem search. Files no rule configures print "-".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			results := make([]fileResult, 0, len(args))
			for _, arg := range args {
				file, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("abs %s: %w", arg, err)
				}

				value, ok := s.resolver.CompilationDatabase(file)
				results = append(results, fileResult{File: arg, Database: value, Found: ok})
			}

			return writeResults(cmd.OutOrStdout(), results, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

// writeResults prints results as "file<TAB>database" lines or a JSON array.
func writeResults(w io.Writer, results []fileResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		db := r.Database
		if !r.Found {
			db = notFound
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.File, db); err != nil {
			return err
		}
	}

	return nil
}
