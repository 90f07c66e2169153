// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// ErrNoCompileCommand reports a file without a usable compile command.
var ErrNoCompileCommand = errors.New("no compile command")

func newFlagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "flags FILE",
		Short: "Print the compile command recorded for a file",
		Long: `Flags resolves the compile_commands.json for FILE and prints the working
directory and arguments of its entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			file, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("abs %s: %w", args[0], err)
			}

			m, err := s.index.Lookup(s.resolver, file)
			if err != nil {
				return err
			}

			switch {
			case m.Database == "":
				return fmt.Errorf("%w: no compilation database for %s", ErrNoCompileCommand, args[0])
			case !m.Found:
				return fmt.Errorf("%w: %s is not listed in %s", ErrNoCompileCommand, args[0], m.Database)
			}

			argv, err := m.Entry.Args()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "database: %s\n", m.Database)
			_, _ = fmt.Fprintf(out, "directory: %s\n", m.Entry.Directory)
			_, err = fmt.Fprintf(out, "command: %s\n", strings.Join(argv, " "))
			return err
		},
	}
}
