// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/woozymasta/clangdb"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the CompilationDatabase rules loaded from the project config",
		Long: `Rules prints the project's rules in evaluation order: conditioned rules
first, then the unconditional fallback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rs := s.resolver.RuleSet()
			if rs == nil {
				_, err := fmt.Fprintf(out, "no rules loaded from %s\n", s.resolver.ConfigPath())
				return err
			}

			_, _ = fmt.Fprintf(out, "%s: %d rule(s)\n", s.resolver.ConfigPath(), rs.Len())
			for i, rule := range rs.Rules() {
				writeRule(out, i, rule)
			}

			return nil
		},
	}
}

// writeRule prints one rule as an indented block.
func writeRule(w io.Writer, i int, rule clangdb.Rule) {
	value := rule.CompilationDatabase
	if value == "" {
		value = "(none set)"
	}

	_, _ = fmt.Fprintf(w, "[%d] CompilationDatabase: %s\n", i, value)
	if !rule.Conditional() {
		_, _ = fmt.Fprintln(w, "    unconditional")
		return
	}

	if rule.Condition.PathMatch != nil {
		_, _ = fmt.Fprintf(w, "    PathMatch: %s\n", patternList(rule.Condition.PathMatch))
	}

	if rule.Condition.PathExclude != nil {
		_, _ = fmt.Fprintf(w, "    PathExclude: %s\n", patternList(rule.Condition.PathExclude))
	}
}

func patternList(patterns []*regexp.Regexp) string {
	parts := make([]string, len(patterns))
	for i, re := range patterns {
		parts[i] = re.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
