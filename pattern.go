// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"fmt"
	"regexp"
	"strings"
)

// compilePatterns compiles one PathMatch/PathExclude value.
//
// A bracket-delimited value ("[a, b]") yields one pattern per comma-separated
// element, any other value yields exactly one pattern. Elements are trimmed
// but otherwise used verbatim, so an empty element compiles to an empty
// pattern that matches every path.
func compilePatterns(value string) ([]*regexp.Regexp, error) {
	sources := splitPatternList(value)

	patterns := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, src, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

// splitPatternList splits a scalar or flow-list value into pattern sources.
func splitPatternList(value string) []string {
	inner, ok := strings.CutPrefix(value, "[")
	if !ok {
		return []string{value}
	}

	inner = strings.TrimSuffix(inner, "]")
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// matchAny reports whether any pattern matches anywhere in path.
func matchAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
