// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"fmt"
	"os"
)

// LoadRuleSetFile reads and parses a rule set from a config file.
func LoadRuleSetFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrConfigUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()

	rs, err := ParseRuleSet(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return rs, nil
}
