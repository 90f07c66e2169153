// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

// Resolve returns the deterministic rule decision for one file path.
//
// Decision policy:
// - first rule whose condition holds wins
// - absent PathMatch matches every path
// - any PathExclude match vetoes the rule
// - a selected rule without CompilationDatabase still stops evaluation
func (rs *RuleSet) Resolve(filePath string) Resolution {
	res := Resolution{RuleIndex: -1}
	if rs == nil {
		return res
	}

	candidate := matchPath(filePath)
	for i := range rs.rules {
		if !rs.rules[i].Condition.matches(candidate) {
			continue
		}

		res.Matched = true
		res.RuleIndex = i
		res.Value = rs.rules[i].CompilationDatabase
		return res
	}

	return res
}

// CompilationDatabase returns the CompilationDatabase directive for a file.
//
// The boolean is false when no rule was selected or the selected rule
// configures no database.
func (rs *RuleSet) CompilationDatabase(filePath string) (string, bool) {
	res := rs.Resolve(filePath)
	if !res.Matched || res.Value == "" {
		return "", false
	}

	return res.Value, true
}

// matches reports whether condition holds for candidate. Nil condition always holds.
func (c *Condition) matches(candidate string) bool {
	if c == nil {
		return true
	}

	if c.PathMatch != nil && !matchAny(c.PathMatch, candidate) {
		return false
	}

	if c.PathExclude != nil && matchAny(c.PathExclude, candidate) {
		return false
	}

	return true
}
