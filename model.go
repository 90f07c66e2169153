// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DirectiveNone disables the compilation database for matching files.
	DirectiveNone = "None"
	// DirectiveAncestors enables search through parent directories.
	DirectiveAncestors = "Ancestors"
)

// Condition is the "If:" block of one rule.
type Condition struct {
	// PathMatch selects the rule when any pattern matches. Nil means absent.
	PathMatch []*regexp.Regexp
	// PathExclude vetoes the rule when any pattern matches. Nil means absent.
	PathExclude []*regexp.Regexp
}

// Rule is one configuration fragment: an optional condition and a
// CompilationDatabase directive.
type Rule struct {
	// Condition is nil for unconditional rules.
	Condition *Condition
	// CompilationDatabase is a directory, a database file path, "None" or
	// "Ancestors". Empty means the rule configures no database.
	CompilationDatabase string
}

// RuleSet is an immutable ordered list of rules.
//
// Conditioned rules come first in declaration order, followed by at most one
// unconditional rule.
type RuleSet struct {
	rules []Rule
}

// Resolution is a deterministic result of rule evaluation for one path.
type Resolution struct {
	// Value is the CompilationDatabase directive of the selected rule.
	Value string `json:"value" yaml:"value"`
	// Matched reports whether a rule was selected.
	Matched bool `json:"matched" yaml:"matched"`
	// RuleIndex is the selected rule index in rule set order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
}

// NewRuleSet builds a rule set applying the same ordering as the parser.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: orderRules(rules)}
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}

	return len(rs.rules)
}

// Rule returns the rule at index i.
// It panics when i is outside [0, Len()), including on a nil rule set.
func (rs *RuleSet) Rule(i int) Rule {
	if i < 0 || i >= rs.Len() {
		panic(fmt.Sprintf("clangdb: rule index %d out of range [0, %d)", i, rs.Len()))
	}

	return rs.rules[i]
}

// Rules returns a copy of the ordered rules.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}

	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Conditional reports whether the rule carries a condition.
func (r Rule) Conditional() bool {
	return r.Condition != nil
}

// IsNone reports whether value is the "None" directive (case-insensitive).
func IsNone(value string) bool {
	return strings.EqualFold(value, DirectiveNone)
}

// IsAncestors reports whether value is the "Ancestors" directive (case-insensitive).
func IsAncestors(value string) bool {
	return strings.EqualFold(value, DirectiveAncestors)
}
