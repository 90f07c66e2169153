// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	headerCompileFlags = "CompileFlags:"
	headerIf           = "If:"
	blockTerminator    = "---"

	keyCompilationDatabase = "CompilationDatabase:"
	keyPathMatch           = "PathMatch:"
	keyPathExclude         = "PathExclude:"
)

// blockState is the scanner position inside one config fragment.
type blockState uint8

const (
	blockNone blockState = iota
	blockIf
	blockCompileFlags
)

// ruleBuilder accumulates one rule while its fragment is scanned.
type ruleBuilder struct {
	rule *Rule
}

// ruleParser is the line-by-line parser state.
type ruleParser struct {
	rules []Rule
	state blockState
	b     ruleBuilder
}

// ParseRuleSet parses a clangd config dialect from reader.
//
// Semantics:
// - "CompileFlags:" and "If:" at line start open a block
// - "---" closes the current fragment
// - indented CompilationDatabase/PathMatch/PathExclude keys fill the rule
// - every other line is ignored
//
// Lines have no length limit. An invalid pattern fails the whole parse.
func ParseRuleSet(r io.Reader) (*RuleSet, error) {
	br := bufio.NewReader(r)
	p := ruleParser{rules: make([]Rule, 0, 8)}

	for {
		raw, readErr := br.ReadString('\n')
		if raw != "" {
			if err := p.line(strings.TrimRight(raw, "\r\n")); err != nil {
				return nil, err
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("%w: read config: %w", ErrConfigUnreadable, readErr)
		}
	}

	p.rules = p.b.flush(p.rules)
	return &RuleSet{rules: orderRules(p.rules)}, nil
}

// line applies one config line to the parser state.
func (p *ruleParser) line(line string) error {
	switch {
	case strings.HasPrefix(line, headerCompileFlags):
		p.state = blockCompileFlags
		return nil
	case strings.HasPrefix(line, headerIf):
		p.state = blockIf
		return nil
	case strings.TrimSpace(line) == blockTerminator:
		p.rules = p.b.flush(p.rules)
		p.state = blockNone
		return nil
	}

	switch p.state {
	case blockCompileFlags:
		if value, ok := fieldValue(line, keyCompilationDatabase); ok {
			p.b.current().CompilationDatabase = unquote(value)
		}

	case blockIf:
		if value, ok := fieldValue(line, keyPathMatch); ok {
			patterns, err := compilePatterns(value)
			if err != nil {
				return fmt.Errorf("%s %w", keyPathMatch, err)
			}

			p.b.condition().PathMatch = patterns
			return nil
		}

		if value, ok := fieldValue(line, keyPathExclude); ok {
			patterns, err := compilePatterns(value)
			if err != nil {
				return fmt.Errorf("%s %w", keyPathExclude, err)
			}

			p.b.condition().PathExclude = patterns
		}
	}

	return nil
}

// ParseRuleSetString parses a rule set from string input.
func ParseRuleSetString(src string) (*RuleSet, error) {
	return ParseRuleSet(strings.NewReader(src))
}

// current returns the accumulating rule, creating it on first use.
func (b *ruleBuilder) current() *Rule {
	if b.rule == nil {
		b.rule = &Rule{}
	}

	return b.rule
}

// condition returns the accumulating rule condition, creating it on first use.
func (b *ruleBuilder) condition() *Condition {
	r := b.current()
	if r.Condition == nil {
		r.Condition = &Condition{}
	}

	return r.Condition
}

// flush appends the accumulating rule, if any, and resets the builder.
func (b *ruleBuilder) flush(rules []Rule) []Rule {
	if b.rule == nil {
		return rules
	}

	rules = append(rules, *b.rule)
	b.rule = nil
	return rules
}

// fieldValue extracts the value of an indented "<key> <value>" line.
// The key must be preceded by at least one whitespace character.
func fieldValue(line string, key string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) == len(line) {
		return "", false
	}

	value, ok := strings.CutPrefix(trimmed, key)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(value), true
}

// unquote strips one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}

	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}

	return value
}
