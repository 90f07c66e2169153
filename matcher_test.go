// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"path/filepath"
	"regexp"
	"testing"
)

func TestRuleSetRouting(t *testing.T) {
	t.Parallel()

	rs, err := LoadRuleSetFile(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadRuleSetFile: %v", err)
	}

	cases := map[string]string{
		"src/file.inl":     "/database/for/inlines",
		"src/file.inc":     "/database/for/inlines",
		"include/file.h":   "/database/for/headers",
		"include/file.hh":  "/database/for/headers",
		"include/file.hpp": "/database/for/headers",
		"include/file.hxx": "/database/for/headers",
		"include/pch.h":    "/database/for/sources",
		"main.cpp":         "/database/for/sources",
	}

	for path, want := range cases {
		got, ok := rs.CompilationDatabase(path)
		if !ok || got != want {
			t.Fatalf("CompilationDatabase(%q)=%q,%v, want %q", path, got, ok, want)
		}
	}
}

func TestRuleSetFirstMatchWins(t *testing.T) {
	t.Parallel()

	rs := NewRuleSet(
		Rule{Condition: &Condition{PathMatch: mustPatterns(t, `\.h$`)}, CompilationDatabase: "first"},
		Rule{Condition: &Condition{PathMatch: mustPatterns(t, `file`)}, CompilationDatabase: "second"},
	)

	res := rs.Resolve("include/file.h")
	if !res.Matched || res.RuleIndex != 0 || res.Value != "first" {
		t.Fatalf("Resolve=%+v, want first rule", res)
	}

	res = rs.Resolve("src/file.c")
	if !res.Matched || res.RuleIndex != 1 || res.Value != "second" {
		t.Fatalf("Resolve=%+v, want second rule", res)
	}

	res = rs.Resolve("main.c")
	if res.Matched || res.RuleIndex != -1 {
		t.Fatalf("Resolve=%+v, want no match", res)
	}
}

func TestRuleSetExcludeWins(t *testing.T) {
	t.Parallel()

	rs := NewRuleSet(Rule{
		Condition: &Condition{
			PathMatch:   mustPatterns(t, `\.h$`),
			PathExclude: mustPatterns(t, `generated/`, `pch\.h$`),
		},
		CompilationDatabase: "headers",
	})

	if _, ok := rs.CompilationDatabase("include/pch.h"); ok {
		t.Fatalf("pch.h must be vetoed by PathExclude")
	}

	if _, ok := rs.CompilationDatabase("generated/a.h"); ok {
		t.Fatalf("generated/a.h must be vetoed by PathExclude")
	}

	if v, ok := rs.CompilationDatabase("include/a.h"); !ok || v != "headers" {
		t.Fatalf("CompilationDatabase(include/a.h)=%q,%v", v, ok)
	}
}

func TestRuleSetExcludeOnlyCondition(t *testing.T) {
	t.Parallel()

	rs := NewRuleSet(Rule{
		Condition:           &Condition{PathExclude: mustPatterns(t, `^third_party/`)},
		CompilationDatabase: "own",
	})

	if v, ok := rs.CompilationDatabase("src/a.c"); !ok || v != "own" {
		t.Fatalf("absent PathMatch must match: %q,%v", v, ok)
	}

	if _, ok := rs.CompilationDatabase("third_party/a.c"); ok {
		t.Fatalf("third_party/a.c must be excluded")
	}
}

func TestRuleSetSelectedRuleWithoutDatabaseStops(t *testing.T) {
	t.Parallel()

	rs := NewRuleSet(
		Rule{Condition: &Condition{PathMatch: mustPatterns(t, `\.c$`)}},
		Rule{CompilationDatabase: "fallback"},
	)

	res := rs.Resolve("a.c")
	if !res.Matched || res.RuleIndex != 0 || res.Value != "" {
		t.Fatalf("Resolve=%+v, want first rule without value", res)
	}

	if _, ok := rs.CompilationDatabase("a.c"); ok {
		t.Fatalf("selected rule without database must not fall through")
	}
}

func TestRuleSetBackslashPaths(t *testing.T) {
	t.Parallel()

	rs := NewRuleSet(Rule{
		Condition:           &Condition{PathMatch: mustPatterns(t, `^src/`)},
		CompilationDatabase: "src",
	})

	if v, ok := rs.CompilationDatabase(`src\a.c`); !ok || v != "src" {
		t.Fatalf("CompilationDatabase(src\\a.c)=%q,%v", v, ok)
	}
}

func TestRuleSetIdempotent(t *testing.T) {
	t.Parallel()

	rs, err := LoadRuleSetFile(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadRuleSetFile: %v", err)
	}

	first := rs.Resolve("include/file.hpp")
	second := rs.Resolve("include/file.hpp")
	if first != second {
		t.Fatalf("Resolve not idempotent: %+v vs %+v", first, second)
	}
}

func TestNilRuleSet(t *testing.T) {
	t.Parallel()

	var rs *RuleSet
	if rs.Len() != 0 || rs.Rules() != nil {
		t.Fatalf("nil rule set must be empty")
	}

	if res := rs.Resolve("a.c"); res.Matched || res.RuleIndex != -1 {
		t.Fatalf("Resolve on nil=%+v", res)
	}
}

func TestRuleSetRuleOutOfRange(t *testing.T) {
	t.Parallel()

	one := NewRuleSet(Rule{CompilationDatabase: "x"})
	cases := map[string]func(){
		"nil":      func() { (*RuleSet)(nil).Rule(0) },
		"negative": func() { one.Rule(-1) },
		"past end": func() { one.Rule(1) },
	}

	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("Rule did not panic")
				}
			}()

			call()
		})
	}
}

func TestDirectives(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"None", "none", "NONE"} {
		if !IsNone(v) {
			t.Fatalf("IsNone(%q)=false", v)
		}
	}

	for _, v := range []string{"Ancestors", "ancestors", "ANCESTORS"} {
		if !IsAncestors(v) {
			t.Fatalf("IsAncestors(%q)=false", v)
		}
	}

	if IsNone("build") || IsAncestors("build") || IsNone("") {
		t.Fatalf("plain directory must not be a directive")
	}
}

func mustPatterns(t *testing.T, sources ...string) []*regexp.Regexp {
	t.Helper()

	out := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		out = append(out, regexp.MustCompile(src))
	}

	return out
}
