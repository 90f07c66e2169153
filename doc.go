// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

/*
Package clangdb locates the compilation database (compile_commands.json) that
supplies build flags for a C/C++ source file.

Lookup honors the CompileFlags.CompilationDatabase directive of the clangd
configuration file (.clangd). Only a narrow, line-oriented dialect of that
file is recognized:

	If:
	  PathMatch: [\.h$, \.hpp$]
	  PathExclude: pch\.h$
	CompileFlags:
	  CompilationDatabase: build/headers
	---
	CompileFlags:
	  CompilationDatabase: Ancestors

Basic flow:
  - parse a rule set from text (`ParseRuleSet`) or file (`LoadRuleSetFile`)
  - ask for the raw directive of a file (`RuleSet.CompilationDatabase`)
  - or let `Resolver` combine rule lookup with the directory search
    (`Resolver.FindCompileCommands`)

Rule precedence:
  - conditioned rules are evaluated in declaration order, first match wins
  - the first unconditional rule is the fallback, later ones are dropped

Directory search probes "<dir>/compile_commands.json" and
"<dir>/build/compile_commands.json". Parent directories are searched only
when the selected directive is "Ancestors".
*/
package clangdb
