// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"path/filepath"
	"testing"

	"github.com/woozymasta/clangdb/internal/testutil"
)

func TestFindCompileCommandsInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := filepath.Join(dir, CompileCommandsFileName)
	testutil.WriteFile(t, want, "[]")
	testutil.WriteFile(t, filepath.Join(dir, "build", CompileCommandsFileName), "[]")

	got, ok := FindCompileCommands(dir, false)
	if !ok || got != want {
		t.Fatalf("FindCompileCommands=%q,%v, want %q", got, ok, want)
	}
}

func TestFindCompileCommandsInBuildDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := filepath.Join(dir, "build", CompileCommandsFileName)
	testutil.WriteFile(t, want, "[]")

	got, ok := FindCompileCommands(dir, false)
	if !ok || got != want {
		t.Fatalf("FindCompileCommands=%q,%v, want %q", got, ok, want)
	}
}

func TestFindCompileCommandsDirectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := filepath.Join(dir, "out", CompileCommandsFileName)
	testutil.WriteFile(t, want, "[]")

	got, ok := FindCompileCommands(want, true)
	if !ok || got != want {
		t.Fatalf("FindCompileCommands=%q,%v, want %q", got, ok, want)
	}

	// A direct file path is never widened into a directory search.
	testutil.WriteFile(t, filepath.Join(dir, CompileCommandsFileName), "[]")
	missing := filepath.Join(dir, "other", CompileCommandsFileName)
	if got, ok := FindCompileCommands(missing, true); ok {
		t.Fatalf("FindCompileCommands(missing)=%q, want not found", got)
	}
}

func TestFindCompileCommandsAncestors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := filepath.Join(root, "build", CompileCommandsFileName)
	testutil.WriteFile(t, want, "[]")

	start := filepath.Join(root, "a", "b")
	testutil.WriteFile(t, filepath.Join(start, "main.cpp"), "")

	if got, ok := FindCompileCommands(start, false); ok {
		t.Fatalf("search without ancestors found %q", got)
	}

	got, ok := FindCompileCommands(start, true)
	if !ok || got != want {
		t.Fatalf("FindCompileCommands=%q,%v, want %q", got, ok, want)
	}
}

func TestFindCompileCommandsIgnoresDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, CompileCommandsFileName, "keep"), "")

	if got, ok := FindCompileCommands(dir, false); ok {
		t.Fatalf("directory named %s must not match, got %q", CompileCommandsFileName, got)
	}
}

func TestFindCompileCommandsEmpty(t *testing.T) {
	t.Parallel()

	if _, ok := FindCompileCommands("", true); ok {
		t.Fatalf("empty search path must find nothing")
	}
}
