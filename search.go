// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"os"
	"path/filepath"
)

const (
	// CompileCommandsFileName is the compilation database file name.
	CompileCommandsFileName = "compile_commands.json"
	// buildDirName is the conventional out-of-source build directory probed next to the search path.
	buildDirName = "build"
)

// FindCompileCommands searches for a compilation database starting at searchPath.
//
// Search order:
// 1. searchPath naming compile_commands.json is only checked for existence.
// 2. "<dir>/compile_commands.json", then "<dir>/build/compile_commands.json".
// 3. With ancestors enabled, the same probes repeat in each parent directory
// until the filesystem root.
//
// Any stat failure is treated as absence.
func FindCompileCommands(searchPath string, ancestors bool) (string, bool) {
	if searchPath == "" {
		return "", false
	}

	if isDatabaseFilePath(searchPath) {
		if fileExists(searchPath) {
			return searchPath, true
		}

		return "", false
	}

	dir := filepath.Clean(searchPath)
	for {
		if found, ok := probeDir(dir); ok {
			return found, true
		}

		if !ancestors {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// probeDir checks the database locations of one directory.
func probeDir(dir string) (string, bool) {
	candidates := [...]string{
		filepath.Join(dir, CompileCommandsFileName),
		filepath.Join(dir, buildDirName, CompileCommandsFileName),
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
