// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import (
	"path/filepath"
	"strings"
)

// matchPath normalizes a file path for pattern matching to slash-separated form.
func matchPath(raw string) string {
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	return raw
}

// isDatabaseFilePath reports whether path names a compile_commands.json file.
func isDatabaseFilePath(path string) bool {
	return filepath.Base(path) == CompileCommandsFileName
}

// absUnder returns path made absolute against root when it is relative.
func absUnder(root string, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

// cleanConfigFileName validates and normalizes resolver config file name.
func cleanConfigFileName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		name = DefaultConfigFileName
	}

	if filepath.IsAbs(name) {
		return "", ErrInvalidConfigFileName
	}

	name = filepath.ToSlash(name)
	if strings.Contains(name, "/") || name == "." || name == ".." {
		return "", ErrInvalidConfigFileName
	}

	return name, nil
}
