// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package compdb

import (
	"fmt"
	"path/filepath"

	"github.com/kballard/go-shellquote"
)

// Entry is one translation unit record of a compilation database.
type Entry struct {
	// Directory is the working directory of the compilation.
	Directory string `json:"directory"`
	// File is the main source file, absolute or relative to Directory.
	File string `json:"file"`
	// Command is the compile command as a single shell-escaped string.
	Command string `json:"command,omitempty"`
	// Arguments is the compile command as an argv list.
	Arguments []string `json:"arguments,omitempty"`
	// Output is the optional name of the compilation output.
	Output string `json:"output,omitempty"`
}

// Path returns the absolute, cleaned source file path.
func (e Entry) Path() string {
	if filepath.IsAbs(e.File) || e.Directory == "" {
		return filepath.Clean(e.File)
	}

	return filepath.Join(e.Directory, e.File)
}

// Args returns the compile command as an argv list.
//
// Arguments wins over Command when both are present. Command is split with
// POSIX shell quoting rules.
func (e Entry) Args() ([]string, error) {
	if len(e.Arguments) > 0 {
		out := make([]string, len(e.Arguments))
		copy(out, e.Arguments)
		return out, nil
	}

	args, err := shellquote.Split(e.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: command for %s: %w", ErrInvalidDatabase, e.File, err)
	}

	return args, nil
}
