// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

// Command clangdb resolves compilation databases for C/C++ sources.
package main

import (
	"os"

	"github.com/woozymasta/clangdb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
