// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

/*
Package compdb reads JSON compilation databases (compile_commands.json).

A Database answers whether a file is listed and with which command line.
An Index caches loaded databases by path so repeated lookups for files of
one project parse each database once.
*/
package compdb
