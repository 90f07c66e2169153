// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

import "errors"

// Sentinel errors for clangdb operations.
var (
	// ErrConfigUnreadable indicates a configuration file that does not exist or cannot be read.
	ErrConfigUnreadable = errors.New("config unreadable")
	// ErrInvalidPattern indicates a PathMatch/PathExclude value that is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidConfigFileName indicates invalid resolver config file name.
	ErrInvalidConfigFileName = errors.New("invalid config file name")
	// ErrNilResolver indicates a nil Resolver receiver.
	ErrNilResolver = errors.New("resolver is nil")
	// ErrResolverClosed indicates a Resolver used after Close.
	ErrResolverClosed = errors.New("resolver is closed")
)
