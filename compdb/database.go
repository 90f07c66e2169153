// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package compdb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// ErrInvalidDatabase indicates a compilation database that is not a JSON array of entries.
var ErrInvalidDatabase = errors.New("invalid compilation database")

// Database is an immutable parsed compilation database.
type Database struct {
	// entries in file order.
	entries []Entry
	// byPath maps absolute source path to the first entry index.
	byPath map[string]int
	// byFile maps the raw "file" value to the first entry index.
	byFile map[string]int
}

// Parse decodes a compilation database from reader.
func Parse(r io.Reader) (*Database, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDatabase, err)
	}

	return newDatabase(entries), nil
}

// Load reads and parses the compilation database at path.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open compilation database: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return db, nil
}

// newDatabase indexes entries. The first entry of a duplicated file wins.
func newDatabase(entries []Entry) *Database {
	db := &Database{
		entries: entries,
		byPath:  make(map[string]int, len(entries)),
		byFile:  make(map[string]int, len(entries)),
	}

	for i := range entries {
		if entries[i].File == "" {
			continue
		}

		if _, ok := db.byPath[entries[i].Path()]; !ok {
			db.byPath[entries[i].Path()] = i
		}

		if _, ok := db.byFile[entries[i].File]; !ok {
			db.byFile[entries[i].File] = i
		}
	}

	return db
}

// Len returns the number of entries.
func (db *Database) Len() int {
	if db == nil {
		return 0
	}

	return len(db.entries)
}

// Entries returns a copy of all entries in file order.
func (db *Database) Entries() []Entry {
	if db == nil {
		return nil
	}

	out := make([]Entry, len(db.entries))
	copy(out, db.entries)
	return out
}

// Lookup returns the entry compiling file.
//
// Absolute paths are compared after cleaning; other paths are compared to
// the raw "file" values of the database.
func (db *Database) Lookup(file string) (Entry, bool) {
	if db == nil || file == "" {
		return Entry{}, false
	}

	if filepath.IsAbs(file) {
		if i, ok := db.byPath[filepath.Clean(file)]; ok {
			return db.entries[i], true
		}
	}

	if i, ok := db.byFile[file]; ok {
		return db.entries[i], true
	}

	return Entry{}, false
}

// Contains reports whether file is listed in the database.
func (db *Database) Contains(file string) bool {
	_, ok := db.Lookup(file)
	return ok
}
