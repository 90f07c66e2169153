// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package compdb

import (
	"path/filepath"
	"sync"
)

// Locator finds the compilation database that applies to a file.
//
// *clangdb.Resolver satisfies it.
type Locator interface {
	FindCompileCommands(filePath string) (string, bool)
}

// Index caches parsed compilation databases by path.
type Index struct {
	// cache stores loaded databases by cleaned path.
	cache map[string]*cachedDatabase
	// load reads one database, replaceable in tests.
	load func(path string) (*Database, error)

	// mu guards cache access.
	mu sync.Mutex
}

// cachedDatabase stores one loaded database or a cached load error.
type cachedDatabase struct {
	// db is nil when load failed.
	db *Database
	// err stores load error for deterministic repeated calls.
	err error
	// loading reports whether database is currently being loaded by another goroutine.
	loading bool
	// wg coordinates concurrent waiters for one load attempt.
	wg sync.WaitGroup
}

// NewIndex creates an empty database cache.
func NewIndex() *Index {
	return &Index{
		cache: make(map[string]*cachedDatabase),
		load:  Load,
	}
}

// Database returns the cached or newly loaded database at path.
//
// Concurrent callers for one path share a single load. Load errors are
// cached until Invalidate.
func (x *Index) Database(path string) (*Database, error) {
	key := filepath.Clean(path)

	x.mu.Lock()
	cached, ok := x.cache[key]
	if ok {
		loading := cached.loading
		x.mu.Unlock()
		if loading {
			cached.wg.Wait()
		}

		return cached.db, cached.err
	}

	cached = &cachedDatabase{
		loading: true,
	}
	cached.wg.Add(1)
	x.cache[key] = cached
	x.mu.Unlock()

	db, loadErr := x.load(key)

	x.mu.Lock()
	cached.db = db
	cached.err = loadErr
	cached.loading = false
	cached.wg.Done()
	x.mu.Unlock()

	return db, loadErr
}

// Match is the result of locating a file's compile command.
type Match struct {
	// Database is the compile_commands.json consulted, empty when none applies.
	Database string
	// Entry is the file's record, valid when Found.
	Entry Entry
	// Found reports whether the database lists the file.
	Found bool
}

// Lookup locates the database for file and returns its entry.
//
// An unreadable database reports the file as absent together with the load
// error.
func (x *Index) Lookup(loc Locator, file string) (Match, error) {
	dbPath, ok := loc.FindCompileCommands(file)
	if !ok {
		return Match{}, nil
	}

	res := Match{Database: dbPath}

	db, err := x.Database(dbPath)
	if err != nil {
		return res, err
	}

	res.Entry, res.Found = db.Lookup(file)
	return res, nil
}

// Contains reports whether file is listed in the database located for it.
// Load errors count as absence.
func (x *Index) Contains(loc Locator, file string) bool {
	res, err := x.Lookup(loc, file)
	return err == nil && res.Found
}

// Invalidate drops all cached databases.
func (x *Index) Invalidate() {
	x.mu.Lock()
	x.cache = make(map[string]*cachedDatabase)
	x.mu.Unlock()
}

// Len returns the number of cached database paths.
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.cache)
}
