// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package compdb

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/clangdb/internal/testutil"
)

const sampleDatabase = `[
  {
    "directory": "/work/build",
    "file": "/work/src/main.cpp",
    "arguments": ["clang++", "-I/work/include", "-c", "/work/src/main.cpp"],
    "output": "main.o"
  },
  {
    "directory": "/work/build",
    "file": "../src/util.cpp",
    "command": "clang++ -DNAME=\"a b\" -I'/work/my include' -c ../src/util.cpp"
  },
  {
    "directory": "/work/build",
    "file": "/work/src/main.cpp",
    "command": "g++ -c duplicate.cpp"
  }
]`

func TestParse(t *testing.T) {
	t.Parallel()

	db, err := Parse(strings.NewReader(sampleDatabase))
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())

	main, ok := db.Lookup(filepath.FromSlash("/work/src/main.cpp"))
	require.True(t, ok)
	assert.Equal(t, "main.o", main.Output)
	args, err := main.Args()
	require.NoError(t, err)
	assert.Equal(t, []string{"clang++", "-I/work/include", "-c", "/work/src/main.cpp"}, args)

	util, ok := db.Lookup("../src/util.cpp")
	require.True(t, ok, "raw file value must match")
	args, err = util.Args()
	require.NoError(t, err)
	assert.Equal(t, []string{"clang++", "-DNAME=a b", "-I/work/my include", "-c", "../src/util.cpp"}, args)

	assert.False(t, db.Contains("missing.cpp"))
	assert.False(t, db.Contains(""))
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(`{"file": "a.c"}`))
	require.ErrorIs(t, err, ErrInvalidDatabase)

	_, err = Parse(strings.NewReader(`[{"file": `))
	require.ErrorIs(t, err, ErrInvalidDatabase)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "compile_commands.json")
	testutil.WriteFile(t, path, `[{"directory": "/w", "file": "a.c", "command": "cc -c a.c"}]`)

	db, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, db.Len())
	assert.Len(t, db.Entries(), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestEntryPath(t *testing.T) {
	t.Parallel()

	abs := filepath.FromSlash("/work/src/a.c")
	assert.Equal(t, abs, Entry{Directory: "/elsewhere", File: abs}.Path())
	assert.Equal(t, filepath.Join("/work/build", "..", "src", "a.c"), Entry{Directory: "/work/build", File: "../src/a.c"}.Path())
	assert.Equal(t, "a.c", Entry{File: "./a.c"}.Path())
}

func TestEntryArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "plain", in: "cc  -c\ta.c", want: []string{"cc", "-c", "a.c"}},
		{name: "escaped quote in double quotes", in: `cc "-DX=\"y\"" a.c`, want: []string{"cc", `-DX="y"`, "a.c"}},
		{name: "backslash in double quotes", in: `cc "-DX=a\b" -c x.c`, want: []string{"cc", `-DX=a\b`, "-c", "x.c"}},
		{name: "windows path define", in: `cc -DP="C:\dir" x.c`, want: []string{"cc", `-DP=C:\dir`, "x.c"}},
		{name: "single quotes", in: `cc '-DX=\y' a.c`, want: []string{"cc", `-DX=\y`, "a.c"}},
		{name: "escaped space", in: `cc my\ file.c`, want: []string{"cc", "my file.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Entry{Command: tt.in}.Args()
			require.NoError(t, err)
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestEntryArgsErrors(t *testing.T) {
	t.Parallel()

	args, err := Entry{File: "a.c", Command: `cc "-DX=1 a.c`}.Args()
	require.ErrorIs(t, err, ErrInvalidDatabase)
	assert.Nil(t, args)

	args, err = Entry{Command: "   "}.Args()
	require.NoError(t, err)
	assert.Empty(t, args)
}
