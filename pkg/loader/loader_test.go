package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/syntax"
	"github.com/simonhull/firebird-suite/wren/pkg/typedecl"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.h", "")
	writeFile(t, dir, "a.hpp", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, "sub/c.h", "")
	writeFile(t, dir, "build/gen.h", "")
	writeFile(t, dir, ".cache/hidden.h", "")
	explicit := writeFile(t, t.TempDir(), "dump.txt", "")

	files, err := Discover([]string{explicit, dir, filepath.Join(dir, "b.h")}, WalkOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		explicit,
		filepath.Join(dir, "a.hpp"),
		filepath.Join(dir, "b.h"),
		filepath.Join(dir, "sub", "c.h"),
	}, files)
}

func TestDiscover_CustomOptions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.h", "")
	writeFile(t, dir, "b.inc", "")
	writeFile(t, dir, "skip/c.inc", "")
	writeFile(t, dir, ".hidden/d.inc", "")

	files, err := Discover([]string{dir}, WalkOptions{
		Extensions:    []string{".INC"},
		IgnoreDirs:    []string{"skip"},
		IncludeHidden: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, ".hidden", "d.inc"),
		filepath.Join(dir, "b.inc"),
	}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope.h")}, WalkOptions{})
	assert.Error(t, err)
}

func TestLoad_AddsInInputOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "1.h", "struct A { struct B *b; };"),
		writeFile(t, dir, "2.h", "struct B { struct A a; };\ntypedef struct B BAlias;"),
		writeFile(t, dir, "3.h", "struct C : A { int x; };"),
	}

	l, err := New(Options{Workers: 3, CacheSize: 8})
	require.NoError(t, err)

	store := typedecl.NewStore()
	res, err := l.Load(context.Background(), store, files)
	require.NoError(t, err)

	assert.Equal(t, Result{Files: 3, Types: 4}, res)
	assert.Equal(t, []string{"A", "B", "BAlias", "C"}, store.Names())

	c, ok := store.Get("C")
	require.True(t, ok)
	strong, ok := c.Deps.Get("A")
	assert.True(t, ok)
	assert.True(t, strong)
}

func TestLoad_StopsAtFirstFailingFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "2.h", "template <typename T> struct Box { T v; };")
	files := []string{
		writeFile(t, dir, "1.h", "struct A { int x; };"),
		bad,
		writeFile(t, dir, "3.h", "struct C { int y; };"),
	}

	l, err := New(Options{Workers: 2})
	require.NoError(t, err)

	store := typedecl.NewStore()
	res, err := l.Load(context.Background(), store, files)
	require.Error(t, err)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, bad, fileErr.Path)
	assert.ErrorIs(t, err, typedecl.ErrUnsupportedConstruct)

	assert.Equal(t, 1, res.Files)
	assert.Equal(t, []string{"A"}, store.Names())
}

func TestLoad_SyntaxErrorIsReported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.h", "struct A { int x; ")

	l, err := New(Options{Workers: 1})
	require.NoError(t, err)

	_, err = l.Load(context.Background(), typedecl.NewStore(), []string{path})

	var syntaxErr *syntax.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "got %v", err)
}

func TestLoad_CacheSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.h", "struct A { int x; };")

	l, err := New(Options{Workers: 1, CacheSize: 4})
	require.NoError(t, err)

	res, err := l.Load(context.Background(), typedecl.NewStore(), []string{path})
	require.NoError(t, err)
	assert.Zero(t, res.CacheHits)

	res, err = l.Load(context.Background(), typedecl.NewStore(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CacheHits)

	writeFile(t, dir, "a.h", "struct A { int x; }; struct B { int y; };")
	store := typedecl.NewStore()
	res, err = l.Load(context.Background(), store, []string{path})
	require.NoError(t, err)
	assert.Zero(t, res.CacheHits, "changed content must be parsed again")
	assert.Equal(t, 2, store.Len())
}

func TestLoad_CancelledContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.h", "struct A { int x; };")

	l, err := New(Options{Workers: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := typedecl.NewStore()
	_, err = l.Load(ctx, store, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.Len())
}

func TestLoad_LogsPerFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.h", "struct A { int x; };")

	buf := &bytes.Buffer{}
	l, err := New(Options{})
	require.NoError(t, err)
	l.WithLogger(logger.NewLogger(logger.LevelDebug, buf))

	_, err = l.Load(context.Background(), typedecl.NewStore(), []string{path})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Loaded header")
	assert.Contains(t, buf.String(), "types=1")
}

func TestNew_RejectsNegativeWorkers(t *testing.T) {
	_, err := New(Options{Workers: -1})
	assert.Error(t, err)
}
