package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/fledge/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedResolver answers every conflict the same way.
type fixedResolver generator.ConflictResolution

func (r fixedResolver) ResolveConflict(string, []byte, []byte) (generator.ConflictResolution, error) {
	return generator.ConflictResolution(r), nil
}

func withoutTerminal(t *testing.T) {
	t.Helper()
	original := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = original })
}

func TestWriter_CommitWritesEveryFile(t *testing.T) {
	dir := t.TempDir()

	w := New(nil)
	_, err := w.Stage(filepath.Join(dir, "a.h"), []byte("struct A;"))
	require.NoError(t, err)
	_, err = w.Stage(filepath.Join(dir, "nested", "b.h"), []byte("struct B;"))
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	got, err := os.ReadFile(filepath.Join(dir, "a.h"))
	require.NoError(t, err)
	assert.Equal(t, "struct A;", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "nested", "b.h"))
	require.NoError(t, err)
	assert.Equal(t, "struct B;", string(got))
}

func TestWriter_RestoresOnFailure(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.h")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))
	created := filepath.Join(dir, "new.h")
	late := filepath.Join(dir, "late", "child.h")

	w := New(fixedResolver(generator.Overwrite))
	for _, f := range []struct{ path, content string }{
		{existing, "new"},
		{created, "fresh"},
		{late, "never"},
	} {
		_, err := w.Stage(f.path, []byte(f.content))
		require.NoError(t, err)
	}

	// A file where the directory should go makes the last write fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late"), []byte("x"), 0644))

	require.Error(t, w.Commit())

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "overwritten file should get its content back")

	_, err = os.Stat(created)
	assert.True(t, os.IsNotExist(err), "created file should be removed")
}

func TestWriter_CommitTwice(t *testing.T) {
	w := New(nil)
	_, err := w.Stage(filepath.Join(t.TempDir(), "a.h"), []byte("x"))
	require.NoError(t, err)

	require.NoError(t, w.Commit())
	assert.ErrorIs(t, w.Commit(), ErrCommitted)
}

func TestWriter_RestagingKeepsLastContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.h")

	w := New(nil)
	_, err := w.Stage(path, []byte("first"))
	require.NoError(t, err)
	_, err = w.Stage(path, []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, w.Pending())

	require.NoError(t, w.Commit())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestNewResolver_Flags(t *testing.T) {
	withoutTerminal(t)

	tests := []struct {
		name    string
		force   bool
		skip    bool
		diff    bool
		wantErr bool
	}{
		{"no flags", false, false, false, false},
		{"force", true, false, false, false},
		{"skip", false, true, false, false},
		{"diff", false, false, true, false},
		{"force + skip", true, true, false, true},
		{"force + diff", true, false, true, true},
		{"skip + diff", false, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(tt.force, tt.skip, tt.diff, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}

func TestNewResolver_SkipsWithoutTerminal(t *testing.T) {
	withoutTerminal(t)

	r, err := NewResolver(false, false, false, &bytes.Buffer{})
	require.NoError(t, err)

	res, err := r.ResolveConflict("a.h", []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, generator.Skip, res)
}

func TestNewResolver_DiffWithoutTerminal(t *testing.T) {
	withoutTerminal(t)

	var buf bytes.Buffer
	r, err := NewResolver(false, false, true, &buf)
	require.NoError(t, err)

	res, err := r.ResolveConflict("a.h", []byte("struct A;\n"), []byte("struct B;\n"))
	require.NoError(t, err)
	assert.Equal(t, generator.Skip, res)
	assert.Contains(t, buf.String(), "-struct A;")
	assert.Contains(t, buf.String(), "+struct B;")
}

func TestWriter_Stage(t *testing.T) {
	dir := t.TempDir()
	same := filepath.Join(dir, "same.h")
	changed := filepath.Join(dir, "changed.h")
	require.NoError(t, os.WriteFile(same, []byte("struct A;"), 0644))
	require.NoError(t, os.WriteFile(changed, []byte("struct A;"), 0644))

	tests := []struct {
		name     string
		resolver ConflictResolver
		path     string
		content  string
		want     Outcome
		pending  bool
	}{
		{"new file", fixedResolver(generator.Skip), filepath.Join(dir, "new.h"), "struct A;", Created, true},
		{"identical content", fixedResolver(generator.Overwrite), same, "struct A;", Unchanged, false},
		{"conflict skipped", fixedResolver(generator.Skip), changed, "struct B;", Skipped, false},
		{"conflict overwritten", fixedResolver(generator.Overwrite), changed, "struct B;", Updated, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(tt.resolver)

			got, err := w.Stage(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.pending, len(w.Pending()) == 1)
		})
	}
}

func TestWriter_StageCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.h")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	w := New(fixedResolver(generator.Cancel))
	_, err := w.Stage(path, []byte("new"))
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, w.Pending())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "updated", Updated.String())
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "skipped", Skipped.String())
}
