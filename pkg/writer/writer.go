// Package writer saves emitted declarations to disk through fledge's
// generator package.
//
// Files are staged and written together on Commit by a
// generator.Transaction. An existing file with different content goes
// through a conflict resolver first. If the commit fails, files that were
// overwritten get their previous content back.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/firebird-suite/fledge/generator"
	"golang.org/x/term"
)

var (
	// ErrCancelled is returned when the user cancels at a conflict prompt.
	ErrCancelled = errors.New("cancelled by user")

	// ErrCommitted is returned by a second Commit.
	ErrCommitted = errors.New("writer already committed")
)

// Outcome reports what Stage decided for one path.
type Outcome int

const (
	Created Outcome = iota
	Updated
	Unchanged
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	default:
		return "skipped"
	}
}

// ConflictResolver decides what happens to an existing file.
// *generator.Resolver satisfies it.
type ConflictResolver interface {
	ResolveConflict(path string, existing, newer []byte) (generator.ConflictResolution, error)
}

// isTerminal reports whether the interactive conflict menu can run.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewResolver builds a resolver for the --force, --skip and --diff flags.
// With no flag set the user is asked. Without a terminal nobody can answer,
// so conflicts are skipped, and --diff prints the diff to diffOut first.
func NewResolver(force, skip, diff bool, diffOut io.Writer) (ConflictResolver, error) {
	if skip && diff {
		return nil, fmt.Errorf("--skip cannot be combined with --diff")
	}

	if !force && !skip && !isTerminal() {
		if diff {
			return diffOnly{out: diffOut}, nil
		}
		skip = true
	}

	r, err := generator.NewResolver(force, skip, diff)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// diffOnly prints the diff and keeps the existing file.
type diffOnly struct {
	out io.Writer
}

func (d diffOnly) ResolveConflict(path string, existing, newer []byte) (generator.ConflictResolution, error) {
	if _, err := fmt.Fprintln(d.out, generator.GenerateDiff(path, path, existing, newer, nil)); err != nil {
		return generator.Cancel, err
	}
	return generator.Skip, nil
}

type backup struct {
	content []byte
	mode    os.FileMode
}

// Writer stages output files behind a conflict resolver.
type Writer struct {
	resolver ConflictResolver
	tx       *generator.Transaction
	mode     os.FileMode

	order     []string
	staged    map[string][]byte
	backups   map[string]backup
	committed bool
}

// New creates a Writer. A nil resolver skips every conflict.
func New(resolver ConflictResolver) *Writer {
	if resolver == nil {
		resolver, _ = generator.NewResolver(false, true, false)
	}
	return &Writer{
		resolver: resolver,
		tx:       generator.NewTransaction(),
		mode:     0644,
		staged:   make(map[string][]byte),
		backups:  make(map[string]backup),
	}
}

// Stage queues content for path, consulting the resolver if path already
// holds something else. Staging a path again replaces its content.
func (w *Writer) Stage(path string, content []byte) (Outcome, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		w.add(path, content)
		return Created, nil
	}
	if err != nil {
		return Skipped, fmt.Errorf("reading %s: %w", path, err)
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return Skipped, fmt.Errorf("reading %s: %w", path, err)
	}

	if bytes.Equal(existing, content) {
		return Unchanged, nil
	}

	res, err := w.resolver.ResolveConflict(path, existing, content)
	if err != nil {
		return Skipped, err
	}

	switch res {
	case generator.Overwrite:
		w.backups[path] = backup{content: existing, mode: info.Mode().Perm()}
		w.add(path, content)
		return Updated, nil
	case generator.Skip:
		return Skipped, nil
	default:
		return Skipped, ErrCancelled
	}
}

func (w *Writer) add(path string, content []byte) {
	if _, ok := w.staged[path]; !ok {
		w.order = append(w.order, path)
	}
	w.staged[path] = content
}

// Commit writes everything staged. On failure the transaction removes what
// it wrote and overwritten files are restored.
func (w *Writer) Commit() error {
	if w.committed {
		return ErrCommitted
	}
	w.committed = true

	for _, path := range w.order {
		w.tx.AddFile(path, w.staged[path], w.mode)
	}
	w.order = nil

	if err := w.tx.Commit(); err != nil {
		w.restore()
		return err
	}
	return nil
}

// restore puts back the content of files that were overwritten.
func (w *Writer) restore() {
	for path, b := range w.backups {
		os.WriteFile(path, b.content, b.mode) // Best effort
	}
}

// Pending returns the staged paths in staging order.
func (w *Writer) Pending() []string {
	return append([]string(nil), w.order...)
}
