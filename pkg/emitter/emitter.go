// Package emitter turns a populated type store into an ordered, standalone
// re-declaration of requested types.
//
// # Ordering
//
// For each requested type the emitter walks its dependencies in the order
// they were recorded:
//
//   - by-value (strong) dependencies are emitted in full first;
//   - pointer (weak) dependencies get a forward declaration;
//   - the type's own declaration follows, verbatim;
//   - finally the weak dependencies are expanded in full.
//
// A visited set shared across the walk guarantees every declaration is
// emitted at most once and that pointer cycles terminate.
//
// # Example
//
//	e := emitter.New(store, emitter.DefaultOptions())
//	text, err := e.Emit("Node")
package emitter

import (
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/wren/pkg/typedecl"
)

// Lookup resolves type names. *typedecl.Store implements it.
type Lookup interface {
	Get(name string) (*typedecl.TypedefInfo, bool)
}

// Options controls the emitted text.
type Options struct {
	// Markers brackets each type's block with "// BEG name" / "// END name".
	Markers bool
	// Terminator ends every declaration. Default: ";"
	Terminator string
}

// DefaultOptions returns markers on and ";" as terminator.
func DefaultOptions() Options {
	return Options{Markers: true, Terminator: ";"}
}

// Emitter produces declaration sequences from a type store.
// It holds no per-request state and is safe for concurrent use as long as
// the store is no longer being extracted into.
type Emitter struct {
	types Lookup
	opts  Options
}

// New creates an emitter over types.
func New(types Lookup, opts Options) *Emitter {
	if opts.Terminator == "" {
		opts.Terminator = ";"
	}
	return &Emitter{types: types, opts: opts}
}

// Emit returns the declarations needed to define root standalone.
func (e *Emitter) Emit(root string) (string, error) {
	return e.EmitAll(root)
}

// EmitAll emits several roots in order, sharing one visited set so that a
// declaration needed by more than one root appears once.
// On error no output is returned.
func (e *Emitter) EmitAll(roots ...string) (string, error) {
	r := &run{
		emitter: e,
		visited: make(map[string]bool),
	}

	for _, root := range roots {
		if err := r.build(root, "", nil); err != nil {
			return "", err
		}
	}

	return r.out.String(), nil
}

// EmitTo writes the result of EmitAll to w. Nothing is written on error.
func (e *Emitter) EmitTo(w io.Writer, roots ...string) error {
	text, err := e.EmitAll(roots...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// run is the state of one emission request.
type run struct {
	emitter *Emitter
	out     strings.Builder
	visited map[string]bool
}

// build emits name. chain holds the types whose by-value expansion led
// here without passing through a pointer edge; meeting name in it again
// means the types contain each other by value.
func (r *run) build(name, referrer string, chain []string) error {
	if r.visited[name] {
		return nil
	}

	info, err := r.lookup(name, referrer)
	if err != nil {
		return err
	}

	for i, n := range chain {
		if n == name {
			path := append(append([]string{}, chain[i:]...), name)
			return &CycleError{Path: path}
		}
	}
	chain = append(chain, name)

	r.marker("BEG", name)

	deps := info.Deps.All()
	for _, dep := range deps {
		depInfo, err := r.lookup(dep.Name, name)
		if err != nil {
			return err
		}

		if dep.Strong {
			if err := r.build(dep.Name, name, chain); err != nil {
				return err
			}
		} else if !r.visited[dep.Name] {
			r.line(depInfo.ForwardDecl())
		}
	}

	// A weak path back to name may already have emitted it.
	if !r.visited[name] {
		r.line(info.Decl)
		r.visited[name] = true
	}

	for _, dep := range deps {
		if dep.Strong {
			continue
		}
		if err := r.build(dep.Name, name, nil); err != nil {
			return err
		}
	}

	r.marker("END", name)
	return nil
}

func (r *run) lookup(name, referrer string) (*typedecl.TypedefInfo, error) {
	info, ok := r.emitter.types.Get(name)
	if !ok {
		return nil, &UnresolvedError{Name: name, Referrer: referrer}
	}
	return info, nil
}

// line writes a declaration followed by the terminator, unless the source
// text already ends with one (typedefs carry their own).
func (r *run) line(decl string) {
	term := r.emitter.opts.Terminator
	r.out.WriteString(decl)
	if !strings.HasSuffix(strings.TrimRight(decl, " \t\r\n"), term) {
		r.out.WriteString(term)
	}
	r.out.WriteByte('\n')
}

func (r *run) marker(tag, name string) {
	if r.emitter.opts.Markers {
		r.out.WriteString("// " + tag + " " + name + "\n")
	}
}
