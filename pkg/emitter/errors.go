package emitter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedReference is returned when a requested type, or one of
	// its dependencies, is not in the store.
	ErrUnresolvedReference = errors.New("unresolved type reference")

	// ErrStrongCycle is returned when types contain each other by value.
	// Correct extraction never produces such a graph.
	ErrStrongCycle = errors.New("strong dependency cycle")
)

// UnresolvedError names the missing type and who referenced it.
// Referrer is empty when the missing type was the requested root.
type UnresolvedError struct {
	Name     string
	Referrer string
}

func (e *UnresolvedError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("%s: %s", ErrUnresolvedReference, e.Name)
	}
	return fmt.Sprintf("%s: %s (referenced by %s)", ErrUnresolvedReference, e.Name, e.Referrer)
}

func (e *UnresolvedError) Unwrap() error { return ErrUnresolvedReference }

// CycleError lists the by-value chain that leads back to its first element.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStrongCycle, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrStrongCycle }
