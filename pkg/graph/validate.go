package graph

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/wren/pkg/typedecl"
)

// Problem is one integrity issue found in a store.
type Problem struct {
	Type    string // Type the problem was found on
	Message string
}

// Error returns a formatted error message
func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Type, p.Message)
}

// Problems is a collection of integrity problems
type Problems []Problem

// Error returns all problems formatted with clear separation
func (p Problems) Error() string {
	if len(p) == 0 {
		return "graph problems"
	}
	if len(p) == 1 {
		return p[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d graph problems:\n", len(p))
	for i, problem := range p {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, problem.Error())
	}
	return b.String()
}

// Validate reports every reference to a type missing from the store and
// every by-value cycle. Both would make emission fail for any root that
// reaches them. It returns nil for a clean store.
func Validate(store *typedecl.Store) error {
	var problems Problems

	for _, info := range store.All() {
		for _, dep := range info.Deps.All() {
			if _, ok := store.Get(dep.Name); !ok {
				problems = append(problems, Problem{
					Type:    info.Name,
					Message: fmt.Sprintf("references unknown type %s", dep.Name),
				})
			}
		}
	}

	g := Build(store)
	for _, cycle := range g.Cycles {
		problems = append(problems, Problem{
			Type:    cycle[0],
			Message: fmt.Sprintf("contains itself by value: %s -> %s", strings.Join(cycle, " -> "), cycle[0]),
		})
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}
