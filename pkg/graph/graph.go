// Package graph inspects the type dependency graph held in a store:
// reachability, by-value cycles, layering and diagram export.
package graph

import (
	"github.com/simonhull/firebird-suite/wren/pkg/typedecl"
)

// Node is a type in the graph.
type Node struct {
	Name    string
	Kind    typedecl.Kind
	Missing bool // Referenced but not in the store
	Layer   int  // Longest by-value chain below this type (0 = leaf)
}

// Edge is a reference from one type to another.
type Edge struct {
	From   string
	To     string
	Strong bool
	Cycle  bool // Part of a by-value cycle
}

// Stats summarises a graph.
type Stats struct {
	Types       int
	StrongEdges int
	WeakEdges   int
	Unresolved  int
	Cycles      int
	MaxLayer    int
}

// Graph is a snapshot of (part of) a store's dependency graph.
type Graph struct {
	Nodes  []*Node
	Edges  []*Edge
	Cycles [][]string // By-value cycles; each lists its members in order
	Stats  Stats

	byName map[string]*Node
}

// Build snapshots the graph. With no roots the whole store is included;
// otherwise only the types reachable from the roots.
func Build(store *typedecl.Store, roots ...string) *Graph {
	g := &Graph{byName: make(map[string]*Node)}

	names := roots
	if len(names) == 0 {
		names = store.Names()
	}
	for _, name := range Reachable(store, names...) {
		g.addNode(store, name)
	}

	for _, node := range g.Nodes {
		if node.Missing {
			continue
		}
		info, _ := store.Get(node.Name)
		for _, dep := range info.Deps.All() {
			g.Edges = append(g.Edges, &Edge{From: node.Name, To: dep.Name, Strong: dep.Strong})
		}
	}

	g.Cycles = detectStrongCycles(g)
	for _, cycle := range g.Cycles {
		markCycleEdges(g.Edges, cycle)
	}
	inferLayers(g)
	g.Stats = calculateStats(g)

	return g
}

// Node returns the node for name, or nil.
func (g *Graph) Node(name string) *Node {
	return g.byName[name]
}

func (g *Graph) addNode(store *typedecl.Store, name string) {
	node := &Node{Name: name}
	if info, ok := store.Get(name); ok {
		node.Kind = info.Kind
	} else {
		node.Missing = true
	}
	g.byName[name] = node
	g.Nodes = append(g.Nodes, node)
}

// Reachable lists the roots and every type they reference, transitively,
// depth-first in dependency order. Missing names are included once.
func Reachable(store *typedecl.Store, roots ...string) []string {
	var order []string
	seen := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		order = append(order, name)

		info, ok := store.Get(name)
		if !ok {
			return
		}
		for _, dep := range info.Deps.All() {
			visit(dep.Name)
		}
	}

	for _, root := range roots {
		visit(root)
	}
	return order
}

// strongAdjacency lists by-value edges per type.
func (g *Graph) strongAdjacency() map[string][]string {
	adj := make(map[string][]string)
	for _, e := range g.Edges {
		if e.Strong {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}
	return adj
}

// detectStrongCycles finds by-value cycles with a DFS over strong edges.
func detectStrongCycles(g *Graph) [][]string {
	var cycles [][]string
	adj := g.strongAdjacency()
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var dfs func(name string, path []string)
	dfs = func(name string, path []string) {
		visited[name] = true
		onStack[name] = true
		path = append(path, name)

		for _, next := range adj[name] {
			if !visited[next] {
				dfs(next, path)
				continue
			}
			if !onStack[next] {
				continue
			}
			for i, p := range path {
				if p == next {
					cycle := make([]string, len(path)-i)
					copy(cycle, path[i:])
					cycles = append(cycles, cycle)
					break
				}
			}
		}

		onStack[name] = false
	}

	for _, node := range g.Nodes {
		if !visited[node.Name] {
			dfs(node.Name, nil)
		}
	}

	return cycles
}

// markCycleEdges flags the strong edges that close a cycle.
func markCycleEdges(edges []*Edge, cycle []string) {
	for i := range cycle {
		from := cycle[i]
		to := cycle[(i+1)%len(cycle)]

		for _, e := range edges {
			if e.Strong && e.From == from && e.To == to {
				e.Cycle = true
			}
		}
	}
}

// inferLayers assigns each type the length of its longest by-value chain,
// ignoring cycle edges.
func inferLayers(g *Graph) {
	adj := make(map[string][]string)
	for _, e := range g.Edges {
		if e.Strong && !e.Cycle {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}

	memo := make(map[string]int)
	inProgress := make(map[string]bool)

	var depth func(name string) int
	depth = func(name string) int {
		if d, ok := memo[name]; ok {
			return d
		}
		if inProgress[name] {
			// residual cycle not caught by DFS ordering
			return 0
		}
		inProgress[name] = true

		d := 0
		for _, next := range adj[name] {
			if nd := depth(next) + 1; nd > d {
				d = nd
			}
		}

		inProgress[name] = false
		memo[name] = d
		return d
	}

	for _, node := range g.Nodes {
		node.Layer = depth(node.Name)
	}
}

func calculateStats(g *Graph) Stats {
	var stats Stats

	for _, node := range g.Nodes {
		if node.Missing {
			stats.Unresolved++
			continue
		}
		stats.Types++
		if node.Layer > stats.MaxLayer {
			stats.MaxLayer = node.Layer
		}
	}

	for _, e := range g.Edges {
		if e.Strong {
			stats.StrongEdges++
		} else {
			stats.WeakEdges++
		}
	}

	stats.Cycles = len(g.Cycles)
	return stats
}
