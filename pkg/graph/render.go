package graph

import (
	"fmt"
	"strings"
)

// Supported diagram formats.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
)

// Render draws g in the given format.
func Render(g *Graph, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatMermaid, "":
		return Mermaid(g), nil
	case FormatDOT, "graphviz":
		return DOT(g), nil
	default:
		return "", fmt.Errorf("unsupported graph format: %s (supported: mermaid, dot)", format)
	}
}

// Mermaid renders a flowchart. By-value edges are solid, pointer edges
// dotted, and edges closing a by-value cycle are drawn in red.
func Mermaid(g *Graph) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		if node.Missing {
			fmt.Fprintf(&b, "    %s[\"%s (missing)\"]:::missing\n", sanitizeID(node.Name), node.Name)
			continue
		}
		fmt.Fprintf(&b, "    %s[\"%s (%s)\"]\n", sanitizeID(node.Name), node.Name, node.Kind)
	}

	var cycleLinks []string
	for i, e := range g.Edges {
		arrow := "-.->"
		if e.Strong {
			arrow = "-->"
		}
		fmt.Fprintf(&b, "    %s %s %s\n", sanitizeID(e.From), arrow, sanitizeID(e.To))
		if e.Cycle {
			cycleLinks = append(cycleLinks, fmt.Sprint(i))
		}
	}

	if len(cycleLinks) > 0 {
		fmt.Fprintf(&b, "    linkStyle %s stroke:#e5484d,stroke-width:2px\n", strings.Join(cycleLinks, ","))
	}
	b.WriteString("    classDef missing stroke:#e5484d,stroke-dasharray:4\n")

	return b.String()
}

// DOT renders a Graphviz digraph with the same conventions as Mermaid.
func DOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph types {\n")
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=box];\n")

	for _, node := range g.Nodes {
		if node.Missing {
			fmt.Fprintf(&b, "    %q [label=%q, style=dashed, color=red];\n", node.Name, node.Name+"\nmissing")
			continue
		}
		fmt.Fprintf(&b, "    %q [label=%q];\n", node.Name, node.Name+"\n"+node.Kind.String())
	}

	for _, e := range g.Edges {
		var attrs []string
		if !e.Strong {
			attrs = append(attrs, "style=dashed")
		}
		if e.Cycle {
			attrs = append(attrs, "color=red")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&b, "    %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&b, "    %q -> %q;\n", e.From, e.To)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// sanitizeID makes a type name safe to use as a Mermaid node id.
func sanitizeID(name string) string {
	id := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)

	if len(id) > 0 && id[0] >= '0' && id[0] <= '9' {
		id = "t_" + id
	}
	return id
}
