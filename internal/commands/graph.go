package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/graph"
)

// GraphCmd creates and returns the 'graph' command
func GraphCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph [type]...",
		Short: "Export the dependency graph as a Mermaid or Graphviz diagram",
		Long: `Graph prints the type dependency graph. With type arguments only the types
reachable from them are drawn.

By-value references are solid edges, pointer references dashed, and edges
closing a by-value cycle are highlighted.

Examples:
  wren graph -f dump.h
  wren graph Player -f dump.h --format dot | dot -Tsvg > player.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd.Context())
			if err != nil {
				return err
			}

			if format == "" {
				format = opts.cfg.Graph.Format
			}

			text, err := graph.Render(graph.Build(store, args...), format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Diagram format: mermaid or dot (default from config)")

	return cmd
}
