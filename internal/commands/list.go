package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/graph"
)

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

// ListCmd creates and returns the 'list' command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List every loaded type with its kind and dependency counts",
		Example: `  wren list -f dump.h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd.Context())
			if err != nil {
				return err
			}

			g := graph.Build(store)

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("TYPE", "KIND", "BY VALUE", "POINTER", "LAYER").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerCellStyle
					}
					return cellStyle
				})

			for _, info := range store.All() {
				layer := ""
				if n := g.Node(info.Name); n != nil {
					layer = strconv.Itoa(n.Layer)
				}
				t.Row(
					info.Name,
					info.Kind.String(),
					strconv.Itoa(len(info.Deps.Strong())),
					strconv.Itoa(len(info.Deps.Weak())),
					layer,
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintf(cmd.OutOrStdout(), "%d types, %d by-value and %d pointer references\n",
				g.Stats.Types, g.Stats.StrongEdges, g.Stats.WeakEdges)
			return nil
		},
	}

	return cmd
}
