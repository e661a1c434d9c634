package commands

import (
	"errors"
	"fmt"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/graph"
)

// CheckCmd creates and returns the 'check' command
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report unresolved references and by-value cycles",
		Long: `Check loads the headers and reports every problem that would make emit fail:
references to types that are never declared and types that contain
themselves by value.

Examples:
  wren check -f headers/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd.Context())
			if err != nil {
				return err
			}

			err = graph.Validate(store)
			if err == nil {
				output.Success(fmt.Sprintf("%d types, no problems found", store.Len()))
				return nil
			}

			var problems graph.Problems
			if !errors.As(err, &problems) {
				return err
			}

			for _, p := range problems {
				output.Error(p.Error())
			}
			return fmt.Errorf("%d problems found", len(problems))
		},
	}

	return cmd
}
