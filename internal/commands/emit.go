package commands

import (
	"fmt"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/emitter"
	"github.com/simonhull/firebird-suite/wren/pkg/writer"
)

// EmitCmd creates and returns the 'emit' command
func EmitCmd() *cobra.Command {
	var outPath string
	var noMarkers bool
	var force, skip, diff bool

	cmd := &cobra.Command{
		Use:   "emit <type>...",
		Short: "Print types and their dependencies in declaration order",
		Long: `Emit prints each requested type preceded by everything it depends on.

By-value members come first, pointer members are forward-declared, and every
declaration appears once. Several roots share one pass, so common
dependencies are not repeated.

Examples:
  wren emit Player -f dump.h
  wren emit Player Inventory -f headers/ --out player.h
  wren emit Player -f dump.h --out player.h --diff
  wren emit Player -f dump.h --no-markers`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := writer.NewResolver(force, skip, diff, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			store, err := loadStore(cmd.Context())
			if err != nil {
				return err
			}

			e := emitter.New(store, emitter.Options{
				Markers:    opts.cfg.Emit.Markers && !noMarkers,
				Terminator: opts.cfg.Emit.Terminator,
			})

			text, err := e.EmitAll(args...)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}

			w := writer.New(resolver)
			outcome, err := w.Stage(outPath, []byte(text))
			if err != nil {
				return err
			}
			if err := w.Commit(); err != nil {
				return err
			}

			switch outcome {
			case writer.Created, writer.Updated:
				output.Success(fmt.Sprintf("Wrote %s (%s)", outPath, outcome))
			case writer.Unchanged:
				output.Info(fmt.Sprintf("%s is up to date", outPath))
			default:
				output.Info(fmt.Sprintf("Kept existing %s", outPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&noMarkers, "no-markers", false, "Omit the // BEG / // END comments")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file without asking")
	cmd.Flags().BoolVar(&skip, "skip", false, "Keep an existing output file without asking")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show the diff against an existing output file, then ask")

	return cmd
}
