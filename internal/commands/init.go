package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/config"
)

// InitCmd creates and returns the 'init' command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a wren.yaml with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			output.Success("Created " + path)
			output.Step("Environment variables override it, e.g. WREN_EMIT_MARKERS=false")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
