package commands

import (
	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren"
	"github.com/simonhull/firebird-suite/wren/pkg/config"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
)

// globalOptions holds the persistent flags and the configuration loaded
// from them. It is filled in before any subcommand runs.
type globalOptions struct {
	verbose    bool
	configPath string
	files      []string
	cfg        *config.Config
}

var opts = &globalOptions{}

// RootCmd creates and returns the root command for the wren CLI
func RootCmd() *cobra.Command {
	opts = &globalOptions{}

	cmd := &cobra.Command{
		Use:   "wren",
		Short: "Re-emit recovered C/C++ type declarations in dependency order",
		Long: `Wren reads C/C++ headers full of recovered type declarations (structs,
unions, typedefs and function-pointer typedefs) and prints any requested
type together with everything it needs, ordered so a C compiler accepts it:

• By-value members are declared before the type that embeds them
• Pointer members get a forward declaration, then their full definition
• Every declaration is printed once, even across pointer cycles

Headers are given with -f (files or directories, repeatable).`,
		Version:       wren.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(opts.verbose)

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level, err := logger.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			if opts.verbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.NewLogger(level, cmd.ErrOrStderr()))

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Config file")
	cmd.PersistentFlags().StringArrayVarP(&opts.files, "file", "f", nil, "Header file or directory to load (repeatable)")

	cmd.AddCommand(EmitCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(GraphCmd())
	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(InitCmd())
	cmd.AddCommand(VersionCmd())

	return cmd
}
