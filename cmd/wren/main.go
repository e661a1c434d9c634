package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/firebird-suite/fledge/output"

	"github.com/simonhull/firebird-suite/wren/internal/commands"
	"github.com/simonhull/firebird-suite/wren/pkg/config"
)

func main() {
	if err := config.LoadDotEnv(config.DotEnvPath); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.RootCmd().ExecuteContext(ctx); err != nil {
		output.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
