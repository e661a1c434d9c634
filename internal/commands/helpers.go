package commands

import (
	"context"
	"fmt"

	"github.com/simonhull/firebird-suite/fledge/output"

	"github.com/simonhull/firebird-suite/wren/pkg/loader"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/typedecl"
)

// loadStore reads every header named by -f into a fresh store.
func loadStore(ctx context.Context) (*typedecl.Store, error) {
	if len(opts.files) == 0 {
		return nil, fmt.Errorf("no headers given: pass at least one -f <file|dir>")
	}

	cfg := opts.cfg
	files, err := loader.Discover(opts.files, loader.WalkOptions{
		Extensions: cfg.Load.Extensions,
		IgnoreDirs: cfg.Load.IgnoreDirs,
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no header files found in %v", opts.files)
	}
	output.Verbose(fmt.Sprintf("Found %d header files", len(files)))

	l, err := loader.New(loader.Options{
		Workers:   cfg.Load.Workers,
		CacheSize: cfg.Load.CacheSize,
	})
	if err != nil {
		return nil, err
	}
	l.WithLogger(logger.Default())

	store := typedecl.NewStore()
	res, err := l.Load(ctx, store, files)
	if err != nil {
		return nil, fmt.Errorf("loading headers: %w", err)
	}

	output.Verbose(fmt.Sprintf("Loaded %d types from %d files", res.Types, res.Files))
	return store, nil
}
