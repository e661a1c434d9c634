// Package loader reads header files into a typedecl.Store.
//
// Parsing is the expensive step and runs on a worker pool, one tree-sitter
// parser per worker. Records are added to the store afterwards, one file at
// a time in input order, so the resulting store never depends on which
// worker finished first.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/syntax"
	"github.com/simonhull/firebird-suite/wren/pkg/typedecl"
)

// Options configures a Loader.
type Options struct {
	Workers   int // 0 = one per CPU
	CacheSize int // parsed files kept in memory; 0 disables the cache
}

// Result summarizes one Load call.
type Result struct {
	Files     int
	Types     int
	CacheHits int
}

// FileError ties a parse or extraction failure to the file it came from.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Loader parses header files and feeds their declarations into a store.
// A Loader may be reused; its cache survives between Load calls.
type Loader struct {
	logger  logger.Logger
	workers int
	cache   *lru.Cache[string, []*typedecl.TypedefInfo]
}

// New creates a Loader.
func New(opts Options) (*Loader, error) {
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", opts.Workers)
	}

	l := &Loader{
		logger:  logger.NewSilentLogger(),
		workers: opts.Workers,
	}
	if l.workers == 0 {
		l.workers = runtime.NumCPU()
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New[string, []*typedecl.TypedefInfo](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating parse cache: %w", err)
		}
		l.cache = cache
	}

	return l, nil
}

// WithLogger sets the logger used for per-file progress.
func (l *Loader) WithLogger(log logger.Logger) *Loader {
	if log != nil {
		l.logger = log
	}
	return l
}

type fileJob struct {
	index int
	path  string
}

type fileResult struct {
	infos  []*typedecl.TypedefInfo
	cached bool
	err    error
}

// Load parses files and adds their declarations to store in the order the
// files are given. Each file is all or nothing. Loading stops at the first
// file (in input order) that fails; files before it stay in the store and
// the returned error is a *FileError.
func (l *Loader) Load(ctx context.Context, store *typedecl.Store, files []string) (Result, error) {
	var res Result
	if len(files) == 0 {
		return res, nil
	}

	l.logger.Debug("Loading headers",
		logger.F("files", len(files)),
		logger.F("workers", l.workers))

	results := l.parseAll(ctx, files)

	for i, path := range files {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		r := results[i]
		if r.err != nil {
			return res, &FileError{Path: path, Err: r.err}
		}

		store.Add(r.infos...)
		res.Files++
		res.Types += len(r.infos)
		if r.cached {
			res.CacheHits++
		}

		l.logger.Debug("Loaded header",
			logger.F("path", path),
			logger.F("types", len(r.infos)),
			logger.F("cached", r.cached))
	}

	l.logger.Info("Headers loaded",
		logger.F("files", res.Files),
		logger.F("types", res.Types),
		logger.F("cache_hits", res.CacheHits))

	return res, nil
}

// parseAll runs the worker pool. Results are indexed like files; a file
// skipped because ctx was cancelled carries ctx.Err().
func (l *Loader) parseAll(ctx context.Context, files []string) []fileResult {
	results := make([]fileResult, len(files))

	numWorkers := l.workers
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	jobs := make(chan fileJob, len(files))
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go l.parseWorker(ctx, jobs, results, &wg)
	}

	for i, path := range files {
		jobs <- fileJob{index: i, path: path}
	}
	close(jobs)

	wg.Wait()
	return results
}

// parseWorker owns one parser. Each job writes only its own result slot.
func (l *Loader) parseWorker(ctx context.Context, jobs <-chan fileJob, results []fileResult, wg *sync.WaitGroup) {
	defer wg.Done()

	parser := syntax.NewParser()
	defer parser.Close()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results[job.index] = fileResult{err: ctx.Err()}
			continue
		default:
		}

		results[job.index] = l.parseFile(ctx, parser, job.path)
	}
}

func (l *Loader) parseFile(ctx context.Context, parser *syntax.Parser, path string) fileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: err}
	}

	key := cacheKey(path, src)
	if l.cache != nil {
		if infos, ok := l.cache.Get(key); ok {
			return fileResult{infos: infos, cached: true}
		}
	}

	infos, err := ExtractSource(ctx, parser, src)
	if err != nil {
		return fileResult{err: err}
	}

	if l.cache != nil {
		l.cache.Add(key, infos)
	}
	return fileResult{infos: infos}
}

// ExtractSource parses src and extracts its declarations without touching
// a store.
func ExtractSource(ctx context.Context, parser *syntax.Parser, src []byte) ([]*typedecl.TypedefInfo, error) {
	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return typedecl.Extract(tree.Root())
}

func cacheKey(path string, src []byte) string {
	sum := sha256.Sum256(src)
	return path + "@" + hex.EncodeToString(sum[:])
}
