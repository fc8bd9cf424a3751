package driver

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"tschecker/internal/ast"
	"tschecker/internal/check"
	"tschecker/internal/config"
	"tschecker/internal/diag"
	"tschecker/internal/observ"
	"tschecker/internal/symbols"
	"tschecker/internal/trace"
	"tschecker/internal/types"
)

// FileInput is one file's already-bound program: a binder elsewhere (out of
// this module's scope, per spec.md's non-goals) has produced the arena,
// symbol table, and top-level statement list; Hash identifies this exact
// version of it for the on-disk cache.
type FileInput struct {
	Path        string
	Hash        ContentHash
	Arena       *ast.Arena
	Symbols     *symbols.Table
	Types       *types.Interner
	Scope       symbols.ScopeID
	Statements  []ast.NodeIndex
}

// FileResult is one file's check outcome.
type FileResult struct {
	Path     string
	Bag      *diag.Bag
	Result   check.Result
	Cached   bool
	Err      error
}

// Options configures a Run.
type Options struct {
	// Jobs bounds concurrency; <=0 defaults to GOMAXPROCS.
	Jobs int
	// Cache, if non-nil, is consulted before checking a file and updated
	// after. A nil Cache disables caching.
	Cache *DiskCache
	// Tracer receives CheckFile span events. A nil Tracer is a no-op.
	Tracer trace.Tracer
	// TraceLevel gates which events Tracer receives.
	TraceLevel trace.Level
	// Timings, when non-nil, receives one observ.Report per file, keyed by
	// path, once Run returns.
	Timings map[string]observ.Report
}

// Run checks every file in files concurrently, one goroutine per file as
// spec.md §5 allows ("independent files on worker threads, each owning its
// own AST arena, symbol table, and per-file checker"), bounding concurrency
// to opts.Jobs (or GOMAXPROCS). Results are returned in the same order as
// files, regardless of completion order.
func Run(ctx context.Context, files []FileInput, checkOpts config.EffectiveOptions, opts Options) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	var timingsMu sync.Mutex

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = runOne(files[i], checkOpts, opts, &timingsMu)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runOne(f FileInput, checkOpts config.EffectiveOptions, opts Options, timingsMu *sync.Mutex) FileResult {
	end := trace.Begin(opts.Tracer, opts.TraceLevel, "CheckFile", f.Path)
	var timer *observ.Timer
	if opts.Timings != nil {
		timer = observ.NewTimer()
	}
	recordTiming := func() {
		if timer == nil {
			return
		}
		timingsMu.Lock()
		opts.Timings[f.Path] = timer.Report()
		timingsMu.Unlock()
	}

	if opts.Cache != nil {
		if cached, ok, err := opts.Cache.Get(f.Hash); err == nil && ok {
			bag := diag.NewBag()
			for _, d := range fromCached(cached.Diagnostics) {
				bag.Add(d)
			}
			end("cache-hit")
			recordTiming()
			return FileResult{Path: f.Path, Bag: bag, Cached: true}
		}
	}

	var checkIdx int
	if timer != nil {
		checkIdx = timer.Begin("check")
	}

	bag := diag.NewBag()
	c := check.NewChecker(f.Arena, f.Symbols, f.Types, checkOpts, diag.BagReporter{Bag: bag})
	c.CheckProgram(f.Statements, f.Scope)
	bag.Sort()

	if timer != nil {
		timer.End(checkIdx, "")
	}
	recordTiming()

	if opts.Cache != nil {
		_ = opts.Cache.Put(f.Hash, CachedResult{Diagnostics: toCached(bag.Items())})
	}

	end("checked")
	return FileResult{Path: f.Path, Bag: bag, Result: c.Finish()}
}

// SortByPath orders results by file path, for deterministic CLI output when
// Run's goroutines complete out of order (Run itself already preserves
// input order; this is for callers that reordered files before calling Run).
func SortByPath(results []FileResult) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })
}
