// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reduce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/archetype/lib/binhash"
	"github.com/bureau-foundation/archetype/lib/clock"
	"github.com/bureau-foundation/archetype/lib/docstore"
	"github.com/bureau-foundation/archetype/lib/model"
	"github.com/bureau-foundation/archetype/lib/umi"
)

// ErrAllFailed is returned by [Batch.Run] when every task failed.
var ErrAllFailed = errors.New("complexity reduction failed for all buildings")

// Cache stores reduced building documents by cache key.
// [docstore.Store] implements it.
type Cache interface {
	Get(ctx context.Context, key binhash.Digest) (*umi.Document, bool, error)
	Put(ctx context.Context, entry docstore.Entry, doc *umi.Document) error
}

// Batch reduces many building models concurrently.
type Batch struct {
	// Loader reads each model. Nil uses [model.FileLoader].
	Loader model.Loader

	Options     Options
	ZoneWeight  umi.ZoneWeight
	StrictNames bool

	// Parallel bounds the number of concurrent reductions. Zero or
	// less uses the number of CPUs.
	Parallel int

	// IDs is shared by every task's registry. Nil allocates a fresh
	// sequence per Run.
	IDs *umi.IDSequence

	// Cache is consulted before reducing and filled after. Nil
	// disables caching.
	Cache Cache

	// RunID is stamped on cache rows and log records. Empty generates
	// a random UUID per Run.
	RunID string

	Clock  clock.Clock
	Logger *slog.Logger
}

// Result is the outcome of one task.
type Result struct {
	Path string

	// Template is the reduced building. Nil when Err is set.
	Template *umi.BuildingTemplate

	// Library holds Template and everything reachable from it,
	// including the reduced-from zones in all-zones mode.
	Library *umi.Library

	// Cached reports that the template was rebuilt from the cache
	// instead of reduced.
	Cached bool

	Duration time.Duration
	Err      error
}

// Run reduces every path. Results are in completion order, one per
// path. The returned error is [ErrAllFailed] when no task succeeded,
// or the context error when ctx was canceled. Individual failures are
// reported on [Result.Err] only.
func (b *Batch) Run(ctx context.Context, paths []string) ([]Result, error) {
	loader := b.Loader
	if loader == nil {
		loader = model.FileLoader{}
	}
	ids := b.IDs
	if ids == nil {
		ids = umi.NewIDSequence()
	}
	clk := b.Clock
	if clk == nil {
		clk = clock.Real()
	}
	runID := b.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run_id", runID)
	parallel := b.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	task := &task{
		batch:  b,
		loader: loader,
		ids:    ids,
		clock:  clk,
		runID:  runID,
		logger: logger,
	}

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(paths))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for _, path := range paths {
		g.Go(func() error {
			result := task.runRecovered(gctx, path)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if len(results) > 0 && failed == len(results) {
		return results, ErrAllFailed
	}
	if failed > 0 {
		logger.Warn("some buildings failed to reduce", "failed", failed, "total", len(results))
	}
	return results, nil
}

// task holds the per-run state shared by every path.
type task struct {
	batch  *Batch
	loader model.Loader
	ids    *umi.IDSequence
	clock  clock.Clock
	runID  string
	logger *slog.Logger
}

func (t *task) registry(logger *slog.Logger) *umi.Registry {
	options := []umi.Option{
		umi.WithIDSequence(t.ids),
		umi.WithLogger(logger),
	}
	if t.batch.ZoneWeight != "" {
		options = append(options, umi.WithZoneWeight(t.batch.ZoneWeight))
	}
	if t.batch.StrictNames {
		options = append(options, umi.WithStrictNames())
	}
	return umi.NewRegistry(options...)
}

// runRecovered is run with a panic in the task reported as that
// task's error, so one malformed building cannot take down the batch.
func (t *task) runRecovered(ctx context.Context, path string) (result Result) {
	start := t.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				Path:     path,
				Duration: clock.Since(t.clock, start),
				Err:      fmt.Errorf("reducing %s: panic: %v", path, r),
			}
			t.logger.Error("building reduction panicked",
				"path", path,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	return t.run(ctx, path)
}

func (t *task) run(ctx context.Context, path string) Result {
	start := t.clock.Now()
	logger := t.logger.With("path", path)
	result := Result{Path: path}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	r := t.registry(logger)
	key, keyed := t.cacheKey(path, r.ZoneWeight(), logger)
	if keyed {
		library, err := t.fromCache(ctx, r, key, path)
		if err != nil {
			logger.Warn("reading reduction cache", "error", err)
		} else if library != nil {
			result.Library = library
			result.Template = library.BuildingTemplates[0]
			result.Cached = true
			result.Duration = clock.Since(t.clock, start)
			logger.Info("building restored from cache",
				"template", result.Template.Name,
				"duration", result.Duration)
			return result
		}
	}

	building, err := t.loader.Load(ctx, path)
	if err != nil {
		result.Err = err
		result.Duration = clock.Since(t.clock, start)
		logger.Warn("loading building failed", "error", err)
		return result
	}
	template, err := Building(r, building, t.batch.Options)
	if err != nil {
		result.Err = err
		result.Duration = clock.Since(t.clock, start)
		logger.Warn("reducing building failed", "error", err)
		return result
	}
	result.Template = template
	result.Library = umi.NewLibrary(building.Name, []*umi.BuildingTemplate{template}, t.batch.Options.AllZones)
	result.Duration = clock.Since(t.clock, start)
	logger.Info("building reduced", "template", template.Name, "duration", result.Duration)

	if keyed {
		entry := docstore.Entry{
			Key:    key,
			Name:   building.Name,
			Source: path,
			RunID:  t.runID,
		}
		if err := t.batch.Cache.Put(ctx, entry, result.Library.Document()); err != nil {
			logger.Warn("writing reduction cache", "error", err)
		}
	}
	return result
}

// cacheKey derives the cache key of the model at path. It reports
// false when caching is disabled or the file cannot be hashed.
func (t *task) cacheKey(path string, zoneWeight umi.ZoneWeight, logger *slog.Logger) (binhash.Digest, bool) {
	if t.batch.Cache == nil {
		return binhash.Digest{}, false
	}
	content, err := binhash.HashFile(path)
	if err != nil {
		logger.Warn("hashing model for cache", "error", err)
		return binhash.Digest{}, false
	}
	return binhash.ModelKey(content, t.batch.Options.Fingerprint(zoneWeight)), true
}

// fromCache rebuilds a cached building into r. It returns a nil
// library on a cache miss.
func (t *task) fromCache(ctx context.Context, r *umi.Registry, key binhash.Digest, path string) (*umi.Library, error) {
	doc, found, err := t.batch.Cache.Get(ctx, key)
	if err != nil || !found {
		return nil, err
	}
	library, err := umi.FromDocument(r, libraryName(path), doc)
	if err != nil {
		return nil, fmt.Errorf("rebuilding cached document %s: %w", key, err)
	}
	if len(library.BuildingTemplates) != 1 {
		return nil, fmt.Errorf("cached document %s holds %d building templates, want 1", key, len(library.BuildingTemplates))
	}
	return library, nil
}

// libraryName is the file name of path without its extension.
func libraryName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Templates returns the templates of the successful results.
func Templates(results []Result) []*umi.BuildingTemplate {
	var templates []*umi.BuildingTemplate
	for _, result := range results {
		if result.Err == nil {
			templates = append(templates, result.Template)
		}
	}
	return templates
}

// Library merges the libraries of the successful results into one.
func Library(name string, results []Result) *umi.Library {
	var libraries []*umi.Library
	for _, result := range results {
		if result.Err == nil {
			libraries = append(libraries, result.Library)
		}
	}
	return umi.Merge(name, libraries...)
}
