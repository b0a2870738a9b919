// Package stardb is the public entry point for the segment-granular
// CPU/GPU hybrid star-schema query engine: it wires the column catalog
// (C2), segment cache (C1), placement planner (C5), device dispatcher (C4)
// and query orchestrator (C6) behind one instance, the way pkg/ignite wires
// the teacher's index/storage/engine trio behind one Instance.
package stardb

import (
	"context"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/internal/kernel"
	"github.com/iamNilotpal/stardb/internal/orchestrator"
	"github.com/iamNilotpal/stardb/internal/planner"
	"github.com/iamNilotpal/stardb/pkg/logger"
	"github.com/iamNilotpal/stardb/pkg/options"
	"github.com/iamNilotpal/stardb/pkg/queryplan"
)

// Instance is the primary entry point for loading a star-schema dataset
// into the engine's segment cache and running the four fixed SSB queries
// against it.
type Instance struct {
	options      *options.Options
	catalog      *catalog.Catalog
	cache        *cache.Cache
	orchestrator *orchestrator.Orchestrator
}

// NewInstance creates and wires a new stardb Instance: a catalog, a cache
// sized per options, a placement planner, a device dispatcher, and the
// orchestrator that ties them together behind Query.
func NewInstance(service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	cat, err := catalog.New(&catalog.Config{Logger: log})
	if err != nil {
		return nil, err
	}

	c, err := cache.New(&cache.Config{
		Logger: log, Catalog: cat,
		SegmentSize: defaultOpts.SegmentOptions.Size,
		TileSize:    defaultOpts.SegmentOptions.TileSize(),
	})
	if err != nil {
		return nil, err
	}

	p, err := planner.New(&planner.Config{Logger: log, Catalog: cat, Skipping: defaultOpts.Skipping})
	if err != nil {
		return nil, err
	}

	dispatcher, err := device.New(&device.Config{
		Logger:        log,
		MaxStreams:    defaultOpts.MaxStreams,
		PinnedMemSize: defaultOpts.PinnedMemSize,
	})
	if err != nil {
		return nil, err
	}

	orch, err := orchestrator.New(&orchestrator.Config{
		Logger: log, Options: &defaultOpts, Catalog: cat, Cache: c, Planner: p, Dispatcher: dispatcher,
	})
	if err != nil {
		return nil, err
	}

	return &Instance{options: &defaultOpts, catalog: cat, cache: c, orchestrator: orch}, nil
}

// RegisterColumn registers one column's schema (spec.md §6's catalog
// input: name, table, row_count, min, max) with the engine.
func (i *Instance) RegisterColumn(spec catalog.ColumnSpec) (*catalog.Column, error) {
	return i.catalog.RegisterColumn(spec, i.options.SegmentOptions.Size)
}

// LoadSegment stores one (column, segment) tuple's CPU-resident data —
// spec.md §6's columnar file format, already decoded to int32 by the
// caller (the binary loader is out of scope for the core).
func (i *Instance) LoadSegment(col *catalog.Column, segmentIndex int, data []int32) error {
	return i.cache.LoadSegment(col, segmentIndex, data)
}

// LoadResidencyBitmap bulk-applies the externally-owned residency bitmap
// for one column — spec.md §6's residency input.
func (i *Instance) LoadResidencyBitmap(columnName string, residentSegments []bool) error {
	return i.catalog.LoadResidencyBitmap(columnName, residentSegments)
}

// StageToGPU copies a loaded segment into the GPU arena and marks it
// resident. Admission policy is external to the core; this is the
// mechanism a loader or test harness drives it through.
func (i *Instance) StageToGPU(col *catalog.Column, segmentIndex int) error {
	return i.cache.StageToGPU(col, segmentIndex)
}

// EvictFromGPU clears a segment's GPU residency bit. Eviction policy is
// external to the core.
func (i *Instance) EvictFromGPU(col *catalog.Column, segmentIndex int) error {
	return i.cache.EvictFromGPU(col, segmentIndex)
}

// Query runs one of the four fixed SSB queries (spec.md §6's query
// selector, 0..3) and returns its result rows in hash-table order.
func (i *Instance) Query(ctx context.Context, queryID int) ([]kernel.Row, error) {
	plan, err := queryplan.SSB(queryID)
	if err != nil {
		return nil, err
	}
	return i.orchestrator.Execute(ctx, plan)
}

// Execute runs an already-built query plan directly, bypassing the SSB
// query-id lookup — the path a caller with its own plan (rather than one
// of the four fixed query ids) uses.
func (i *Instance) Execute(ctx context.Context, plan *queryplan.Plan) ([]kernel.Row, error) {
	return i.orchestrator.Execute(ctx, plan)
}

// Close gracefully shuts down the instance, releasing the cache arena and
// catalog registry.
func (i *Instance) Close() error {
	return i.orchestrator.Close()
}
