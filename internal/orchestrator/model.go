// Package orchestrator implements the query orchestrator (C6): given a
// queryplan.Plan it asks the placement planner (C5) for a schedule, builds
// every dimension's hash table (itself split CPU/GPU at segment
// granularity per spec.md §4.5 step 3), runs the fact table's per-class
// selection -> join(s) -> group-by/aggregate pipeline via the device
// dispatcher (C4), and reduces the group-by accumulator into the final
// result rows.
//
// Per-query mutable state (hash tables, offset streams, the accumulator)
// lives in the call stack of one Execute invocation rather than as
// orchestrator fields — spec.md §9's guidance to treat the original's
// per-query globals as a context created at entry and released at exit.
package orchestrator

import (
	"sync/atomic"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/internal/planner"
	"github.com/iamNilotpal/stardb/pkg/options"
	"go.uber.org/zap"
)

// Orchestrator wires the catalog, cache, planner and device dispatcher
// together and drives one query at a time through Execute.
type Orchestrator struct {
	log        *zap.SugaredLogger
	opts       *options.Options
	catalog    *catalog.Catalog
	cache      *cache.Cache
	planner    *planner.Planner
	dispatcher *device.Dispatcher
	closed     atomic.Bool
}

// Config holds the parameters needed to initialize an Orchestrator.
type Config struct {
	Logger     *zap.SugaredLogger
	Options    *options.Options
	Catalog    *catalog.Catalog
	Cache      *cache.Cache
	Planner    *planner.Planner
	Dispatcher *device.Dispatcher
}
