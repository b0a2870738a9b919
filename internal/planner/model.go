// Package planner implements the per-segment operator-placement planner
// (C5): from residency bitmaps alone it partitions every table's segments
// into 64 placement classes and decides, per class and per pipeline stage,
// which device executes it.
//
// A placement class packs, most-significant bit first, the residency of
// each selection column, then each join column, then each aggregate column
// a query touches — so two segments sharing a class are scheduled
// identically. Bits are packed by left-shift and bitwise-OR and read back
// with bitwise-AND masks, never the short-circuit logical AND a careless
// port of the original C++ would use: with logical AND every bit past the
// first zero collapses to the same boolean and the class index degenerates.
package planner

import (
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"go.uber.org/zap"
)

// NumClasses is the size of the placement-class space: 6 bits, one for
// each of up to six participating fact-side columns.
const NumClasses = 64

// MaxBits is the number of residency bits a query's selection, join and
// aggregate columns may consume between them.
const MaxBits = 6

// JoinSpec describes one hash join from the planner's point of view: the
// fact-side key column whose residency contributes a placement bit, the
// dimension table's key column (whose full residency gates GPU eligibility
// for the join as a whole), the dimension-side filter columns used to
// bucket that dimension's own segments, and the dimension attribute
// columns the query's group-by reads through this join (used for the
// groupGPUcheck precomputation).
type JoinSpec struct {
	FactKeyColumn             *catalog.Column
	DimensionTable            string
	DimensionKeyColumn        *catalog.Column
	DimensionFilterColumns    []*catalog.Column
	DimensionAttributeColumns []*catalog.Column
}

// Query is the planner's view of one query's column touch points: enough
// to derive placement classes without knowing anything about predicates,
// arithmetic modes or output shape.
type Query struct {
	FactTable string
	// FactColumn is any fact-table column; its TotalSegment is the fact
	// table's segment count, since every column of a table shares it.
	FactColumn        *catalog.Column
	SelectionColumns  []*catalog.Column
	Joins             []JoinSpec
	AggregateColumns  []*catalog.Column // fact-side columns the group-by/aggregate stage reads ("group-by-probe" bits).
}

// ClassPlan is the per-class, per-stage device schedule the planner emits
// for the fact table: a class's device choice is fixed for the duration of
// one pipeline execution.
type ClassPlan struct {
	Class           int
	SelectionDevice device.Device
	JoinDevices     []device.Device
	AggregateDevice device.Device
}

// TableSchedule is the per-table segment bucketing for the fact table and,
// per the four-table bucketing the original's QueryOptimizer performs, for
// every dimension table too.
type TableSchedule struct {
	Table           string
	SegmentsByClass [NumClasses][]int
	// BuildDevice is set only on dimension schedules: the single device a
	// dimension's hash table is built on, chosen by majority segment
	// residency — the resolution of the split-build ambiguity the original
	// leaves unclear.
	BuildDevice device.Device
}

// Schedule is the full per-query placement plan: the fact table's
// class-by-class pipeline schedule plus one bucketing per dimension, in
// the same order as Query.Joins.
type Schedule struct {
	Fact       TableSchedule
	FactPlans  []ClassPlan // one entry per class in class order; empty classes are included only when skipping is disabled.
	Dimensions []TableSchedule
	GroupGPU   bool   // precomputed groupGPUcheck.
	JoinGPU    []bool // precomputed joinGPUcheck, one per join.
}

// Planner derives placement schedules for queries against the current
// residency state of a catalog.
type Planner struct {
	log      *zap.SugaredLogger
	catalog  *catalog.Catalog
	skipping bool
}

// Config holds the parameters needed to initialize a Planner.
type Config struct {
	Logger   *zap.SugaredLogger
	Catalog  *catalog.Catalog
	Skipping bool // drop zero-segment classes from the emitted schedule.
}
