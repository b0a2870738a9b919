package orchestrator

import (
	"context"
	"runtime"

	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/internal/kernel"
	"github.com/iamNilotpal/stardb/internal/planner"
	"github.com/iamNilotpal/stardb/pkg/queryplan"
	"golang.org/x/sync/errgroup"
)

// kernelParams returns the tile size operator kernels process one
// invocation at a time, and the host-side tile worker pool width.
func (o *Orchestrator) kernelParams() (tileSize, workers int) {
	return o.opts.SegmentOptions.TileSize(), runtime.GOMAXPROCS(0)
}

// buildHashTables populates one hash table per join, each built over its
// own dimension-side filtered segments on the single device §9 resolves a
// split-build dimension to (majority segment residency). Dimension builds
// run concurrently, one per join, since they are independent of one
// another.
func (o *Orchestrator) buildHashTables(
	ctx context.Context, r *resolvedPlan, sched *planner.Schedule,
) ([]*kernel.HashTable, error) {
	tables := make([]*kernel.HashTable, len(r.joins))
	if len(r.joins) == 0 {
		return tables, nil
	}

	tileSize, workers := o.kernelParams()

	g, gctx := errgroup.WithContext(ctx)
	for i, join := range r.joins {
		i, join := i, join
		dimSched := sched.Dimensions[i]

		g.Go(func() error {
			return o.dispatcher.RunOnStream(gctx, dimSched.BuildDevice, func() error {
				table, err := o.buildOneHashTable(gctx, join, dimSched.BuildDevice, tileSize, workers)
				if err != nil {
					return err
				}
				tables[i] = table
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// buildOneHashTable applies join's dimension-side filter (if any) and
// builds the hash table from the surviving rows. num_slots is the larger of
// the dimension's row count and its key span (max - min + 1): dimensions
// carry a one-row-per-key invariant (spec.md §3's "dimensions may not
// contain key zero" / duplicate-key rejection), so total_tuples bounds the
// distinct keys, and covering the key span keeps (k - min) mod num_slots
// distinct for every key in [min, max].
func (o *Orchestrator) buildOneHashTable(
	ctx context.Context, join resolvedJoin, dev device.Device, tileSize, workers int,
) (*kernel.HashTable, error) {
	col := join.dimensionKeyColumn

	allSegs := make([]int, col.TotalSegment)
	for s := range allSegs {
		allSegs[s] = s
	}
	src := kernel.NewSegmentGroupSource(allSegs, col, o.cache.SegmentSize())

	var buildSrc kernel.RowSource = src
	if len(join.dimensionFilter) > 0 {
		filtered := device.NewOffsetStream(dev, src.Len())
		if err := kernel.Selection(ctx, src, join.dimensionFilter, o.cache, dev, filtered, tileSize, workers); err != nil {
			return nil, err
		}
		buildSrc = kernel.NewOffsetStreamSource(filtered.Slice())
	}

	mode := kernel.PayloadOffset
	if join.dimensionAttributeColumn != nil {
		mode = kernel.PayloadValue
	}

	numSlots := col.TotalTuples
	if span := int(col.Max) - int(col.Min) + 1; span > numSlots {
		numSlots = span
	}
	if numSlots <= 0 {
		numSlots = 1
	}
	table := kernel.NewHashTable(numSlots, col.Min, mode)

	if err := kernel.BuildHashTable(
		ctx, table, join.dimensionTable, buildSrc, col, join.dimensionAttributeColumn, o.cache, dev, tileSize, workers,
	); err != nil {
		return nil, err
	}
	return table, nil
}

// joinDeviceFor collapses a class's per-join device decisions into the single
// device the fused probe kernel runs on: GPU only when every join in this
// class is GPU-eligible, since ProbeJoins fuses all joins into one launch
// and cannot split devices mid-kernel. This is the conservative resolution
// of spec.md §4.4's per-join GPU rule against a genuinely fused kernel.
func joinDeviceFor(devices []device.Device) device.Device {
	if len(devices) == 0 {
		return device.CPU
	}
	for _, d := range devices {
		if d != device.GPU {
			return device.CPU
		}
	}
	return device.GPU
}

// runClass executes one placement class's full pipeline — selection, the
// fused join probe, group-by/aggregate — binding the whole pipeline to one
// dispatcher stream, as spec.md §5 requires ("a class pipeline binds to one
// stream").
func (o *Orchestrator) runClass(
	ctx context.Context,
	r *resolvedPlan,
	cp planner.ClassPlan,
	segments []int,
	tables []*kernel.HashTable,
	acc *kernel.Accumulator,
	tileSize, workers int,
) error {
	return o.dispatcher.RunOnStream(ctx, cp.SelectionDevice, func() error {
		capacity := len(segments) * o.cache.SegmentSize()

		src0 := kernel.NewSegmentGroupSource(segments, r.factColumn, o.cache.SegmentSize())
		stage0 := device.NewOffsetStream(cp.SelectionDevice, capacity)
		if err := kernel.Selection(ctx, src0, r.selections, o.cache, cp.SelectionDevice, stage0, tileSize, workers); err != nil {
			return err
		}
		if err := kernel.ValidateOffsetBounds(segments, o.cache.SegmentSize(), stage0); err != nil {
			return err
		}
		if stage0.Len() == 0 {
			return nil
		}

		survivors, joinOut, err := o.probeStage(ctx, r, cp, stage0, tables, tileSize, workers)
		if err != nil {
			return err
		}
		if survivors.Len() == 0 {
			return nil
		}

		return o.aggregateStage(ctx, r, cp, survivors, joinOut, acc, tileSize, workers)
	})
}

// probeStage runs the fused multi-join probe (or passes stage0 through
// untouched when the query has no joins at all).
func (o *Orchestrator) probeStage(
	ctx context.Context,
	r *resolvedPlan,
	cp planner.ClassPlan,
	stage0 *device.OffsetStream,
	tables []*kernel.HashTable,
	tileSize, workers int,
) (*device.OffsetStream, []*device.OffsetStream, error) {
	if len(r.joins) == 0 {
		return stage0, nil, nil
	}

	dev := joinDeviceFor(cp.JoinDevices)
	switched, err := o.dispatcher.SwitchDevice(ctx, stage0, dev)
	if err != nil {
		return nil, nil, err
	}

	joinSpecs := make([]kernel.JoinSpec, len(r.joins))
	for i, j := range r.joins {
		joinSpecs[i] = kernel.JoinSpec{FactKeyColumn: j.factKeyColumn, Table: tables[i]}
	}

	survivors := device.NewOffsetStream(dev, switched.Len())
	joinOut := make([]*device.OffsetStream, len(r.joins))
	for i := range joinOut {
		joinOut[i] = device.NewOffsetStream(dev, switched.Len())
	}

	probeSrc := kernel.NewOffsetStreamSource(switched.Slice())
	if err := kernel.ProbeJoins(ctx, probeSrc, joinSpecs, o.cache, dev, survivors, joinOut, tileSize, workers); err != nil {
		return nil, nil, err
	}
	return survivors, joinOut, nil
}

// aggregateStage assembles the group-by key streams (literal-zero slices
// for unused slots) and folds every surviving row into acc.
func (o *Orchestrator) aggregateStage(
	ctx context.Context,
	r *resolvedPlan,
	cp planner.ClassPlan,
	survivors *device.OffsetStream,
	joinOut []*device.OffsetStream,
	acc *kernel.Accumulator,
	tileSize, workers int,
) error {
	switched, err := o.dispatcher.SwitchDevice(ctx, survivors, cp.AggregateDevice)
	if err != nil {
		return err
	}

	groupKeyStreams := make([][]int32, 4)
	for k := 0; k < 4; k++ {
		gk := r.groupBy[k]
		if gk.source != queryplan.GroupKeyJoin {
			groupKeyStreams[k] = make([]int32, switched.Len())
			continue
		}
		stream, err := o.dispatcher.SwitchDevice(ctx, joinOut[gk.joinIndex], cp.AggregateDevice)
		if err != nil {
			return err
		}
		groupKeyStreams[k] = stream.Slice()
	}

	src := kernel.NewOffsetStreamSource(switched.Slice())
	return kernel.GroupByAndAggregate(
		ctx, src, groupKeyStreams, o.cache, cp.AggregateDevice, r.aggregate, r.groupBySpec, acc, tileSize, workers,
	)
}

// allGPUSchedule builds the baseline schedule used when options.Custom is
// disabled (spec.md §6: "fall back to an all-GPU baseline"): every segment
// of every table lands in a single class, every stage forced to GPU. This
// bypasses the placement planner entirely rather than asking it to emit a
// schedule it wasn't designed to produce.
func allGPUSchedule(r *resolvedPlan) *planner.Schedule {
	factTotal := r.factColumn.TotalSegment
	factSched := planner.TableSchedule{Table: r.plan.FactTable}
	factSched.SegmentsByClass[0] = segmentsRange(factTotal)

	dims := make([]planner.TableSchedule, len(r.joins))
	for i, j := range r.joins {
		dims[i] = planner.TableSchedule{Table: j.dimensionTable, BuildDevice: device.GPU}
		dims[i].SegmentsByClass[0] = segmentsRange(j.dimensionKeyColumn.TotalSegment)
	}

	joinGPU := make([]bool, len(r.joins))
	joinDevices := make([]device.Device, len(r.joins))
	for i := range joinGPU {
		joinGPU[i] = true
		joinDevices[i] = device.GPU
	}

	return &planner.Schedule{
		Fact:       factSched,
		FactPlans:  []planner.ClassPlan{{Class: 0, SelectionDevice: device.GPU, JoinDevices: joinDevices, AggregateDevice: device.GPU}},
		Dimensions: dims,
		GroupGPU:   true,
		JoinGPU:    joinGPU,
	}
}

func segmentsRange(n int) []int {
	segs := make([]int, n)
	for i := range segs {
		segs[i] = i
	}
	return segs
}
