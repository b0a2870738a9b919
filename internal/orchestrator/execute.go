package orchestrator

import (
	"context"

	"github.com/iamNilotpal/stardb/internal/kernel"
	"github.com/iamNilotpal/stardb/pkg/queryplan"
	"golang.org/x/sync/errgroup"
)

// Execute runs one query plan to completion: C5 derives the placement
// schedule, every dimension's hash table is built, every non-empty fact
// placement class runs its selection -> join -> group-by/aggregate
// pipeline (overlapped across distinct dispatcher streams per spec.md §5),
// and the group-by accumulator is enumerated into result rows once every
// class has finished — spec.md §4.5 step 5's "the orchestrator joins all
// streams before reading it."
func (o *Orchestrator) Execute(ctx context.Context, plan *queryplan.Plan) ([]kernel.Row, error) {
	if o.closed.Load() {
		return nil, ErrEngineClosed
	}

	r, err := o.resolvePlan(plan)
	if err != nil {
		return nil, err
	}

	sched := allGPUSchedule(r)
	if o.opts.Custom {
		sched, err = o.planner.Plan(r.plannerQuery)
		if err != nil {
			return nil, err
		}
	}

	tables, err := o.buildHashTables(ctx, r, sched)
	if err != nil {
		return nil, err
	}

	acc := kernel.NewAccumulator(r.plan.TotalVal)
	tileSize, workers := o.kernelParams()

	g, gctx := errgroup.WithContext(ctx)
	if o.opts.MaxStreams > 0 {
		g.SetLimit(o.opts.MaxStreams)
	}

	for _, cp := range sched.FactPlans {
		cp := cp
		segments := sched.Fact.SegmentsByClass[cp.Class]
		if len(segments) == 0 {
			continue
		}
		g.Go(func() error {
			return o.runClass(gctx, r, cp, segments, tables, acc, tileSize, workers)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := acc.Rows()
	o.log.Infow("query executed", "query", r.plan.QueryID, "groups", len(rows))
	return rows, nil
}
