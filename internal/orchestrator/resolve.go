package orchestrator

import (
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/kernel"
	"github.com/iamNilotpal/stardb/internal/planner"
	"github.com/iamNilotpal/stardb/pkg/errors"
	"github.com/iamNilotpal/stardb/pkg/queryplan"
)

// resolvedJoin is one join with every column name resolved against the
// catalog, ready to drive hash-table build and probe.
type resolvedJoin struct {
	factKeyColumn            *catalog.Column
	dimensionTable           string
	dimensionKeyColumn       *catalog.Column
	dimensionFilter          []kernel.Range
	dimensionAttributeColumn *catalog.Column // nil: existence-only join.
}

// resolvedGroupKey is one of the four accumulator key slots, with its
// source kept as the queryplan enum (only GroupKeyJoin needs the index).
type resolvedGroupKey struct {
	source    queryplan.GroupKeySource
	joinIndex int
}

// resolvedPlan is a queryplan.Plan with every column name looked up once,
// so the pipeline never re-resolves a name mid-query.
type resolvedPlan struct {
	plan         *queryplan.Plan
	plannerQuery *planner.Query
	factColumn   *catalog.Column
	selections   []kernel.Range
	joins        []resolvedJoin
	groupBy      [4]resolvedGroupKey
	groupBySpec  kernel.GroupBySpec
	aggregate    kernel.AggregateSpec
}

// resolvePlan looks up every column name in plan against the catalog and
// assembles both the pipeline's own resolved view and the planner.Query
// C5 needs to derive placement classes.
func (o *Orchestrator) resolvePlan(plan *queryplan.Plan) (*resolvedPlan, error) {
	if plan.FactTable == "" {
		return nil, errors.NewPlannerError(nil, errors.ErrorCodeEmptyPlan, "plan has no fact table").
			WithQueryID(plan.QueryID)
	}

	selections, selCols, err := o.resolveRanges(plan.Selections)
	if err != nil {
		return nil, err
	}

	var factColumn *catalog.Column
	if len(selCols) > 0 {
		factColumn = selCols[0]
	}

	joins := make([]resolvedJoin, len(plan.Joins))
	plannerJoins := make([]planner.JoinSpec, len(plan.Joins))
	for i, j := range plan.Joins {
		factKey, err := o.catalog.Column(j.FactKeyColumn)
		if err != nil {
			return nil, err
		}
		if factColumn == nil {
			factColumn = factKey
		}

		dimKey, err := o.catalog.Column(j.DimensionKeyColumn)
		if err != nil {
			return nil, err
		}

		dimFilter, filterCols, err := o.resolveRanges(j.DimensionFilter)
		if err != nil {
			return nil, err
		}

		var attrCol *catalog.Column
		var attrCols []*catalog.Column
		if j.DimensionAttributeColumn != "" {
			attrCol, err = o.catalog.Column(j.DimensionAttributeColumn)
			if err != nil {
				return nil, err
			}
			attrCols = []*catalog.Column{attrCol}
		}

		joins[i] = resolvedJoin{
			factKeyColumn:            factKey,
			dimensionTable:           j.DimensionTable,
			dimensionKeyColumn:       dimKey,
			dimensionFilter:          dimFilter,
			dimensionAttributeColumn: attrCol,
		}
		plannerJoins[i] = planner.JoinSpec{
			FactKeyColumn:             factKey,
			DimensionTable:            j.DimensionTable,
			DimensionKeyColumn:        dimKey,
			DimensionFilterColumns:    filterCols,
			DimensionAttributeColumns: attrCols,
		}
	}

	v1, err := o.catalog.Column(plan.Aggregate.V1Column)
	if err != nil {
		return nil, err
	}
	var v2 *catalog.Column
	if plan.Aggregate.V2Column != "" {
		v2, err = o.catalog.Column(plan.Aggregate.V2Column)
		if err != nil {
			return nil, err
		}
	}
	if factColumn == nil {
		factColumn = v1
	}

	aggColumns := []*catalog.Column{v1}
	if v2 != nil {
		aggColumns = append(aggColumns, v2)
	}

	var groupBy [4]resolvedGroupKey
	var keySpecs [4]kernel.KeySpec
	for k := 0; k < 4; k++ {
		gk := plan.GroupBy[k]
		groupBy[k] = resolvedGroupKey{source: gk.Source, joinIndex: gk.JoinIndex}
		keySpecs[k] = gk.KeySpec
	}

	return &resolvedPlan{
		plan: plan,
		plannerQuery: &planner.Query{
			FactTable:        plan.FactTable,
			FactColumn:       factColumn,
			SelectionColumns: selCols,
			Joins:            plannerJoins,
			AggregateColumns: aggColumns,
		},
		factColumn:  factColumn,
		selections:  selections,
		joins:       joins,
		groupBy:     groupBy,
		groupBySpec: kernel.GroupBySpec{KeySpecs: keySpecs, TotalVal: plan.TotalVal},
		aggregate:   kernel.AggregateSpec{Mode: plan.Aggregate.Mode, V1Column: v1, V2Column: v2},
	}, nil
}

// resolveRanges looks up every predicate's column name, returning both the
// kernel.Range values and the parallel slice of resolved columns (the
// latter is what planner.Query needs for placement-class bit derivation).
func (o *Orchestrator) resolveRanges(preds []queryplan.Predicate) ([]kernel.Range, []*catalog.Column, error) {
	if len(preds) == 0 {
		return nil, nil, nil
	}
	ranges := make([]kernel.Range, len(preds))
	cols := make([]*catalog.Column, len(preds))
	for i, p := range preds {
		col, err := o.catalog.Column(p.Column)
		if err != nil {
			return nil, nil, err
		}
		ranges[i] = kernel.Range{Column: col, Lo: p.Lo, Hi: p.Hi}
		cols[i] = col
	}
	return ranges, cols, nil
}
