package planner

import (
	"github.com/iamNilotpal/stardb/pkg/errors"
)

// New creates a Planner bound to catalog for residency lookups.
func New(config *Config) (*Planner, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config.Logger")
	}
	if config.Catalog == nil {
		return nil, errors.NewRequiredFieldError("config.Catalog")
	}

	return &Planner{
		log:      config.Logger,
		catalog:  config.Catalog,
		skipping: config.Skipping,
	}, nil
}

// Plan derives a full placement schedule for q: the groupGPUcheck and
// joinGPUcheck eligibility precomputation, the fact table's per-class
// bucketing and device schedule, and a per-table bucketing for every
// dimension the query joins against.
func (p *Planner) Plan(q *Query) (*Schedule, error) {
	if q == nil || q.FactColumn == nil {
		return nil, errors.NewPlannerError(nil, errors.ErrorCodeEmptyPlan, "query plan has no fact table reference")
	}

	totalBits := len(q.SelectionColumns) + len(q.Joins) + len(q.AggregateColumns)
	if totalBits > MaxBits {
		return nil, errors.NewPlannerError(
			nil, errors.ErrorCodeTooManyJoins, "query exceeds the six-bit placement class budget",
		).WithDetail("bits", totalBits).WithDetail("max", MaxBits)
	}

	groupGPU := p.groupGPUCheck(q)
	joinGPU := p.joinGPUCheck(q)

	factSched := p.classifyFact(q)
	factPlans := p.decideFactClasses(q, factSched, groupGPU, joinGPU)

	dims := make([]TableSchedule, len(q.Joins))
	for i, join := range q.Joins {
		dims[i] = p.classifyDimension(join)
	}

	p.log.Infow(
		"planned query",
		"table", q.FactTable, "classes", len(factPlans), "joins", len(q.Joins),
		"groupGPU", groupGPU,
	)

	return &Schedule{
		Fact:       factSched,
		FactPlans:  factPlans,
		Dimensions: dims,
		GroupGPU:   groupGPU,
		JoinGPU:    joinGPU,
	}, nil
}

// groupGPUCheck is the original's precomputed eligibility check: the
// group-by/aggregate stage is GPU-eligible only if every dimension
// attribute column the group-by reads (across every join) is fully
// resident on GPU.
func (p *Planner) groupGPUCheck(q *Query) bool {
	for _, join := range q.Joins {
		for _, col := range join.DimensionAttributeColumns {
			if !col.FullyResidentOnGPU() {
				return false
			}
		}
	}
	return true
}

// joinGPUCheck computes, per join, whether that join's dimension-side data
// (its key column) is fully resident on GPU — the other half of the
// per-class GPU eligibility rule alongside the fact-side bit.
func (p *Planner) joinGPUCheck(q *Query) []bool {
	eligible := make([]bool, len(q.Joins))
	for i, join := range q.Joins {
		eligible[i] = join.DimensionKeyColumn.FullyResidentOnGPU()
	}
	return eligible
}
