package planner

import (
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
)

// classBits packs one segment's placement class: each column contributes
// one bit, most significant first in declaration order, via bitwise-OR of
// a left-shifted residency bit. Bitwise, never the logical && a careless
// port of the original would reach for — logical && on two already-boolean
// operands degenerates every bit past the first zero to the same value.
func classBits(seg int, cols []*catalog.Column) int {
	bits := 0
	for _, col := range cols {
		bits <<= 1
		if col.IsResident(seg) {
			bits |= 1
		}
	}
	return bits
}

// classForFactSegment builds the full (up to six-bit) class for a fact segment:
// selection bits, then join bits, then aggregate bits, packed MSB to LSB
// in that order.
func classForFactSegment(seg int, q *Query) int {
	bits := classBits(seg, q.SelectionColumns)

	joinCols := make([]*catalog.Column, len(q.Joins))
	for i, j := range q.Joins {
		joinCols[i] = j.FactKeyColumn
	}
	bits = bits<<len(joinCols) | classBits(seg, joinCols)
	bits = bits<<len(q.AggregateColumns) | classBits(seg, q.AggregateColumns)
	return bits
}

// classifyFact buckets every fact segment into its placement class.
func (p *Planner) classifyFact(q *Query) TableSchedule {
	sched := TableSchedule{Table: q.FactTable}
	for seg := 0; seg < q.FactColumn.TotalSegment; seg++ {
		c := classForFactSegment(seg, q)
		sched.SegmentsByClass[c] = append(sched.SegmentsByClass[c], seg)
	}
	return sched
}

// classifyDimension buckets a dimension's segments by its own filter
// columns' residency, and picks the single device its hash table build
// runs on — majority segment residency, per spec.md §9's resolution of the
// split-build ambiguity.
func (p *Planner) classifyDimension(join JoinSpec) TableSchedule {
	sched := TableSchedule{Table: join.DimensionTable}
	total := join.DimensionKeyColumn.TotalSegment

	for seg := 0; seg < total; seg++ {
		c := classBits(seg, join.DimensionFilterColumns)
		sched.SegmentsByClass[c] = append(sched.SegmentsByClass[c], seg)
	}

	if join.DimensionKeyColumn.TotSegInGPU()*2 >= total {
		sched.BuildDevice = device.GPU
	} else {
		sched.BuildDevice = device.CPU
	}
	return sched
}

// decideFactClasses walks every class with at least one segment (or every
// class when skipping is disabled) and decides, per stage, which device
// runs it: a stage is GPU-eligible only if its dimension-side precondition
// holds (joinGPU[i] / groupGPU) and every fact-side bit for that stage is
// set in the class.
func (p *Planner) decideFactClasses(q *Query, sched TableSchedule, groupGPU bool, joinGPU []bool) []ClassPlan {
	var plans []ClassPlan

	for c := 0; c < NumClasses; c++ {
		if len(sched.SegmentsByClass[c]) == 0 {
			if p.skipping {
				continue
			}
		}

		remaining := c
		aggBits, aggN := extractBits(remaining, len(q.AggregateColumns))
		remaining >>= aggN
		joinBits, joinN := extractBits(remaining, len(q.Joins))
		remaining >>= joinN
		selBits, _ := extractBits(remaining, len(q.SelectionColumns))

		plan := ClassPlan{Class: c}

		if allSet(selBits, len(q.SelectionColumns)) {
			plan.SelectionDevice = device.GPU
		} else {
			plan.SelectionDevice = device.CPU
		}

		plan.JoinDevices = make([]device.Device, len(q.Joins))
		for i := range q.Joins {
			bit := (joinBits >> (len(q.Joins) - i - 1)) & 1
			if bit == 1 && joinGPU[i] {
				plan.JoinDevices[i] = device.GPU
			} else {
				plan.JoinDevices[i] = device.CPU
			}
		}

		if allSet(aggBits, len(q.AggregateColumns)) && groupGPU {
			plan.AggregateDevice = device.GPU
		} else {
			plan.AggregateDevice = device.CPU
		}

		plans = append(plans, plan)
	}

	return plans
}

// extractBits returns the low n bits of v and n, the region width, so a
// caller can shift the remainder past them.
func extractBits(v, n int) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	mask := (1 << n) - 1
	return v & mask, n
}

// allSet reports whether every one of the low n bits of bits is 1 — the
// per-stage fact-side eligibility condition.
func allSet(bits, n int) bool {
	if n == 0 {
		return true
	}
	return bits == (1<<n)-1
}
