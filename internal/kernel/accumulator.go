package kernel

import (
	"sync/atomic"

	"github.com/iamNilotpal/stardb/pkg/errors"
)

// AggregateMode selects the per-row arithmetic the aggregate operator
// folds into the running sum.
type AggregateMode int

const (
	ModeV1         AggregateMode = iota // v1
	ModeV1MinusV2                       // v1 - v2
	ModeV1TimesV2                       // v1 * v2
)

// ComputeValue evaluates one row's contribution to the running sum.
func ComputeValue(mode AggregateMode, v1, v2 int32) int64 {
	switch mode {
	case ModeV1MinusV2:
		return int64(v1) - int64(v2)
	case ModeV1TimesV2:
		return int64(v1) * int64(v2)
	default:
		return int64(v1)
	}
}

// KeySpec is one group-by key column's contribution to the dense hash:
// (key - Min) * Stride.
type KeySpec struct {
	Min    int32
	Stride int32
}

// DenseHash computes the group-by accumulator's addressing function. The
// strides and totalVal must be chosen so distinct key tuples map to
// distinct rows for the query's actual output cardinality — that choice is
// the caller's responsibility (the orchestrator selects it per query from
// dimension metadata).
func DenseHash(keys [4]int32, specs [4]KeySpec, totalVal int) int {
	h := 0
	for i, k := range keys {
		h += int(k-specs[i].Min) * int(specs[i].Stride)
	}
	h %= totalVal
	if h < 0 {
		h += totalVal
	}
	return h
}

// Row is one non-empty group-by accumulator entry.
type Row struct {
	Keys [4]int32
	Sum  int64
}

// Accumulator is the group-by accumulator: G rows of four group keys plus
// a 64-bit running sum, addressed by DenseHash. It is written concurrently
// by every class via atomic add on the sum column; key columns are written
// idempotently since every writer that reaches a given row computes the
// same key tuple by construction.
type Accumulator struct {
	totalVal int
	written  []atomic.Bool
	keys     [][4]int32
	sums     []atomic.Int64
}

// NewAccumulator allocates an accumulator with totalVal rows, all initially
// empty.
func NewAccumulator(totalVal int) *Accumulator {
	return &Accumulator{
		totalVal: totalVal,
		written:  make([]atomic.Bool, totalVal),
		keys:     make([][4]int32, totalVal),
		sums:     make([]atomic.Int64, totalVal),
	}
}

// Add folds value into row h's running sum, writing keys on first touch.
func (a *Accumulator) Add(h int, keys [4]int32, value int64) error {
	if h < 0 || h >= a.totalVal {
		return errors.NewKernelError(
			nil, errors.ErrorCodeGroupByOverflow, "group-by hash out of accumulator range",
		).WithCount(h).WithLimit(a.totalVal)
	}
	if a.written[h].CompareAndSwap(false, true) {
		a.keys[h] = keys
	}
	a.sums[h].Add(value)
	return nil
}

// Rows enumerates the non-empty accumulator rows, in accumulator order —
// the order the external result contract specifies.
func (a *Accumulator) Rows() []Row {
	var rows []Row
	for h := 0; h < a.totalVal; h++ {
		if !a.written[h].Load() {
			continue
		}
		rows = append(rows, Row{Keys: a.keys[h], Sum: a.sums[h].Load()})
	}
	return rows
}
