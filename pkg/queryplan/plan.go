// Package queryplan defines the external query-plan shape the query
// orchestrator (C6) consumes: which fact table, selection predicates,
// joins, group-by slots and aggregate arithmetic one query touches.
//
// Translating a query selector (0..3) into one of these is the hard-coded
// query parser spec.md places explicitly out of scope for the core — the
// orchestrator accepts an already-built Plan rather than parsing a query id
// itself. ssb.go ships a thin reference implementation of that parser
// purely so the test suite has fixtures to exercise the core against; it is
// not part of the core's contract.
package queryplan

import "github.com/iamNilotpal/stardb/internal/kernel"

// Predicate is one conjunct of a range selection: lo <= value <= hi over a
// single named column.
type Predicate struct {
	Column string
	Lo, Hi int32
}

// GroupKeySource selects where one of the accumulator's four group-key
// slots gets its value from.
type GroupKeySource int

const (
	// GroupKeyNone leaves the slot at the literal zero spec.md describes
	// for a group-by-probe slot a query doesn't use.
	GroupKeyNone GroupKeySource = iota
	// GroupKeyJoin sources the slot from a join's resolved dimension
	// attribute payload — the group-by-fused probe variant, where the
	// join's hash table payload replaces the group key outright.
	GroupKeyJoin
)

// GroupKeySpec describes one of the four group-by accumulator key slots
// and its dense-hash addressing contribution.
type GroupKeySpec struct {
	Source    GroupKeySource
	JoinIndex int            // valid when Source == GroupKeyJoin: index into Plan.Joins.
	KeySpec   kernel.KeySpec // (Min, Stride) contribution to the dense hash for this slot.
}

// JoinDef describes one hash join the fact table participates in.
type JoinDef struct {
	FactKeyColumn      string
	DimensionTable     string
	DimensionKeyColumn string

	// DimensionFilter is applied to the dimension's own segments before its
	// hash table is built — e.g. p_category = 'MFGR#12', s_region =
	// 'AMERICA'. A dimension row surviving every predicate here is the one
	// whose key enters the hash table.
	DimensionFilter []Predicate

	// DimensionAttributeColumn, non-empty, is the dimension attribute this
	// join's hash table carries as its PayloadValue for a group-by slot (a
	// GroupKeySpec with Source == GroupKeyJoin referencing this join).
	// Empty means the join is existence-only: its hash table carries
	// PayloadOffset and no group-by slot reads it.
	DimensionAttributeColumn string
}

// AggregateDef selects the per-row aggregate arithmetic and the fact-side
// value columns it reads. V2Column is empty for the single-operand mode.
type AggregateDef struct {
	Mode     kernel.AggregateMode
	V1Column string
	V2Column string
}

// Plan is the fully-resolved, external query-plan shape the orchestrator
// consumes: the fixed parameterised query shape of spec.md §1 (selections,
// up to four joins, a group-by and an aggregate), stripped of any parsing
// concern.
type Plan struct {
	QueryID    int
	FactTable  string
	Selections []Predicate
	Joins      []JoinDef
	GroupBy    [4]GroupKeySpec
	Aggregate  AggregateDef

	// TotalVal sizes the dense-hash accumulator (spec.md §3's addressing
	// function total_val). It must be collision-free for this query's
	// actual output cardinality — spec.md §9 flags this as
	// implementation-specific and not formally derivable from the source,
	// so every ssb.go fixture picks it by hand from known SF1 cardinality
	// bounds and records the reasoning in a comment.
	TotalVal int
}
