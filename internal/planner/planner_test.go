package planner

import (
	"testing"

	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/pkg/logger"
)

const testSegSize = 8

func newTestPlanner(t *testing.T) (*catalog.Catalog, *Planner) {
	t.Helper()

	cat, err := catalog.New(&catalog.Config{Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("catalog.New() unexpected error: %v", err)
	}
	p, err := New(&Config{Logger: logger.Nop(), Catalog: cat, Skipping: true})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return cat, p
}

func registerCol(t *testing.T, cat *catalog.Catalog, name, table string, totalTuples int) *catalog.Column {
	t.Helper()
	col, err := cat.RegisterColumn(catalog.ColumnSpec{Name: name, Table: table, TotalTuples: totalTuples}, testSegSize)
	if err != nil {
		t.Fatalf("RegisterColumn(%s) unexpected error: %v", name, err)
	}
	return col
}

// TestPlanClassesPartitionAllSegments is property S5: the sum of
// segment counts across every class equals the fact table's total_segment.
func TestPlanClassesPartitionAllSegments(t *testing.T) {
	cat, p := newTestPlanner(t)

	discount := registerCol(t, cat, "lo_discount", "lineorder", testSegSize*20)
	quantity := registerCol(t, cat, "lo_quantity", "lineorder", testSegSize*20)
	orderdate := registerCol(t, cat, "lo_orderdate", "lineorder", testSegSize*20)
	datekey := registerCol(t, cat, "d_datekey", "date", testSegSize*4)

	// Checkerboard residency across a couple of columns so more than one
	// class is populated.
	for s := 0; s < discount.TotalSegment; s++ {
		if s%2 == 0 {
			_ = cat.SetResident("lo_discount", s, true)
		}
		if s%3 == 0 {
			_ = cat.SetResident("lo_orderdate", s, true)
		}
	}

	q := &Query{
		FactTable:        "lineorder",
		FactColumn:       discount,
		SelectionColumns: []*catalog.Column{discount, quantity},
		Joins: []JoinSpec{
			{FactKeyColumn: orderdate, DimensionTable: "date", DimensionKeyColumn: datekey},
		},
	}

	sched, err := p.Plan(q)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	total := 0
	for c := 0; c < NumClasses; c++ {
		total += len(sched.Fact.SegmentsByClass[c])
	}
	if total != discount.TotalSegment {
		t.Errorf("sum of class segment counts = %d, want %d", total, discount.TotalSegment)
	}
}

func TestPlanSkippingDropsEmptyClasses(t *testing.T) {
	cat, p := newTestPlanner(t)

	discount := registerCol(t, cat, "lo_discount2", "lineorder", testSegSize*4)

	q := &Query{
		FactTable:        "lineorder",
		FactColumn:       discount,
		SelectionColumns: []*catalog.Column{discount},
	}

	sched, err := p.Plan(q)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}

	// No segment is resident, so every segment lands in class 0: only one
	// non-empty class should survive skipping.
	if len(sched.FactPlans) != 1 {
		t.Fatalf("len(FactPlans) = %d, want 1 with skipping enabled and uniform residency", len(sched.FactPlans))
	}
	if sched.FactPlans[0].Class != 0 {
		t.Errorf("only surviving class = %d, want 0", sched.FactPlans[0].Class)
	}
}

func TestPlanTooManyBitsRejected(t *testing.T) {
	cat, p := newTestPlanner(t)

	cols := make([]*catalog.Column, 7)
	for i := range cols {
		cols[i] = registerCol(t, cat, string(rune('a'+i))+"_col", "lineorder", testSegSize)
	}

	q := &Query{FactTable: "lineorder", FactColumn: cols[0], SelectionColumns: cols}
	if _, err := p.Plan(q); err == nil {
		t.Fatal("Plan() with 7 bits expected error, got nil")
	}
}

func TestJoinGPUCheckReflectsDimensionResidency(t *testing.T) {
	cat, p := newTestPlanner(t)

	orderdate := registerCol(t, cat, "lo_orderdate3", "lineorder", testSegSize*4)
	datekey := registerCol(t, cat, "d_datekey3", "date", testSegSize*2)

	for s := 0; s < datekey.TotalSegment; s++ {
		if err := cat.SetResident("d_datekey3", s, true); err != nil {
			t.Fatalf("SetResident unexpected error: %v", err)
		}
	}

	q := &Query{
		FactTable:  "lineorder",
		FactColumn: orderdate,
		Joins: []JoinSpec{
			{FactKeyColumn: orderdate, DimensionTable: "date", DimensionKeyColumn: datekey},
		},
	}

	sched, err := p.Plan(q)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}
	if len(sched.JoinGPU) != 1 || !sched.JoinGPU[0] {
		t.Errorf("JoinGPU = %v, want [true] since the dimension is fully resident", sched.JoinGPU)
	}
}

func TestClassifyDimensionPicksMajorityDevice(t *testing.T) {
	cat, _ := newTestPlanner(t)
	datekey := registerCol(t, cat, "d_datekey4", "date", testSegSize*4)

	for s := 0; s < 3; s++ {
		if err := cat.SetResident("d_datekey4", s, true); err != nil {
			t.Fatalf("SetResident unexpected error: %v", err)
		}
	}

	p := &Planner{log: logger.Nop(), catalog: cat}
	sched := p.classifyDimension(JoinSpec{DimensionTable: "date", DimensionKeyColumn: datekey})
	if sched.BuildDevice != device.GPU {
		t.Errorf("BuildDevice = %v, want GPU with 3/4 segments resident", sched.BuildDevice)
	}
}
