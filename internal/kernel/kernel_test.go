package kernel

import (
	"context"
	"testing"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/pkg/logger"
)

const testSegSize = 4

func newTestRig(t *testing.T) (*catalog.Catalog, *cache.Cache) {
	t.Helper()

	cat, err := catalog.New(&catalog.Config{Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("catalog.New() unexpected error: %v", err)
	}
	c, err := cache.New(&cache.Config{Logger: logger.Nop(), Catalog: cat, SegmentSize: testSegSize, TileSize: testSegSize})
	if err != nil {
		t.Fatalf("cache.New() unexpected error: %v", err)
	}
	return cat, c
}

func loadColumn(t *testing.T, cat *catalog.Catalog, c *cache.Cache, name, table string, values []int32, min, max int32) *catalog.Column {
	t.Helper()

	col, err := cat.RegisterColumn(catalog.ColumnSpec{
		Name: name, Table: table, TotalTuples: len(values), Min: min, Max: max,
	}, testSegSize)
	if err != nil {
		t.Fatalf("RegisterColumn(%s) unexpected error: %v", name, err)
	}

	for seg := 0; seg*testSegSize < len(values); seg++ {
		lo := seg * testSegSize
		hi := lo + testSegSize
		if hi > len(values) {
			hi = len(values)
		}
		seg4 := make([]int32, testSegSize)
		copy(seg4, values[lo:hi])
		if err := c.LoadSegment(col, seg, seg4); err != nil {
			t.Fatalf("LoadSegment(%s, %d) unexpected error: %v", name, seg, err)
		}
	}
	return col
}

func TestSelectionEmitsMatchingOffsets(t *testing.T) {
	cat, c := newTestRig(t)
	quantity := loadColumn(t, cat, c, "lo_quantity", "lineorder", []int32{1, 30, 10, 24, 25, 2}, 1, 30)

	src := NewSegmentGroupSource([]int{0, 1}, quantity, testSegSize)
	out := device.NewOffsetStream(device.CPU, src.Len())

	err := Selection(
		context.Background(), src,
		[]Range{{Column: quantity, Lo: 1, Hi: 24}},
		c, device.CPU, out, 2, 2,
	)
	if err != nil {
		t.Fatalf("Selection() unexpected error: %v", err)
	}

	got := map[int32]bool{}
	for _, o := range out.Slice() {
		got[o] = true
	}
	want := map[int32]bool{0: true, 2: true, 3: true, 5: true}
	if len(got) != len(want) {
		t.Fatalf("Selection() emitted %v offsets, want %v", got, want)
	}
	for o := range want {
		if !got[o] {
			t.Errorf("Selection() missing expected offset %d in %v", o, got)
		}
	}
}

func TestHashBuildAndProbeRoundTrip(t *testing.T) {
	cat, c := newTestRig(t)
	dimKey := loadColumn(t, cat, c, "d_datekey", "date", []int32{19920101, 19920102, 19920103, 19920104}, 19920101, 19920104)
	dimYear := loadColumn(t, cat, c, "d_year", "date", []int32{1992, 1992, 1992, 1992}, 1992, 1992)

	dimSrc := NewSegmentGroupSource([]int{0}, dimKey, testSegSize)
	table := NewHashTable(8, 19920101, PayloadValue)
	if err := BuildHashTable(context.Background(), table, "date", dimSrc, dimKey, dimYear, c, device.CPU, 4, 1); err != nil {
		t.Fatalf("BuildHashTable() unexpected error: %v", err)
	}

	// S6: for every key k present in the dimension, probing k returns a
	// payload derived from that exact row.
	for i, key := range []int32{19920101, 19920102, 19920103, 19920104} {
		payload, found := table.Probe(key)
		if !found {
			t.Errorf("Probe(%d) not found, want found", key)
			continue
		}
		if payload != 1992 {
			t.Errorf("Probe(%d) payload = %d, want 1992 (row %d)", key, payload, i)
		}
	}

	if _, found := table.Probe(20000101); found {
		t.Error("Probe() of absent key unexpectedly found")
	}
}

func TestHashBuildRejectsDuplicateKey(t *testing.T) {
	cat, c := newTestRig(t)
	dimKey := loadColumn(t, cat, c, "d_datekey_dup", "date", []int32{1, 1, 2, 3}, 1, 3)

	dimSrc := NewSegmentGroupSource([]int{0}, dimKey, testSegSize)
	table := NewHashTable(8, 1, PayloadOffset)
	err := BuildHashTable(context.Background(), table, "date", dimSrc, dimKey, nil, c, device.CPU, 4, 1)
	if err == nil {
		t.Fatal("BuildHashTable() with duplicate key expected error, got nil")
	}
}

func TestProbeJoinsDiscardsNonMatchingRows(t *testing.T) {
	cat, c := newTestRig(t)
	factKey := loadColumn(t, cat, c, "lo_orderdate", "lineorder", []int32{19920101, 19920105, 19920102}, 19920101, 19920105)

	dimKey := loadColumn(t, cat, c, "d_datekey2", "date", []int32{19920101, 19920102}, 19920101, 19920102)
	dimSrc := NewSegmentGroupSource([]int{0}, dimKey, testSegSize)
	table := NewHashTable(4, 19920101, PayloadOffset)
	if err := BuildHashTable(context.Background(), table, "date", NewSegmentGroupSource([]int{0}, dimKey, testSegSize), dimKey, nil, c, device.CPU, 4, 1); err != nil {
		t.Fatalf("BuildHashTable() unexpected error: %v", err)
	}
	_ = dimSrc

	factSrc := NewSegmentGroupSource([]int{0}, factKey, testSegSize)
	survivors := device.NewOffsetStream(device.CPU, factSrc.Len())
	joinOut := []*device.OffsetStream{device.NewOffsetStream(device.CPU, factSrc.Len())}

	err := ProbeJoins(
		context.Background(), factSrc,
		[]JoinSpec{{FactKeyColumn: factKey, Table: table}},
		c, device.CPU, survivors, joinOut, 4, 1,
	)
	if err != nil {
		t.Fatalf("ProbeJoins() unexpected error: %v", err)
	}

	if survivors.Len() != 2 {
		t.Fatalf("ProbeJoins() survivors = %d, want 2 (row with 19920105 has no dimension match)", survivors.Len())
	}
}

func TestGroupByAndAggregateSumsByKey(t *testing.T) {
	cat, c := newTestRig(t)
	revenue := loadColumn(t, cat, c, "lo_revenue", "lineorder", []int32{10, 20, 30, 40}, 0, 1000)

	src := NewOffsetStreamSource([]int32{0, 1, 2, 3})
	groupKeys := [][]int32{{1, 1, 2, 2}} // two groups: key 1 and key 2.

	acc := NewAccumulator(4)
	gb := GroupBySpec{KeySpecs: [4]KeySpec{{Min: 1, Stride: 1}}, TotalVal: 4}
	agg := AggregateSpec{Mode: ModeV1, V1Column: revenue}

	err := GroupByAndAggregate(context.Background(), src, groupKeys, c, device.CPU, agg, gb, acc, 4, 1)
	if err != nil {
		t.Fatalf("GroupByAndAggregate() unexpected error: %v", err)
	}

	sums := map[int32]int64{}
	for _, row := range acc.Rows() {
		sums[row.Keys[0]] = row.Sum
	}
	if sums[1] != 30 {
		t.Errorf("sum for key 1 = %d, want 30", sums[1])
	}
	if sums[2] != 70 {
		t.Errorf("sum for key 2 = %d, want 70", sums[2])
	}
}

func TestDenseHashDistinctForDistinctKeys(t *testing.T) {
	specs := [4]KeySpec{{Min: 0, Stride: 100}, {Min: 0, Stride: 10}, {Min: 0, Stride: 1}, {Min: 0, Stride: 0}}
	seen := map[int]bool{}
	for a := int32(0); a < 3; a++ {
		for b := int32(0); b < 3; b++ {
			for cc := int32(0); cc < 3; cc++ {
				h := DenseHash([4]int32{a, b, cc, 0}, specs, 1000)
				if seen[h] {
					t.Fatalf("DenseHash collision at keys (%d,%d,%d)", a, b, cc)
				}
				seen[h] = true
			}
		}
	}
}
