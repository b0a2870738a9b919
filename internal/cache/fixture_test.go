package cache

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/pkg/filesys"
)

// encodeColumnFile packs values as the flat little-endian int32 binary
// format pkg/filesys's doc comment describes — the format an external
// loader would produce in a real deployment.
func encodeColumnFile(values []int32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf
}

func decodeColumnFile(data []byte) []int32 {
	values := make([]int32, len(data)/4)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return values
}

// TestFixtureRoundTripThroughFilesys writes a synthetic column file with
// filesys, reads it back, decodes it, and loads the result into a Cache —
// the path a fixture-driven test takes instead of hand-writing []int32
// literals, exercising the binary format loaders in front of the cache
// actually consume.
func TestFixtureRoundTripThroughFilesys(t *testing.T) {
	dir := t.TempDir()
	fixtureDir := filepath.Join(dir, "fixtures")
	if err := filesys.CreateDir(fixtureDir, 0o755, true); err != nil {
		t.Fatalf("CreateDir() unexpected error: %v", err)
	}

	if ok, err := filesys.Exists(fixtureDir); err != nil || !ok {
		t.Fatalf("Exists(%q) = %v, %v, want true, nil", fixtureDir, ok, err)
	}

	want := []int32{100, 200, 300, 400}
	columnPath := filepath.Join(fixtureDir, "lo_orderdate.bin")
	if err := filesys.WriteFile(columnPath, 0o644, encodeColumnFile(want)); err != nil {
		t.Fatalf("WriteFile() unexpected error: %v", err)
	}

	raw, err := filesys.ReadFile(columnPath)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	got := decodeColumnFile(raw)
	if len(got) != len(want) {
		t.Fatalf("decoded %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("decoded[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	c, cat := newTestCache(t, 4)
	col, err := cat.RegisterColumn(
		catalog.ColumnSpec{Name: "lo_orderdate", Table: "lineorder", TotalTuples: len(got)}, 4,
	)
	if err != nil {
		t.Fatalf("RegisterColumn() unexpected error: %v", err)
	}
	if err := c.LoadSegment(col, 0, got); err != nil {
		t.Fatalf("LoadSegment() unexpected error: %v", err)
	}

	for i, v := range want {
		cpu, err := c.CPUValue(col, 0, i)
		if err != nil || cpu != v {
			t.Errorf("CPUValue(0, %d) = %d, %v, want %d, nil", i, cpu, err, v)
		}
	}
}

func TestExistsOnMissingPath(t *testing.T) {
	ok, err := filesys.Exists(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	if err != nil {
		t.Fatalf("Exists() unexpected error: %v", err)
	}
	if ok {
		t.Error("Exists() = true for a path that was never created")
	}
}
