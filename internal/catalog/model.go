package catalog

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Column is the catalog's entry for one logical column (C2): its stable
// identifier, owning table, tuple count, segmentation, value range, and
// cached GPU-residency count. Invariant: total_tuples = total_segment *
// SEGMENT_SIZE, with the final segment possibly short.
type Column struct {
	ID           int    // Stable column identifier.
	Name         string // Column name, e.g. "lo_orderdate".
	Table        string // Owning table name, e.g. "lineorder".
	TotalTuples  int    // Row count.
	TotalSegment int    // Number of segments this column spans.
	Min          int32  // Minimum value, used for hash functions and dense addressing.
	Max          int32  // Maximum value.

	bitmap        *residencyBitmap
	totSegInGPU   atomic.Int64 // Cached popcount, kept consistent at pipeline boundaries.
}

// IsResident reports whether segmentIndex is currently resident on the GPU.
// Valid at any point; callers executing a pipeline should only read this at
// pipeline boundaries.
func (c *Column) IsResident(segmentIndex int) bool {
	return c.bitmap.get(segmentIndex)
}

// TotSegInGPU returns the cached count of GPU-resident segments for this column.
func (c *Column) TotSegInGPU() int {
	return int(c.totSegInGPU.Load())
}

// FullyResidentOnGPU reports whether every segment of this column currently
// resides on the GPU — the condition used to decide whether a join or
// group-by dimension is GPU-eligible.
func (c *Column) FullyResidentOnGPU() bool {
	return c.TotSegInGPU() == c.TotalSegment
}

// Catalog is the in-memory column/schema store (C2): it names columns,
// records their owning table, segment count and value-range stats, and owns
// the GPU-residency bitmap each column carries. Residency input is supplied
// externally and the catalog treats it as the single point of truth the
// cache and planner both read.
type Catalog struct {
	log     *zap.SugaredLogger
	mu      sync.RWMutex
	byName  map[string]*Column
	byID    map[int]*Column
	nextID  int
}

// Config holds the parameters needed to initialize a Catalog.
type Config struct {
	Logger *zap.SugaredLogger
}
