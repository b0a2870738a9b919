package cache

import (
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/pkg/errors"
	"github.com/iamNilotpal/stardb/pkg/segaddr"
)

// New creates an empty Cache bound to catalog for residency lookups.
func New(config *Config) (*Cache, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config.Logger")
	}
	if config.Catalog == nil {
		return nil, errors.NewRequiredFieldError("config.Catalog")
	}
	if config.SegmentSize <= 0 {
		return nil, errors.NewFieldRangeError("config.SegmentSize", config.SegmentSize, 1, nil)
	}
	if config.TileSize <= 0 {
		return nil, errors.NewFieldRangeError("config.TileSize", config.TileSize, 1, nil)
	}
	if err := segaddr.ValidateTiling(config.SegmentSize, config.TileSize); err != nil {
		return nil, err
	}

	return &Cache{
		log:         config.Logger,
		catalog:     config.Catalog,
		segmentSize: config.SegmentSize,
		cpu:         make(map[int]map[int][]int32, 16),
		colIdx:      make(map[int]map[int]int, 16),
	}, nil
}

// LoadSegment stores the CPU copy of one (column, segment) tuple. Each
// segment is loaded exactly once; a second load for the same key is an error
// since cache entries are immutable once resident on the host.
func (c *Cache) LoadSegment(col *catalog.Column, segmentIndex int, data []int32) error {
	if col == nil {
		return errors.NewRequiredFieldError("col")
	}
	if segmentIndex < 0 || segmentIndex >= col.TotalSegment {
		return errors.NewCacheError(
			nil, errors.ErrorCodeUnknownSegment, "segment index out of range",
		).WithColumnID(col.ID).WithSegmentID(segmentIndex)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	segs, ok := c.cpu[col.ID]
	if !ok {
		segs = make(map[int][]int32, col.TotalSegment)
		c.cpu[col.ID] = segs
	}
	if _, exists := segs[segmentIndex]; exists {
		return errors.NewCacheError(
			nil, errors.ErrorCodeInvalidInput, "segment already loaded",
		).WithColumnID(col.ID).WithSegmentID(segmentIndex)
	}

	segs[segmentIndex] = data
	return nil
}

// StageToGPU copies a loaded segment's CPU data into the GPU arena and marks
// the catalog's residency bit for it. Staging is driven by whatever owns the
// residency bitmap externally, not by the cache itself — a loader issuing
// prefetches, or a test harness building a fixture.
func (c *Cache) StageToGPU(col *catalog.Column, segmentIndex int) error {
	if col == nil {
		return errors.NewRequiredFieldError("col")
	}

	c.mu.Lock()
	data, ok := c.cpu[col.ID][segmentIndex]
	if !ok {
		c.mu.Unlock()
		return errors.NewCacheError(
			nil, errors.ErrorCodeUnknownSegment, "segment not loaded on host",
		).WithColumnID(col.ID).WithSegmentID(segmentIndex)
	}

	idx, ok := c.colIdx[col.ID]
	if !ok {
		idx = make(map[int]int, col.TotalSegment)
		c.colIdx[col.ID] = idx
	}
	if _, staged := idx[segmentIndex]; staged {
		c.mu.Unlock()
		return c.catalog.SetResident(col.Name, segmentIndex, true)
	}

	slabID := len(c.arena) / c.segmentSize
	slab := make([]int32, c.segmentSize)
	copy(slab, data)
	c.arena = append(c.arena, slab...)
	idx[segmentIndex] = slabID
	c.mu.Unlock()

	if err := c.catalog.SetResident(col.Name, segmentIndex, true); err != nil {
		return err
	}
	c.log.Infow("staged segment to gpu", "column", col.Name, "segment", segmentIndex, "slab", slabID)
	return nil
}

// EvictFromGPU clears the residency bit for a segment. The arena slab is
// left in place — there is no compaction or reuse policy here, only the
// bookkeeping the residency contract requires.
func (c *Cache) EvictFromGPU(col *catalog.Column, segmentIndex int) error {
	if col == nil {
		return errors.NewRequiredFieldError("col")
	}
	return c.catalog.SetResident(col.Name, segmentIndex, false)
}

// CPUValue returns the tuple at (col, segmentIndex, pos) from the host copy,
// which is always valid once LoadSegment has run for that segment.
func (c *Cache) CPUValue(col *catalog.Column, segmentIndex, pos int) (int32, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	segs, ok := c.cpu[col.ID]
	if !ok {
		return 0, errors.NewCacheError(
			nil, errors.ErrorCodeUnknownSegment, "segment not loaded on host",
		).WithColumnID(col.ID).WithSegmentID(segmentIndex)
	}
	data, ok := segs[segmentIndex]
	if !ok {
		return 0, errors.NewCacheError(
			nil, errors.ErrorCodeUnknownSegment, "segment not loaded on host",
		).WithColumnID(col.ID).WithSegmentID(segmentIndex)
	}
	if pos < 0 || pos >= len(data) {
		return 0, errors.NewFieldRangeError("pos", pos, 0, len(data)-1)
	}
	return data[pos], nil
}

// GPUValue returns the tuple at (col, segmentIndex, pos) from the device
// arena. It is fatal to call this for a segment whose residency bit is
// unset — the caller (planner/dispatch) should have routed that segment to
// a CPU kernel instead.
func (c *Cache) GPUValue(col *catalog.Column, segmentIndex, pos int) (int32, error) {
	if !col.IsResident(segmentIndex) {
		return 0, errors.NewNotResidentError(col.ID, segmentIndex)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	slabID, ok := c.colIdx[col.ID][segmentIndex]
	if !ok {
		return 0, errors.NewNotResidentError(col.ID, segmentIndex)
	}
	if pos < 0 || pos >= c.segmentSize {
		return 0, errors.NewFieldRangeError("pos", pos, 0, c.segmentSize-1)
	}
	return c.arena[slabID*c.segmentSize+pos], nil
}

// SegmentSize returns the tuple count of one segment.
func (c *Cache) SegmentSize() int {
	return c.segmentSize
}

// Close releases the cache's CPU slabs and GPU arena. Safe to call once at
// orchestrator shutdown; the cache does nothing lazily so there is nothing
// to flush.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cpu = nil
	c.arena = nil
	c.colIdx = nil
	c.log.Infow("cache closed")
	return nil
}
