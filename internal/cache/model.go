package cache

import (
	"sync"

	"github.com/iamNilotpal/stardb/internal/catalog"
	"go.uber.org/zap"
)

// Cache is the segment store & cache (C1): it owns tuple data as fixed-size
// segments addressable by (column_id, segment_index), on the host always
// and on the device wherever the catalog's residency bitmap says so.
//
// The CPU copy of a segment is always present once loaded: cpu_ptr(col,
// seg) is always valid. The GPU copy lives in a single flat arena slice,
// indexed through colIdx the way a packed column-index table translates a
// row offset to a GPU address: slab_id = col_idx[col][off / SEGMENT_SIZE];
// addr = arena + slab_id*SEGMENT_SIZE + off mod SEGMENT_SIZE.
//
// Residency itself — which segments are staged to the arena — is not a
// decision the cache makes; it is driven externally, ownership of the
// bitmap sits outside the core, through StageToGPU/EvictFromGPU, which a
// loader or test harness calls before a query runs. The core never chooses
// what to evict or admit.
type Cache struct {
	log         *zap.SugaredLogger
	catalog     *catalog.Catalog
	segmentSize int

	mu     sync.RWMutex
	cpu    map[int]map[int][]int32 // columnID -> segmentIndex -> CPU slab.
	arena  []int32                 // Flat GPU arena, one SEGMENT_SIZE slab per append.
	colIdx map[int]map[int]int     // columnID -> segmentIndex -> slab id in arena.
}

// Config holds the parameters needed to initialize a Cache.
type Config struct {
	Logger      *zap.SugaredLogger
	Catalog     *catalog.Catalog
	SegmentSize int

	// TileSize is the operator kernels' tile width (BlockThreads *
	// ItemsPerThread). It must divide SegmentSize, checked once here rather
	// than at every kernel invocation.
	TileSize int
}
