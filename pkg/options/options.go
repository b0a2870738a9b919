// Package options provides data structures and functions for configuring
// the stardb query engine. It defines the parameters that control the
// segment size and tiling constants operator kernels are parameterised by,
// the cache/scratch/pinned-memory budgets the device dispatcher respects,
// and two execution-strategy switches: Custom (enable the per-segment
// placement planner; disabled falls back to an all-GPU baseline) and
// Skipping (skip empty placement classes).
package options

// segmentOptions defines configurable parameters for segment layout and the
// tile size operator kernels are parameterised by: BLOCK_THREADS and
// ITEMS_PER_THREAD, giving a tile_size = BLOCK_THREADS * ITEMS_PER_THREAD
// that must divide SEGMENT_SIZE.
type segmentOptions struct {
	// Size is the number of tuples held by one segment of one column.
	//
	//  - Default: 2^20
	//  - Minimum: 2^10
	//  - Maximum: 2^28
	Size int `json:"segmentSize"`

	// BlockThreads is the tile width used by CPU and GPU operator kernels.
	BlockThreads int `json:"blockThreads"`

	// ItemsPerThread is the per-thread tile depth used by operator kernels.
	ItemsPerThread int `json:"itemsPerThread"`
}

// TileSize returns BlockThreads * ItemsPerThread, the number of tuples one
// kernel invocation's tile covers.
func (s *segmentOptions) TileSize() int {
	return s.BlockThreads * s.ItemsPerThread
}

// Options defines the configuration parameters for a stardb engine instance:
// cache size, ondemand size, processing size, pinned mem size, verbose,
// custom, and skipping.
type Options struct {
	// CacheSize is the total CPU+GPU cache budget in bytes.
	CacheSize uint64 `json:"cacheSize"`

	// OndemandSize is the bytes reserved for segments staged on demand
	// rather than resident at load time.
	OndemandSize uint64 `json:"ondemandSize"`

	// ProcessingSize is the device scratch budget (offset streams, hash
	// tables) in bytes.
	ProcessingSize uint64 `json:"processingSize"`

	// PinnedMemSize is the pinned host staging buffer size used for
	// host<->device transfers.
	PinnedMemSize uint64 `json:"pinnedMemSize"`

	// Verbose records the caller's verbosity preference. No component reads
	// it, so it does not change what is logged.
	Verbose bool `json:"verbose"`

	// Custom enables the per-segment placement planner (C5). When false,
	// the orchestrator falls back to an all-GPU baseline schedule.
	Custom bool `json:"custom"`

	// Skipping, when true, drops placement classes with zero segments from
	// the emitted schedule instead of running an empty pipeline for them.
	Skipping bool `json:"skipping"`

	// MaxStreams bounds how many class pipelines the orchestrator overlaps
	// concurrently on distinct device streams.
	MaxStreams int `json:"maxStreams"`

	// SegmentOptions configures segment size and kernel tiling constants.
	SegmentOptions *segmentOptions `json:"segmentOptions"`
}

// OptionFunc is a function type that modifies the engine's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies the predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		*o = opts
	}
}

// WithCacheSize sets the total CPU+GPU cache budget in bytes.
func WithCacheSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.CacheSize = size
		}
	}
}

// WithOndemandSize sets the bytes reserved for on-demand segment staging.
func WithOndemandSize(size uint64) OptionFunc {
	return func(o *Options) {
		o.OndemandSize = size
	}
}

// WithProcessingSize sets the device scratch budget in bytes.
func WithProcessingSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.ProcessingSize = size
		}
	}
}

// WithPinnedMemSize sets the pinned host staging buffer size.
func WithPinnedMemSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.PinnedMemSize = size
		}
	}
}

// WithVerbose sets Options.Verbose; no component reads it.
func WithVerbose(verbose bool) OptionFunc {
	return func(o *Options) { o.Verbose = verbose }
}

// WithCustomPlanner toggles the per-segment placement planner. When
// disabled, the orchestrator falls back to an all-GPU baseline schedule.
func WithCustomPlanner(custom bool) OptionFunc {
	return func(o *Options) { o.Custom = custom }
}

// WithSkipping toggles whether empty placement classes are dropped from the
// emitted schedule.
func WithSkipping(skipping bool) OptionFunc {
	return func(o *Options) { o.Skipping = skipping }
}

// WithMaxStreams bounds how many class pipelines are overlapped concurrently.
func WithMaxStreams(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.MaxStreams = n
		}
	}
}

// WithSegmentSize sets the number of tuples held by one segment.
func WithSegmentSize(size int) OptionFunc {
	return func(o *Options) {
		if size >= MinSegmentSize && size <= MaxSegmentSize {
			o.SegmentOptions.Size = size
		}
	}
}

// WithTiling sets the CPU/GPU kernel tile dimensions. blockThreads *
// itemsPerThread must divide the segment size; callers that violate this
// will have it caught at cache construction time rather than here, since
// segment size may be set by an earlier or later option in the chain.
func WithTiling(blockThreads, itemsPerThread int) OptionFunc {
	return func(o *Options) {
		if blockThreads > 0 && itemsPerThread > 0 {
			o.SegmentOptions.BlockThreads = blockThreads
			o.SegmentOptions.ItemsPerThread = itemsPerThread
		}
	}
}
