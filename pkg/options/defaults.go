package options

const (
	// DefaultSegmentSize is the number of tuples held by one segment of one
	// column, normally a compile-time constant; stardb validates it as a
	// configuration value instead since Go has no template constants.
	DefaultSegmentSize = 1 << 20

	// MinSegmentSize is the smallest segment size stardb will accept.
	// Below this, tile-size/prefix-sum bookkeeping overhead dominates.
	MinSegmentSize = 1 << 10

	// MaxSegmentSize is the largest segment size stardb will accept.
	MaxSegmentSize = 1 << 28

	// DefaultBlockThreads is the default CPU/GPU tile width.
	DefaultBlockThreads = 128

	// DefaultItemsPerThread is the default per-thread tile depth.
	DefaultItemsPerThread = 4

	// DefaultCacheSize is the default CPU+GPU cache budget in bytes.
	DefaultCacheSize uint64 = 1 << 30 // 1GB

	// DefaultOndemandSize is the default bytes reserved for segments staged
	// on demand rather than resident at load time.
	DefaultOndemandSize uint64 = 256 << 20 // 256MB

	// DefaultProcessingSize is the default device scratch budget (offset
	// streams, hash tables) in bytes.
	DefaultProcessingSize uint64 = 512 << 20 // 512MB

	// DefaultPinnedMemSize is the default pinned-host staging buffer size
	// used by the device dispatcher for host<->device transfers.
	DefaultPinnedMemSize uint64 = 64 << 20 // 64MB

	// DefaultMaxStreams bounds how many class pipelines the orchestrator
	// overlaps concurrently.
	DefaultMaxStreams = 4
)

// defaultOptions holds the default configuration settings for a stardb engine.
var defaultOptions = Options{
	CacheSize:      DefaultCacheSize,
	OndemandSize:   DefaultOndemandSize,
	ProcessingSize: DefaultProcessingSize,
	PinnedMemSize:  DefaultPinnedMemSize,
	Verbose:        false,
	Custom:         true,
	Skipping:       true,
	MaxStreams:     DefaultMaxStreams,
	SegmentOptions: &segmentOptions{
		Size:          DefaultSegmentSize,
		BlockThreads:  DefaultBlockThreads,
		ItemsPerThread: DefaultItemsPerThread,
	},
}

// NewDefaultOptions returns a copy of the default option set.
func NewDefaultOptions() Options {
	opts := defaultOptions
	segCopy := *defaultOptions.SegmentOptions
	opts.SegmentOptions = &segCopy
	return opts
}
