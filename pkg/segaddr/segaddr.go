// Package segaddr provides the row/segment address arithmetic shared by the
// cache, kernel and planner packages.
//
// The addressing contract is fixed: total_tuples = total_segment *
// SEGMENT_SIZE, with the last segment possibly short, and a tuple at
// logical row r lives at position r mod SEGMENT_SIZE of segment r div
// SEGMENT_SIZE in every column of its table. Every package that turns a
// row offset into a
// (segment, position) pair — or back — goes through here so that the
// division/modulo convention can't drift between packages.
package segaddr

import (
	stderrors "errors"

	"github.com/iamNilotpal/stardb/pkg/errors"
)

// ErrInvalidSegmentSize is returned when a segment size isn't a positive
// multiple of the supplied tile size.
var ErrInvalidSegmentSize = stderrors.New("segment size must be a positive multiple of tile size")

// SegmentIndex returns the segment a logical row offset falls into.
func SegmentIndex(row, segmentSize int) int {
	return row / segmentSize
}

// PositionInSegment returns a logical row offset's position within its segment.
func PositionInSegment(row, segmentSize int) int {
	return row % segmentSize
}

// RowOffset reconstructs the logical row offset for a (segment, position) pair.
func RowOffset(segmentIndex, position, segmentSize int) int {
	return segmentIndex*segmentSize + position
}

// TotalSegments returns how many segments totalTuples spans given segmentSize,
// rounding up so a short final segment still counts as one segment; its
// length is recorded separately by SegmentLength.
func TotalSegments(totalTuples, segmentSize int) int {
	if totalTuples == 0 {
		return 0
	}
	return (totalTuples + segmentSize - 1) / segmentSize
}

// SegmentLength returns the number of valid tuples in the given segment —
// segmentSize for every segment except possibly the last, whose length is
// totalTuples - segmentIndex*segmentSize.
func SegmentLength(segmentIndex, totalTuples, segmentSize int) int {
	start := segmentIndex * segmentSize
	if start >= totalTuples {
		return 0
	}
	remaining := totalTuples - start
	if remaining > segmentSize {
		return segmentSize
	}
	return remaining
}

// ValidateTiling checks that tileSize divides segmentSize, the precondition
// every kernel invocation relies on so each invocation processes an integer
// number of tiles.
func ValidateTiling(segmentSize, tileSize int) error {
	if segmentSize <= 0 || tileSize <= 0 || segmentSize%tileSize != 0 {
		return errors.NewValidationError(
			ErrInvalidSegmentSize, errors.ErrorCodeInvalidInput,
			"segment size must be a positive multiple of the kernel tile size",
		).WithField("segmentSize").
			WithRule("divisible_by_tile_size").
			WithProvided(segmentSize).
			WithDetail("tileSize", tileSize)
	}
	return nil
}

// OffsetRange reports the inclusive-exclusive logical row-offset bounds a
// contiguous run of segments [minSeg, maxSeg] covers — every offset an
// operator emits for that run must lie in [lo, hi).
func OffsetRange(minSeg, maxSeg, segmentSize int) (lo, hi int) {
	return minSeg * segmentSize, (maxSeg + 1) * segmentSize
}
