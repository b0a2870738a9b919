// Package kernel implements the operator kernels (C3): selection, hash
// build, hash probe (with fused group-by), and group-by/aggregate, all
// segment-oriented and offset-threaded so the same operator logic runs
// whether its input is a raw segment group or an already-materialised
// offset stream.
//
// Both invocation shapes are unified behind RowSource, so an operator is
// written once against get_value(column, row_idx) / emit(offset) rather
// than duplicated per shape.
package kernel

import (
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/pkg/segaddr"
)

// RowSource supplies the logical row offsets an operator iterates over,
// independent of whether those rows come from whole segments (Form A) or
// an upstream operator's offset stream (Form B).
type RowSource interface {
	// Len returns how many rows this source yields.
	Len() int
	// RowOffset returns the logical row offset (row index into the table)
	// for the i-th row this source yields.
	RowOffset(i int) int
}

// SegmentGroupSource is the segment-driven row source (Form A): it walks
// every row of every segment in an ordered segment group.
type SegmentGroupSource struct {
	segments    []int
	segmentSize int
	totalTuples int
}

// NewSegmentGroupSource builds a Form A row source over segments, a set of
// segment indices sharing one placement class.
func NewSegmentGroupSource(segments []int, col *catalog.Column, segmentSize int) *SegmentGroupSource {
	return &SegmentGroupSource{segments: segments, segmentSize: segmentSize, totalTuples: col.TotalTuples}
}

// Len returns the total number of tuples across every segment in the group.
func (s *SegmentGroupSource) Len() int {
	n := 0
	for _, seg := range s.segments {
		n += segaddr.SegmentLength(seg, s.totalTuples, s.segmentSize)
	}
	return n
}

// RowOffset returns the logical row offset of the i-th tuple across the
// segment group, walking segments in the order they were given.
func (s *SegmentGroupSource) RowOffset(i int) int {
	for _, seg := range s.segments {
		segLen := segaddr.SegmentLength(seg, s.totalTuples, s.segmentSize)
		if i < segLen {
			return segaddr.RowOffset(seg, i, s.segmentSize)
		}
		i -= segLen
	}
	panic("kernel: RowOffset index out of range")
}

// OffsetStreamSource is the offset-driven row source (Form B): it walks an
// upstream operator's already-materialised offset stream.
type OffsetStreamSource struct {
	offsets []int32
}

// NewOffsetStreamSource builds a Form B row source over a slice of already
// materialised row offsets.
func NewOffsetStreamSource(offsets []int32) *OffsetStreamSource {
	return &OffsetStreamSource{offsets: offsets}
}

// Len returns the number of offsets in the stream.
func (s *OffsetStreamSource) Len() int { return len(s.offsets) }

// RowOffset returns the i-th offset in the stream.
func (s *OffsetStreamSource) RowOffset(i int) int { return int(s.offsets[i]) }
