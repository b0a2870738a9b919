package kernel

import (
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/pkg/errors"
	"github.com/iamNilotpal/stardb/pkg/segaddr"
)

// ValidateOffsetBounds checks that every offset out has emitted so far lies
// within the logical row-offset span segments (a placement class's fact
// segment group) can produce. SegmentGroupSource only ever walks rows inside
// that span, so an offset outside it means a kernel produced an address the
// addressing invariant forbids.
func ValidateOffsetBounds(segments []int, segmentSize int, out *device.OffsetStream) error {
	if len(segments) == 0 {
		return nil
	}

	minSeg, maxSeg := segments[0], segments[0]
	for _, s := range segments[1:] {
		if s < minSeg {
			minSeg = s
		}
		if s > maxSeg {
			maxSeg = s
		}
	}
	lo, hi := segaddr.OffsetRange(minSeg, maxSeg, segmentSize)

	for _, off := range out.Slice() {
		if int(off) < lo || int(off) >= hi {
			return errors.NewOffsetRangeError("selection", int(off), lo, hi)
		}
	}
	return nil
}
