package kernel

import (
	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/pkg/segaddr"
)

// ReadValue resolves column_at_segment(row_offset)[row_offset mod SEGMENT_SIZE]
// on the requested device, translating the logical row offset into a
// (segment, position) pair through segaddr so every operator shares the
// same addressing convention.
func ReadValue(c *cache.Cache, dev device.Device, col *catalog.Column, rowOffset int) (int32, error) {
	seg := segaddr.SegmentIndex(rowOffset, c.SegmentSize())
	pos := segaddr.PositionInSegment(rowOffset, c.SegmentSize())

	if dev == device.GPU {
		return c.GPUValue(col, seg, pos)
	}
	return c.CPUValue(col, seg, pos)
}
