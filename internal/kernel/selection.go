package kernel

import (
	"context"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
)

// Range is one conjunct of a selection: lo <= value <= hi over one column.
// Selections are restricted to conjunctions of range predicates over up to
// two columns.
type Range struct {
	Column *catalog.Column
	Lo, Hi int32
}

// Selection emits, into out, the row offset of every row src yields for
// which every predicate in ranges holds. The emitted stream is dense
// (offsets packed via out.Push's atomic counter) but preserves relative
// order within each tile; rows that fail still consume a tile-local
// prefix-sum slot conceptually, only src.Len() bounds the scan.
func Selection(
	ctx context.Context,
	src RowSource,
	ranges []Range,
	c *cache.Cache,
	dev device.Device,
	out *device.OffsetStream,
	tileSize, workers int,
) error {
	return RunTiles(ctx, src.Len(), tileSize, workers, func(_ context.Context, start, end int) error {
		for i := start; i < end; i++ {
			rowOffset := src.RowOffset(i)

			matched := true
			for _, r := range ranges {
				v, err := ReadValue(c, dev, r.Column, rowOffset)
				if err != nil {
					return err
				}
				if v < r.Lo || v > r.Hi {
					matched = false
					break
				}
			}
			if !matched {
				continue
			}
			if _, err := out.Push(int32(rowOffset)); err != nil {
				return err
			}
		}
		return nil
	})
}
