package kernel

import (
	"context"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
)

// GroupBySpec parameterises the dense hash used to address an accumulator.
type GroupBySpec struct {
	KeySpecs [4]KeySpec
	TotalVal int
}

// AggregateSpec selects the per-row aggregate arithmetic and the fact-side
// value columns it reads. V2Column is nil for the single-operand modes.
type AggregateSpec struct {
	Mode      AggregateMode
	V1Column  *catalog.Column
	V2Column  *catalog.Column
}

// GroupByAndAggregate is the fused γ/Σ operator: for every row src yields,
// it assembles the row's group key from groupKeyStreams (one parallel
// stream per group-by dimension, literal zero for unused slots), computes
// the aggregate value from the fact-side columns, and folds it into acc at
// its dense-hash address.
func GroupByAndAggregate(
	ctx context.Context,
	src RowSource,
	groupKeyStreams [][]int32,
	c *cache.Cache,
	dev device.Device,
	agg AggregateSpec,
	gb GroupBySpec,
	acc *Accumulator,
	tileSize, workers int,
) error {
	return RunTiles(ctx, src.Len(), tileSize, workers, func(_ context.Context, start, end int) error {
		for i := start; i < end; i++ {
			rowOffset := src.RowOffset(i)

			var keys [4]int32
			for k := 0; k < len(groupKeyStreams) && k < 4; k++ {
				keys[k] = groupKeyStreams[k][i]
			}

			v1, err := ReadValue(c, dev, agg.V1Column, rowOffset)
			if err != nil {
				return err
			}
			var v2 int32
			if agg.V2Column != nil {
				v2, err = ReadValue(c, dev, agg.V2Column, rowOffset)
				if err != nil {
					return err
				}
			}

			value := ComputeValue(agg.Mode, v1, v2)
			h := DenseHash(keys, gb.KeySpecs, gb.TotalVal)
			if err := acc.Add(h, keys, value); err != nil {
				return err
			}
		}
		return nil
	})
}
