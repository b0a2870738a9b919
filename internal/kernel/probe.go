package kernel

import (
	"context"
	"sync"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
)

// JoinSpec describes one join composed into a fused probe: the fact-side
// key column and the dimension's already-built hash table. A nil Table
// means this join slot is unused for the current query and its group-key
// output passes through as literal zero.
type JoinSpec struct {
	FactKeyColumn *catalog.Column
	Table         *HashTable
}

// ProbeJoins runs up to four joins fused into a single pass over src: for
// each row it probes every join's hash table and, only if every probe
// succeeds (inner-join semantics — a row failing any join is discarded from
// every downstream operator), emits the surviving row offset to survivors
// and each join's resolved payload to the matching stream in joinOut.
func ProbeJoins(
	ctx context.Context,
	src RowSource,
	joins []JoinSpec,
	c *cache.Cache,
	dev device.Device,
	survivors *device.OffsetStream,
	joinOut []*device.OffsetStream,
	tileSize, workers int,
) error {
	var writeMu sync.Mutex

	return RunTiles(ctx, src.Len(), tileSize, workers, func(_ context.Context, start, end int) error {
		payloads := make([]int32, len(joins))

		for i := start; i < end; i++ {
			rowOffset := src.RowOffset(i)

			ok := true
			for j, join := range joins {
				if join.Table == nil {
					payloads[j] = 0
					continue
				}

				key, err := ReadValue(c, dev, join.FactKeyColumn, rowOffset)
				if err != nil {
					return err
				}
				p, found := join.Table.Probe(key)
				if !found {
					ok = false
					break
				}
				payloads[j] = p
			}
			if !ok {
				continue
			}

			// survivors.Push and each joinOut[j].Push must stay
			// index-aligned across all parallel streams, so the pair of
			// pushes for one row happens under one lock rather than
			// relying on each stream's own independent atomic counter.
			writeMu.Lock()
			_, err := survivors.Push(int32(rowOffset))
			if err == nil {
				for j, p := range payloads {
					if _, err = joinOut[j].Push(p); err != nil {
						break
					}
				}
			}
			writeMu.Unlock()
			if err != nil {
				return err
			}
		}
		return nil
	})
}
