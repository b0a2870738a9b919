package kernel

import (
	"context"
	"sync/atomic"

	"github.com/iamNilotpal/stardb/internal/cache"
	"github.com/iamNilotpal/stardb/internal/catalog"
	"github.com/iamNilotpal/stardb/internal/device"
	"github.com/iamNilotpal/stardb/pkg/errors"
)

// PayloadMode selects what a hash-table build writes as the payload half
// of a (key, payload) slot.
type PayloadMode int

const (
	// PayloadOffset stores row_offset+1, the dimension row the key came
	// from — used when a probe resolves the join to an offset.
	PayloadOffset PayloadMode = iota
	// PayloadValue stores a dimension attribute value directly — used
	// when a probe resolves the join straight to a group-by key.
	PayloadValue
)

// HashTable is the open-addressed, chain-free hash table a build operator
// populates and a probe operator reads: h(k) = (k - key_min) mod num_slots,
// with num_slots chosen so distinct dimension keys land on distinct slots
// and no linear probing is required.
type HashTable struct {
	keys     []atomic.Int32
	payloads []int32
	numSlots int
	keyMin   int32
	mode     PayloadMode
}

// NewHashTable allocates an empty hash table with numSlots slots.
func NewHashTable(numSlots int, keyMin int32, mode PayloadMode) *HashTable {
	return &HashTable{
		keys:     make([]atomic.Int32, numSlots),
		payloads: make([]int32, numSlots),
		numSlots: numSlots,
		keyMin:   keyMin,
		mode:     mode,
	}
}

func (h *HashTable) slot(key int32) int {
	d := int(key - h.keyMin)
	s := d % h.numSlots
	if s < 0 {
		s += h.numSlots
	}
	return s
}

// insert writes (key, payload) into the table using atomicCAS to resolve
// the race between concurrent tile workers: because num_slots >= dimension
// cardinality the CAS only contends on an actual duplicate or a genuine
// cardinality overflow, never on ordinary concurrent inserts of distinct
// keys.
func (h *HashTable) insert(key, payload int32, tableName string) error {
	if key == 0 {
		return errors.NewKernelError(
			nil, errors.ErrorCodeDuplicateKey, "dimension key zero is reserved as the empty sentinel",
		).WithTable(tableName)
	}

	slot := h.slot(key)
	if h.keys[slot].CompareAndSwap(0, key) {
		h.payloads[slot] = payload
		return nil
	}

	cur := h.keys[slot].Load()
	if cur == key {
		return errors.NewKernelError(
			nil, errors.ErrorCodeDuplicateKey, "dimension contains duplicate key",
		).WithTable(tableName).WithDetail("key", key)
	}
	return errors.NewHashTableOverflowError(tableName, h.numSlots+1, h.numSlots)
}

// Probe looks up key and reports its payload, or false if no slot holds
// that key — the fact row fails this join and is discarded downstream.
func (h *HashTable) Probe(key int32) (int32, bool) {
	slot := h.slot(key)
	if h.keys[slot].Load() != key {
		return 0, false
	}
	return h.payloads[slot], true
}

// NumSlots reports the table's slot count.
func (h *HashTable) NumSlots() int { return h.numSlots }

// BuildHashTable populates table by scanning src: for every row, the key is
// read from keyCol and the payload is either row_offset+1 or valueCol's
// value, depending on table's PayloadMode.
func BuildHashTable(
	ctx context.Context,
	table *HashTable,
	tableName string,
	src RowSource,
	keyCol, valueCol *catalog.Column,
	c *cache.Cache,
	dev device.Device,
	tileSize, workers int,
) error {
	return RunTiles(ctx, src.Len(), tileSize, workers, func(_ context.Context, start, end int) error {
		for i := start; i < end; i++ {
			rowOffset := src.RowOffset(i)

			key, err := ReadValue(c, dev, keyCol, rowOffset)
			if err != nil {
				return err
			}

			var payload int32
			switch table.mode {
			case PayloadOffset:
				payload = int32(rowOffset + 1)
			case PayloadValue:
				payload, err = ReadValue(c, dev, valueCol, rowOffset)
				if err != nil {
					return err
				}
			}

			if err := table.insert(key, payload, tableName); err != nil {
				return err
			}
		}
		return nil
	})
}
