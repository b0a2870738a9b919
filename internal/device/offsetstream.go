package device

import "github.com/iamNilotpal/stardb/pkg/errors"

// NewOffsetStream allocates an offset stream of the given capacity on
// device. Capacity is sized for the worst case by the caller (class
// segment count * SEGMENT_SIZE); the stream's actual length is filled in
// as operators write to it.
func NewOffsetStream(dev Device, capacity int) *OffsetStream {
	return &OffsetStream{device: dev, data: make([]int32, capacity), capacity: capacity}
}

// Device reports which execution path produced this stream.
func (s *OffsetStream) Device() Device { return s.device }

// Capacity reports the stream's allocated size.
func (s *OffsetStream) Capacity() int { return s.capacity }

// Len reports the observed element count written so far.
func (s *OffsetStream) Len() int { return int(s.length.Load()) }

// Push atomically reserves the next slot and writes offset into it,
// returning the index written. It is the concurrency-safe equivalent of the
// in-tile prefix sum plus block-level atomicAdd into a global counter that
// the selection and join operators perform.
func (s *OffsetStream) Push(offset int32) (int, error) {
	idx := int(s.length.Add(1)) - 1
	if idx >= s.capacity {
		s.length.Add(-1)
		return 0, errors.NewOffsetOverflowError("push", idx+1, s.capacity)
	}
	s.data[idx] = offset
	return idx, nil
}

// At returns the offset written at position i. Callers must only read
// positions below Len().
func (s *OffsetStream) At(i int) int32 {
	return s.data[i]
}

// Slice returns the written prefix of the stream's backing array — the
// view downstream operators and SwitchDevice transfer, sized by the
// observed length rather than the allocated capacity.
func (s *OffsetStream) Slice() []int32 {
	return s.data[:s.Len()]
}
