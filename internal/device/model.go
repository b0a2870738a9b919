// Package device implements device dispatch (C4): it wraps offset-stream
// transfers between host and device memory behind a single family of
// functions, and bounds how many class pipelines run concurrently.
//
// There is no CUDA/OpenCL/Metal binding backing this package. The "GPU"
// device tag names a second, independently-scheduled execution path that
// runs the identical kernel code as the CPU path, gated by the same stream
// and pinned-memory budgets a real device dispatcher would respect. This
// keeps every observable contract — residency determines routing, a
// transfer is a synchronisation point, a class's device choice never
// changes mid-pipeline — without inventing a nonexistent hardware binding.
package device

import (
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Device tags which logical execution path a stream, kernel invocation, or
// offset produced by one is bound to.
type Device int

const (
	CPU Device = iota
	GPU
)

// String implements fmt.Stringer for log output.
func (d Device) String() string {
	switch d {
	case CPU:
		return "cpu"
	case GPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// OffsetStream is the value-typed replacement for a raw `int**` offset
// buffer: it carries its device tag, capacity, and the observed element
// count alongside the backing slice, so ownership and bounds travel with
// the value instead of through separately-tracked pointers and counters.
type OffsetStream struct {
	device   Device
	data     []int32
	length   atomic.Int64
	capacity int
}

// Dispatcher owns the stream and pinned-memory budgets that gate concurrent
// class pipelines and host<->device transfers.
type Dispatcher struct {
	log     *zap.SugaredLogger
	streams *semaphore.Weighted // Bounds concurrent class pipelines ("one or more streams").
	pinned  *semaphore.Weighted // Bounds bytes in flight through the pinned staging buffer.
}

// Config holds the parameters needed to initialize a Dispatcher.
type Config struct {
	Logger        *zap.SugaredLogger
	MaxStreams    int
	PinnedMemSize uint64
}
