package device

import (
	"context"

	"github.com/iamNilotpal/stardb/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// New creates a Dispatcher whose stream and pinned-memory budgets are sized
// from config.
func New(config *Config) (*Dispatcher, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config.Logger")
	}
	if config.MaxStreams <= 0 {
		return nil, errors.NewFieldRangeError("config.MaxStreams", config.MaxStreams, 1, nil)
	}

	return &Dispatcher{
		log:     config.Logger,
		streams: semaphore.NewWeighted(int64(config.MaxStreams)),
		pinned:  semaphore.NewWeighted(int64(config.PinnedMemSize)),
	}, nil
}

// RunOnStream binds fn to one of the dispatcher's streams, blocking until a
// stream slot is free. Only device-dispatcher entry points suspend the
// calling goroutine — kernels themselves never block on external
// resources.
func (d *Dispatcher) RunOnStream(ctx context.Context, dev Device, fn func() error) error {
	if err := d.streams.Acquire(ctx, 1); err != nil {
		return err
	}
	defer d.streams.Release(1)

	d.log.Infow("running class pipeline on stream", "device", dev.String())
	return fn()
}

// SwitchDevice copies an offset stream's written prefix to a stream bound
// to target, via the pinned staging budget. Transfers are sized by the
// source stream's observed length (h_total), never by its capacity, and
// the call blocks until enough pinned budget is available — the stand-in
// for waiting on the provided device stream.
func (d *Dispatcher) SwitchDevice(ctx context.Context, src *OffsetStream, target Device) (*OffsetStream, error) {
	if src.Device() == target {
		return src, nil
	}

	n := src.Len()
	weight := int64(n) * 4 // bytes, one int32 per element.
	if weight > 0 {
		if err := d.pinned.Acquire(ctx, weight); err != nil {
			return nil, err
		}
		defer d.pinned.Release(weight)
	}

	dst := NewOffsetStream(target, n)
	copy(dst.data, src.Slice())
	dst.length.Store(int64(n))

	d.log.Infow(
		"transferred offset stream between devices",
		"from", src.Device().String(), "to", target.String(), "elements", n,
	)
	return dst, nil
}
