package orchestrator

import (
	stderrors "errors"

	"github.com/iamNilotpal/stardb/pkg/errors"
	"go.uber.org/multierr"
)

// ErrEngineClosed is returned when attempting to execute a query against a
// closed orchestrator.
var ErrEngineClosed = stderrors.New("operation failed: cannot execute query on closed orchestrator")

// New creates an Orchestrator bound to the given subsystems. All five are
// required: an orchestrator coordinates them but owns none of their setup.
func New(config *Config) (*Orchestrator, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config.Logger")
	}
	if config.Options == nil {
		return nil, errors.NewRequiredFieldError("config.Options")
	}
	if config.Catalog == nil {
		return nil, errors.NewRequiredFieldError("config.Catalog")
	}
	if config.Cache == nil {
		return nil, errors.NewRequiredFieldError("config.Cache")
	}
	if config.Planner == nil {
		return nil, errors.NewRequiredFieldError("config.Planner")
	}
	if config.Dispatcher == nil {
		return nil, errors.NewRequiredFieldError("config.Dispatcher")
	}

	return &Orchestrator{
		log:        config.Logger,
		opts:       config.Options,
		catalog:    config.Catalog,
		cache:      config.Cache,
		planner:    config.Planner,
		dispatcher: config.Dispatcher,
	}, nil
}

// Close releases the orchestrator's owned resources. It is idempotent via
// CAS on the closed flag, mirroring the teacher engine's shutdown guard.
func (o *Orchestrator) Close() error {
	if !o.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	return multierr.Combine(o.cache.Close(), o.catalog.Close())
}
