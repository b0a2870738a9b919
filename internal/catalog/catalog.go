// Package catalog implements the column/schema catalog (C2): it names
// columns, records their owning table, segment count, and value-range
// stats, and owns the per-segment GPU-residency bitmap each column carries.
//
// The catalog is loaded once at startup from externally-supplied
// (name, table, row_count, min, max) tuples and then mutated only through
// SetResident and LoadResidencyBitmap as the externally-owned residency
// bitmap changes; the core
// never decides residency itself — admission and eviction policy is
// explicitly out of scope here.
package catalog

import (
	"github.com/iamNilotpal/stardb/pkg/errors"
	"github.com/iamNilotpal/stardb/pkg/segaddr"
)

// New creates an empty Catalog ready to have columns registered into it.
func New(config *Config) (*Catalog, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config.Logger")
	}

	return &Catalog{
		log:    config.Logger,
		byName: make(map[string]*Column, 32),
		byID:   make(map[int]*Column, 32),
		nextID: 0,
	}, nil
}

// ColumnSpec describes one column as delivered by the external catalog
// input: (name, table, row_count, min, max).
type ColumnSpec struct {
	Name        string
	Table       string
	TotalTuples int
	Min         int32
	Max         int32
}

// RegisterColumn adds a column to the catalog, computing its segment count
// from totalTuples and the engine's configured segment size. It is an error
// to register the same column name twice.
func (cat *Catalog) RegisterColumn(spec ColumnSpec, segmentSize int) (*Column, error) {
	if spec.Name == "" {
		return nil, errors.NewRequiredFieldError("spec.Name")
	}
	if spec.TotalTuples < 0 {
		return nil, errors.NewFieldRangeError("spec.TotalTuples", spec.TotalTuples, 0, nil)
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if _, exists := cat.byName[spec.Name]; exists {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "column already registered",
		).WithField("spec.Name").WithRule("unique").WithProvided(spec.Name)
	}

	totalSegment := segaddr.TotalSegments(spec.TotalTuples, segmentSize)

	col := &Column{
		ID:           cat.nextID,
		Name:         spec.Name,
		Table:        spec.Table,
		TotalTuples:  spec.TotalTuples,
		TotalSegment: totalSegment,
		Min:          spec.Min,
		Max:          spec.Max,
		bitmap:       newResidencyBitmap(totalSegment),
	}
	cat.nextID++

	cat.byName[spec.Name] = col
	cat.byID[col.ID] = col

	cat.log.Infow(
		"registered column",
		"name", col.Name, "table", col.Table,
		"totalTuples", col.TotalTuples, "totalSegment", col.TotalSegment,
	)

	return col, nil
}

// Column looks up a column by name.
func (cat *Catalog) Column(name string) (*Column, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	col, ok := cat.byName[name]
	if !ok {
		return nil, errors.NewPlannerError(
			nil, errors.ErrorCodeUnknownColumn, "unknown column",
		).WithColumn(name)
	}
	return col, nil
}

// ColumnByID looks up a column by its stable identifier.
func (cat *Catalog) ColumnByID(id int) (*Column, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	col, ok := cat.byID[id]
	if !ok {
		return nil, errors.NewPlannerError(
			nil, errors.ErrorCodeUnknownColumn, "unknown column id",
		).WithDetail("columnID", id)
	}
	return col, nil
}

// SetResident updates the residency bit for (column, segmentIndex) and keeps
// the column's cached tot_seg_in_GPU popcount consistent with it. Together
// with LoadResidencyBitmap it is the only externally-driven residency
// mutation the catalog accepts — the core never decides residency on its
// own — there is no eviction policy here.
func (cat *Catalog) SetResident(columnName string, segmentIndex int, resident bool) error {
	cat.mu.RLock()
	col, ok := cat.byName[columnName]
	cat.mu.RUnlock()
	if !ok {
		return errors.NewPlannerError(
			nil, errors.ErrorCodeUnknownColumn, "unknown column",
		).WithColumn(columnName)
	}
	if segmentIndex < 0 || segmentIndex >= col.TotalSegment {
		return errors.NewFieldRangeError("segmentIndex", segmentIndex, 0, col.TotalSegment-1)
	}

	if col.bitmap.set(segmentIndex, resident) {
		if resident {
			col.totSegInGPU.Add(1)
		} else {
			col.totSegInGPU.Add(-1)
		}
	}
	return nil
}

// LoadResidencyBitmap bulk-applies an externally-supplied residency bitmap
// for one column: a boolean per segment index, owned outside the core,
// which receives it by reference and promises read-only use. The core
// copies the bits in rather than retaining the caller's slice.
func (cat *Catalog) LoadResidencyBitmap(columnName string, residentSegments []bool) error {
	cat.mu.RLock()
	col, ok := cat.byName[columnName]
	cat.mu.RUnlock()
	if !ok {
		return errors.NewPlannerError(
			nil, errors.ErrorCodeUnknownColumn, "unknown column",
		).WithColumn(columnName)
	}
	if len(residentSegments) != col.TotalSegment {
		return errors.NewFieldRangeError(
			"len(residentSegments)", len(residentSegments), col.TotalSegment, col.TotalSegment,
		)
	}

	count := int64(0)
	for i, resident := range residentSegments {
		col.bitmap.set(i, resident)
		if resident {
			count++
		}
	}
	col.totSegInGPU.Store(count)
	return nil
}

// Tables returns the distinct table names the catalog currently holds
// columns for, in no particular order.
func (cat *Catalog) Tables() []string {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	seen := make(map[string]struct{})
	var tables []string
	for _, col := range cat.byName {
		if _, ok := seen[col.Table]; !ok {
			seen[col.Table] = struct{}{}
			tables = append(tables, col.Table)
		}
	}
	return tables
}

// Close releases the catalog's column registry. Safe to call once at
// orchestrator shutdown.
func (cat *Catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	cat.byName = nil
	cat.byID = nil
	cat.log.Infow("catalog closed")
	return nil
}
