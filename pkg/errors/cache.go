package errors

// CacheError is a specialized error type for the segment store & cache (C1).
// It embeds baseError and adds the context needed to pinpoint exactly which
// segment, column and device were involved — the cache's contract makes
// every violation fatal, so this context is what an operator's abort
// diagnostic prints.
type CacheError struct {
	*baseError

	columnID  int    // Column the failing segment belongs to.
	segmentID int    // Segment index within the column.
	device    string // Device the caller expected the segment to be resident on.
}

// NewCacheError creates a new cache-specific error with the provided context.
func NewCacheError(err error, code ErrorCode, msg string) *CacheError {
	return &CacheError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the CacheError type.
func (ce *CacheError) WithMessage(msg string) *CacheError {
	ce.baseError.WithMessage(msg)
	return ce
}

// WithDetail adds contextual information while maintaining the CacheError type.
func (ce *CacheError) WithDetail(key string, value any) *CacheError {
	ce.baseError.WithDetail(key, value)
	return ce
}

// WithColumnID records which column was being accessed when the error occurred.
func (ce *CacheError) WithColumnID(id int) *CacheError {
	ce.columnID = id
	return ce
}

// WithSegmentID records which segment was being accessed when the error occurred.
func (ce *CacheError) WithSegmentID(id int) *CacheError {
	ce.segmentID = id
	return ce
}

// WithDevice records which device the caller expected residency on.
func (ce *CacheError) WithDevice(device string) *CacheError {
	ce.device = device
	return ce
}

// ColumnID returns the column identifier associated with the error.
func (ce *CacheError) ColumnID() int { return ce.columnID }

// SegmentID returns the segment index associated with the error.
func (ce *CacheError) SegmentID() int { return ce.segmentID }

// Device returns the device the caller expected residency on.
func (ce *CacheError) Device() string { return ce.device }

// NewNotResidentError creates the canonical error for a GPU-pointer request
// against a segment whose residency bit is unset.
func NewNotResidentError(columnID, segmentID int) *CacheError {
	return NewCacheError(
		nil, ErrorCodeSegmentNotResident,
		"requested GPU pointer for a non-resident segment",
	).WithColumnID(columnID).WithSegmentID(segmentID).WithDevice("gpu").
		WithDetail("hint", "planner should have routed this segment to a CPU kernel")
}
