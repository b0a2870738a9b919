package errors

import stdErrors "errors"

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsCacheError determines if an error originated from the segment store & cache (C1).
func IsCacheError(err error) bool {
	var ce *CacheError
	return stdErrors.As(err, &ce)
}

// IsKernelError determines if an error originated from operator execution or
// device dispatch (C3/C4).
func IsKernelError(err error) bool {
	var ke *KernelError
	return stdErrors.As(err, &ke)
}

// IsPlannerError determines if an error originated from the placement
// planner or query-plan validation (C5/C6).
func IsPlannerError(err error) bool {
	var pe *PlannerError
	return stdErrors.As(err, &pe)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsCacheError safely extracts a CacheError from an error chain.
func AsCacheError(err error) (*CacheError, bool) {
	var ce *CacheError
	if stdErrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsKernelError safely extracts a KernelError from an error chain.
func AsKernelError(err error) (*KernelError, bool) {
	var ke *KernelError
	if stdErrors.As(err, &ke) {
		return ke, true
	}
	return nil, false
}

// AsPlannerError safely extracts a PlannerError from an error chain.
func AsPlannerError(err error) (*PlannerError, bool) {
	var pe *PlannerError
	if stdErrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't have a specific code.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if ce, ok := AsCacheError(err); ok {
		return ce.Code()
	}
	if ke, ok := AsKernelError(err); ok {
		return ke.Code()
	}
	if pe, ok := AsPlannerError(err); ok {
		return pe.Code()
	}
	return ErrorCodeInternal
}
