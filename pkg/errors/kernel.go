package errors

// KernelError is a specialized error type for operator-kernel and
// device-dispatch failures (C3/C4): offset-buffer overflow, hash-table
// cardinality overflow, and device/stream mismatches. These are all
// resource-exhaustion or precondition failures — fatal by design, never
// retried.
type KernelError struct {
	*baseError

	operator string // Name of the operator that failed (e.g. "selection", "hash_probe").
	table    string // Table the operator was processing.
	count    int    // Observed count that triggered the failure (rows written, distinct keys, ...).
	limit    int    // Configured limit that was exceeded.
}

// NewKernelError creates a new kernel-specific error with the provided context.
func NewKernelError(err error, code ErrorCode, msg string) *KernelError {
	return &KernelError{baseError: NewBaseError(err, code, msg)}
}

// WithDetail adds contextual information while maintaining the KernelError type.
func (ke *KernelError) WithDetail(key string, value any) *KernelError {
	ke.baseError.WithDetail(key, value)
	return ke
}

// WithOperator records which operator was executing when the error occurred.
func (ke *KernelError) WithOperator(op string) *KernelError {
	ke.operator = op
	return ke
}

// WithTable records which table the operator was processing.
func (ke *KernelError) WithTable(table string) *KernelError {
	ke.table = table
	return ke
}

// WithCount records the observed count that triggered the failure.
func (ke *KernelError) WithCount(count int) *KernelError {
	ke.count = count
	return ke
}

// WithLimit records the configured limit that was exceeded.
func (ke *KernelError) WithLimit(limit int) *KernelError {
	ke.limit = limit
	return ke
}

// Operator returns the operator name associated with the error.
func (ke *KernelError) Operator() string { return ke.operator }

// Table returns the table name associated with the error.
func (ke *KernelError) Table() string { return ke.table }

// Count returns the observed count that triggered the failure.
func (ke *KernelError) Count() int { return ke.count }

// Limit returns the configured limit that was exceeded.
func (ke *KernelError) Limit() int { return ke.limit }

// NewOffsetOverflowError creates the canonical error for an operator that
// wrote more offsets than its output stream was allocated to hold.
func NewOffsetOverflowError(operator string, written, capacity int) *KernelError {
	return NewKernelError(
		nil, ErrorCodeOffsetBufferOverflow,
		"operator wrote more offsets than the stream capacity",
	).WithOperator(operator).WithCount(written).WithLimit(capacity)
}

// NewHashTableOverflowError creates the canonical error for a dimension whose
// distinct key count exceeds num_slots.
func NewHashTableOverflowError(table string, cardinality, numSlots int) *KernelError {
	return NewKernelError(
		nil, ErrorCodeHashTableOverflow,
		"dimension cardinality exceeds hash table slot count",
	).WithTable(table).WithCount(cardinality).WithLimit(numSlots)
}

// NewOffsetRangeError creates the canonical error for an offset an operator
// emitted outside the logical row-offset bounds its segment group covers.
func NewOffsetRangeError(operator string, offset, lo, hi int) *KernelError {
	return NewKernelError(
		nil, ErrorCodeOffsetOutOfRange, "offset outside placement class's segment range",
	).WithOperator(operator).WithDetail("offset", offset).WithDetail("lo", lo).WithDetail("hi", hi)
}
