package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any subsystem.
const (
	// ErrorCodeIO represents failures in input/output operations, such as
	// reading a test fixture's column file.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents caller errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected failures that don't fit into
	// other categories — the equivalent of a programming-error assertion.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Cache-specific error codes cover the segment store & residency contract (C1).
const (
	// ErrorCodeSegmentNotResident indicates a GPU pointer was requested for a
	// segment whose residency bit is unset — fatal, indicates a planner bug.
	ErrorCodeSegmentNotResident ErrorCode = "SEGMENT_NOT_RESIDENT"

	// ErrorCodeArenaExhausted indicates the GPU arena has no room left for a
	// newly staged segment slab.
	ErrorCodeArenaExhausted ErrorCode = "ARENA_EXHAUSTED"

	// ErrorCodeUnknownSegment indicates a (column, segment index) pair that
	// was never loaded into the cache.
	ErrorCodeUnknownSegment ErrorCode = "UNKNOWN_SEGMENT"
)

// Kernel-specific error codes cover operator execution (C3) and device
// dispatch (C4) resource limits.
const (
	// ErrorCodeOffsetBufferOverflow indicates an operator produced more rows
	// than the offset stream was allocated to hold — fatal by design, since
	// buffers are sized for the worst case.
	ErrorCodeOffsetBufferOverflow ErrorCode = "OFFSET_BUFFER_OVERFLOW"

	// ErrorCodeHashTableOverflow indicates a dimension has more distinct keys
	// than num_slots, violating the "no chain" open-addressing contract.
	ErrorCodeHashTableOverflow ErrorCode = "HASH_TABLE_OVERFLOW"

	// ErrorCodeDuplicateKey indicates two rows of the same dimension carry
	// the same key, or a row carries key zero, the reserved empty sentinel.
	ErrorCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrorCodeGroupByOverflow indicates a group-by hash outside the
	// accumulator's [0, total_val) rows. Collisions between distinct key
	// tuples that land on the same row are not detected.
	ErrorCodeGroupByOverflow ErrorCode = "GROUP_BY_OVERFLOW"

	// ErrorCodeDeviceMismatch indicates an offset stream was handed to an
	// operator bound to a different device than the stream's tag.
	ErrorCodeDeviceMismatch ErrorCode = "DEVICE_MISMATCH"

	// ErrorCodeOffsetOutOfRange indicates an operator emitted a row offset
	// outside the logical range its placement class's segment group can
	// produce — a violation of the addressing invariant every downstream
	// kernel relies on.
	ErrorCodeOffsetOutOfRange ErrorCode = "OFFSET_OUT_OF_RANGE"
)

// Planner-specific error codes cover placement-class construction (C5) and
// query-plan validation (C6).
const (
	// ErrorCodeEmptyPlan indicates a query plan with no fact table reference.
	ErrorCodeEmptyPlan ErrorCode = "EMPTY_PLAN"

	// ErrorCodeTooManyJoins indicates a plan exceeds the four-dimension
	// budget the placement-class bit layout assumes: 64 = 2^6 total bits
	// across selection/join/group-by columns.
	ErrorCodeTooManyJoins ErrorCode = "TOO_MANY_JOINS"

	// ErrorCodeUnknownColumn indicates a plan references a column the
	// catalog has no entry for.
	ErrorCodeUnknownColumn ErrorCode = "UNKNOWN_COLUMN"

	// ErrorCodeUnknownQuery indicates a query selector outside {0,1,2,3},
	// the four fixed SSB queries spec.md §6 names.
	ErrorCodeUnknownQuery ErrorCode = "UNKNOWN_QUERY"

	// ErrorCodeEngineClosed indicates an operation was attempted against an
	// orchestrator that has already been closed.
	ErrorCodeEngineClosed ErrorCode = "ENGINE_CLOSED"
)
