package errors

// PlannerError is a specialized error type for the placement planner and
// query-plan validation (C5/C6): malformed plans, too many join dimensions
// for the 64-class bit layout, or columns the catalog doesn't know about.
type PlannerError struct {
	*baseError

	queryID int    // The query selector being planned.
	column  string // Column name involved in the error, if any.
}

// NewPlannerError creates a new planner-specific error with the provided context.
func NewPlannerError(err error, code ErrorCode, msg string) *PlannerError {
	return &PlannerError{baseError: NewBaseError(err, code, msg)}
}

// WithDetail adds contextual information while maintaining the PlannerError type.
func (pe *PlannerError) WithDetail(key string, value any) *PlannerError {
	pe.baseError.WithDetail(key, value)
	return pe
}

// WithQueryID records which query selector was being planned.
func (pe *PlannerError) WithQueryID(id int) *PlannerError {
	pe.queryID = id
	return pe
}

// WithColumn records which column name was involved in the error.
func (pe *PlannerError) WithColumn(name string) *PlannerError {
	pe.column = name
	return pe
}

// QueryID returns the query selector associated with the error.
func (pe *PlannerError) QueryID() int { return pe.queryID }

// Column returns the column name associated with the error.
func (pe *PlannerError) Column() string { return pe.column }
