package plan

import "errors"

// Sentinel errors for structural plan validation.
var (
	// ErrDuplicateID indicates two or more tasks share the same ID.
	ErrDuplicateID = errors.New("duplicate task ID")
	// ErrUnknownDep indicates a task depends on an ID that does not exist.
	ErrUnknownDep = errors.New("task depends on unknown task ID")
	// ErrMissingField indicates a required field (id) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrBadDuration indicates a negative duration or a milestone with a
	// non-zero duration.
	ErrBadDuration = errors.New("invalid duration")
)

// ValidationCategory classifies a structural validation error.
type ValidationCategory string

const (
	// ValCatMissingField indicates a required field is empty.
	ValCatMissingField ValidationCategory = "missing_field"
	// ValCatDuplicateID indicates two or more tasks share the same ID.
	ValCatDuplicateID ValidationCategory = "duplicate_id"
	// ValCatUnknownDep indicates a dependency references a non-existent task.
	ValCatUnknownDep ValidationCategory = "unknown_dep"
	// ValCatBadDuration indicates an out-of-range duration value.
	ValCatBadDuration ValidationCategory = "bad_duration"
)

// ValidationError records a structural problem with task context.
type ValidationError struct {
	Category ValidationCategory
	TaskID   string
	Err      error
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.TaskID == "" {
		return e.Err.Error()
	}
	return e.TaskID + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e ValidationError) Unwrap() error {
	return e.Err
}
