package plan

import "fmt"

// Validate checks the structural invariants that plan construction must
// guarantee before scheduling: every task has an ID, IDs are unique,
// every dependency references an existing task, and durations are sane.
// Cycle detection is not a structural check; the scheduler performs it.
func Validate(p *Plan) []ValidationError {
	var errs []ValidationError

	ids := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.ID == "" {
			errs = append(errs, ValidationError{
				Category: ValCatMissingField,
				Err:      fmt.Errorf("%w: id (task %q)", ErrMissingField, t.Name),
			})
			continue
		}
		if ids[t.ID] {
			errs = append(errs, ValidationError{
				Category: ValCatDuplicateID,
				TaskID:   t.ID,
				Err:      fmt.Errorf("%w: %q", ErrDuplicateID, t.ID),
			})
		}
		ids[t.ID] = true
	}

	for _, t := range p.Tasks {
		for _, dep := range t.Dependencies {
			if !ids[dep] {
				errs = append(errs, ValidationError{
					Category: ValCatUnknownDep,
					TaskID:   t.ID,
					Err:      fmt.Errorf("%w: %q depends on %q", ErrUnknownDep, t.ID, dep),
				})
			}
		}
		if t.HasDuration && t.Duration < 0 {
			errs = append(errs, ValidationError{
				Category: ValCatBadDuration,
				TaskID:   t.ID,
				Err:      fmt.Errorf("%w: %q has negative duration %d", ErrBadDuration, t.ID, t.Duration),
			})
		}
		if t.Milestone && t.HasDuration && t.Duration != 0 {
			errs = append(errs, ValidationError{
				Category: ValCatBadDuration,
				TaskID:   t.ID,
				Err:      fmt.Errorf("%w: milestone %q has duration %d, want 0", ErrBadDuration, t.ID, t.Duration),
			})
		}
	}

	return errs
}
