package errs

import "fmt"

// RangeError exposes which task range a Scheduling failure occurred in,
// the taxonomy-level analogue of the teacher library's task-metadata
// tagging (ID/index) adapted to the sorter's Start/End ranges.
type RangeError struct {
	Base       *Error
	Start, End int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s [%d:%d]", e.Base.Error(), e.Start, e.End)
}

func (e *RangeError) Unwrap() error { return e.Base }

// TaggedSchedulingError wraps a worker panic or ill-formed task with the
// range it was operating on, so a fatal abort's log line names the task
// that caused it.
func TaggedSchedulingError(start, end int, cause error) error {
	if cause == nil {
		return nil
	}
	base := &Error{Category: Scheduling, Cause: cause}
	return &RangeError{Base: base, Start: start, End: end}
}
