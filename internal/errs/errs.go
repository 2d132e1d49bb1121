// Package errs implements the error taxonomy of spec §7. Every failure
// surfaced by this module is one of four wrapped categories; there is no
// local recovery, and any retry/backoff belongs to none of them (the sort
// is a batch computation).
package errs

import "fmt"

const namespace = "mergesort"

// Category tags which branch of §7's taxonomy an error belongs to.
type Category string

const (
	// Configuration covers bad CLI arguments and array sizes exceeding the
	// platform's per-message count limit. Fatal: reported to rank 0, abort.
	Configuration Category = "configuration"
	// Scheduling covers a closed channel or an ill-formed task observed by
	// a Worker. Fatal: abort the sort.
	Scheduling Category = "scheduling"
	// Messaging covers any failure from the inter-rank transport. Fatal:
	// abort the job.
	Messaging Category = "messaging"
	// PostCondition covers the final check that output is sorted failing.
	// Fatal: reported to the caller.
	PostCondition Category = "post_condition"
)

// Error wraps an underlying cause with its taxonomy category. Non-power-
// of-two participant counts are handled as a logged warning rather than an
// Error (see distributed.Run), matching §7's explicit carve-out.
type Error struct {
	Category Category
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", namespace, e.Category, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Wrap produces a new taxonomy Error. Returns nil if cause is nil.
func Wrap(cat Category, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Category: cat, Cause: cause}
}

// Wrapf is Wrap with fmt.Errorf-style message formatting.
func Wrapf(cat Category, format string, args ...any) error {
	return Wrap(cat, fmt.Errorf(format, args...))
}

func ConfigurationError(format string, args ...any) error {
	return Wrapf(Configuration, format, args...)
}

func SchedulingError(format string, args ...any) error {
	return Wrapf(Scheduling, format, args...)
}

func MessagingError(format string, args ...any) error {
	return Wrapf(Messaging, format, args...)
}

func PostConditionError(format string, args ...any) error {
	return Wrapf(PostCondition, format, args...)
}
