package workflow

import (
	"errors"
	"fmt"
)

// ErrGuardViolation is returned when an action is invoked while its control would
// be disabled: submitting without a selection, submitting twice, or processing with
// nothing selected. The call has no side effects.
var ErrGuardViolation = errors.New("workflow: action not available in current state")

// ErrEmptyBatch is returned when the audio picker hands over no files at all.
var ErrEmptyBatch = errors.New("workflow: no files presented")

// RejectedError reports a candidate that failed validation.
type RejectedError struct {
	Mode   Mode
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s selection rejected: %s", e.Mode, e.Reason)
}

// IsRejected reports whether err is a validation rejection.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}
