package mutator

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a file that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError rejects caller input before any filesystem access.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid route %q: %s", e.Input, e.Reason)
}

func invalid(input, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeAppended
	OutcomeMethodExists
	OutcomeMoved
	OutcomeMerged
	OutcomeNoOp
	OutcomeMergeRequired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAppended:
		return "appended"
	case OutcomeMethodExists:
		return "method already exists"
	case OutcomeMoved:
		return "moved"
	case OutcomeMerged:
		return "merged"
	case OutcomeNoOp:
		return "unchanged"
	case OutcomeMergeRequired:
		return "merge required"
	default:
		return "unknown"
	}
}
