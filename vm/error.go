package vm

import (
	"errors"
	"fmt"
)

// Common compilation and execution errors
var (
	// ErrUnknownRef indicates a Ref to a group name that has not been
	// declared earlier in the pattern
	ErrUnknownRef = errors.New("reference to undeclared group")

	// ErrEmptyName indicates a Named group with an empty name
	ErrEmptyName = errors.New("named group requires a non-empty name")

	// ErrDuplicateName indicates two Named groups sharing one name
	ErrDuplicateName = errors.New("duplicate group name")

	// ErrNoAlternatives indicates an Or with no alternatives
	ErrNoAlternatives = errors.New("alternation requires at least one alternative")

	// ErrNilPredicate indicates a Check built without a predicate
	ErrNilPredicate = errors.New("check requires a predicate")

	// ErrTooComplex indicates the search exceeded its step budget
	ErrTooComplex = errors.New("pattern too complex: step budget exceeded")
)

// BuildError wraps a compile-time pattern error with the offending name
// or position for context.
type BuildError struct {
	Detail string
	Err    error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("treegex: %v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("treegex: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}

func buildErr(err error, format string, args ...any) *BuildError {
	return &BuildError{Detail: fmt.Sprintf(format, args...), Err: err}
}
