package gcs

import "fmt"

// UnexpectedError is the error type for user errors in building a model:
// duplicate variables in an all-different, an unsupported variable shape
// passed to a propagator, mismatched array lengths, and similar misuse. No
// constraint constructor in this package returns it: Post does not check
// its arguments for these cases.
type UnexpectedError struct {
	Message string
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %s", e.Message)
}

// NewUnexpectedError constructs an UnexpectedError with a formatted message.
func NewUnexpectedError(format string, args ...interface{}) *UnexpectedError {
	return &UnexpectedError{Message: fmt.Sprintf(format, args...)}
}

// UnimplementedError is the error type for a code path that legitimately
// cannot be handled (e.g. a view variable appearing inside a reified
// context). Unlike Contradiction, it marks a user-visible bug, never an
// expected outcome. No code path in this package returns one.
type UnimplementedError struct {
	Where string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented: %s", e.Where)
}

// NewUnimplementedError constructs an UnimplementedError.
func NewUnimplementedError(where string) *UnimplementedError {
	return &UnimplementedError{Where: where}
}

// ProofError is raised by the proof layer when creating or writing the
// .opb/.pbp files fails. An error while opening the proof is returned by
// SolveWith; an error while concluding it is only logged. A write after
// Conclude is not detected.
type ProofError struct {
	Message string
}

func (e *ProofError) Error() string {
	return fmt.Sprintf("proof error: %s", e.Message)
}

// NewProofError constructs a ProofError with a formatted message.
func NewProofError(format string, args ...interface{}) *ProofError {
	return &ProofError{Message: fmt.Sprintf(format, args...)}
}
