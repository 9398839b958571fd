package sheets

import "fmt"

// ValidationError is returned for any rejected input: malformed A1
// expressions, unknown sheet names, out-of-range rule indices, unknown
// condition types, malformed hex colors, and rules left invalid after a
// merge. It is always raised before any remote write is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
