package notes

import "fmt"

// InvalidArgumentError reports a request argument rejected before any
// storage or classifier call: a non-positive limit, an empty text, a
// missing search query. Transport layers map it to a 400.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func invalidArgument(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

// ClassificationError reports a failed sentiment classification. The note
// was not persisted. Transport layers map it to a 502 since the failure is
// an upstream one, not the caller's.
type ClassificationError struct {
	Cause error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify note text: %v", e.Cause)
}

func (e *ClassificationError) Unwrap() error { return e.Cause }
