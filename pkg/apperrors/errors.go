package apperrors

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionBusy       = errors.New("session is already processing a turn")
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrStatementRejected = errors.New("statement rejected by execution guard")
)

// DataError reports malformed or incomplete tabular input handed to the
// insight aggregator, typically a missing or mistyped column. It is surfaced
// to the user as a turn-level error message; the session continues.
type DataError struct {
	Column string
	Reason string
}

func (e *DataError) Error() string {
	if e.Column == "" {
		return "malformed dataset: " + e.Reason
	}
	return "malformed dataset: column " + e.Column + ": " + e.Reason
}

// IsDataError reports whether err is (or wraps) a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
