package store

import "errors"

// ErrNotFound marks a lookup miss. It is a normal outcome, not a fault;
// callers translate it into an absent result.
var ErrNotFound = errors.New("not found")

// ConnectionError wraps a failure to reach the datastore (dial failure,
// timeout, closed pool). Retry is a caller policy, never automatic.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "datastore connection: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps a statement-level failure (malformed statement,
// constraint violation, scan failure). Not retried, surfaced as-is.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return "datastore query: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }
