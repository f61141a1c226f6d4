package accountlink

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied matches every *PermissionError.
	ErrPermissionDenied = errors.New("insufficient permissions")

	// ErrMalformedTimestamp is wrapped by the construction failure when the
	// link creation date does not match yyyy-MM-dd HH:mm:ss.
	ErrMalformedTimestamp = errors.New("malformed link timestamp")
)

// PermissionError is returned, without any network call, when the link
// does not hold the permission an operation requires.
type PermissionError struct {
	Permission string
}

func (e *PermissionError) Error() string {
	return "insufficient permissions: " + e.Permission
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// RemoteError reports any failure of a remote call: transport errors,
// unparseable or incomplete bodies, and non-2xx answers.
//
// Endpoint never carries the query string, so the link token stays out of
// error messages.
type RemoteError struct {
	Op         string
	Endpoint   string
	StatusCode int    // 0 when no response was received
	Remote     string // "error" field of a failure body, if any
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Remote != "":
		return fmt.Sprintf("(%s) API returned an error: %s", e.Endpoint, e.Remote)
	case e.Err != nil:
		return fmt.Sprintf("(%s) API error: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("(%s) API error", e.Endpoint)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }
