package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Exit statuses used when a command fails because of the NVR.
const (
	ExitAuth    = 2 // Login rejected or session expired
	ExitRequest = 3 // Transport failure or unexpected HTTP status
	ExitDecode  = 4 // Response body could not be understood
)

// Error is returned by every client call that fails. Code doubles as the
// process exit status.
type Error struct {
	Code   int
	Op     string
	Status int // HTTP status, 0 if the request never completed
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// statusError classifies a non-2xx response.
func statusError(op string, status int, body string) *Error {
	code := ExitRequest
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		code = ExitAuth
	}
	if body == "" {
		body = http.StatusText(status)
	}
	return &Error{Code: code, Op: op, Status: status, Err: errors.New(body)}
}

// ExitCode returns the exit status carried by err, or 1 if err did not come
// from the client.
func ExitCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 1
}

// IsAuthError reports whether err means the session must be renewed.
func IsAuthError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ExitAuth
}
