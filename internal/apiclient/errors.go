package apiclient

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindUnauthorized ErrorKind = "unauthorized"
	KindServer       ErrorKind = "server"
	KindDecode       ErrorKind = "decode"
)

// Error describes a failed call to the remote API.
type Error struct {
	Op     string
	Kind   ErrorKind
	Status int
	// Detail is the "detail" field of the API error body, if any.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "api client error"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, 0 when there is none.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
