package domain

import "errors"

var (
	// ErrUnauthorized marks a 401 answer from the remote API.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable marks a request that never got an HTTP answer.
	ErrUnavailable = errors.New("remote api unavailable")
)
