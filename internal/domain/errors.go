package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable indicates the variety exists but cannot be ordered right now.
	ErrUnavailable = errors.New("variety unavailable")
)
