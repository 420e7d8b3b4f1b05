package repository

import "errors"

var (
	// ErrNotFound indicates the requested gig, match, or talent does not exist.
	ErrNotFound = errors.New("not found")
)
