package service

import "errors"

var (
	// ErrNoStore indicates the service was built without a persistence backend.
	ErrNoStore = errors.New("store is required")
	// ErrInvalidStatus indicates an unknown match status.
	ErrInvalidStatus = errors.New("invalid match status")
	// ErrInvalidRating indicates a feedback rating outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
