package dashboards

import "errors"

var (
	// ErrNotFound covers both a missing id and a record owned by someone
	// else, so lookups never leak whether a foreign id exists.
	ErrNotFound = errors.New("dashboard not found or access denied")

	ErrInvalidInput = errors.New("invalid input")
)
