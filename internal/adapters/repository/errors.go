package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("ratee not found")
	ErrClosed   = errors.New("store closed")
)
