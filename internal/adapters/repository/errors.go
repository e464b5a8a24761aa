package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("tournament not found")
	ErrNilState = errors.New("nil tournament state")
	ErrNoID     = errors.New("tournament state has no id")
)
