package service

import "errors"

// Sentinel error kinds returned by Service. The HTTP layer maps them to
// status codes.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNotFound         = errors.New("not found")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnknownPreset    = errors.New("unknown preset")
)
