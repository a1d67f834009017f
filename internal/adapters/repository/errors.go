package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidComponent = errors.New("invalid component")
	ErrInvalidBuild     = errors.New("invalid build")
	ErrInvalidSeed      = errors.New("invalid seed data")
	ErrInvalidLimit     = errors.New("invalid limit")
)
