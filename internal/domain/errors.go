package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrOverlappingSleep = errors.New("overlapping sleep session detected")
	ErrInvalidInput     = errors.New("invalid input")
	ErrCoachUnavailable = errors.New("coach is not configured")
)
