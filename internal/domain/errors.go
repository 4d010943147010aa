package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a query that was refused before it ran:
	// missing category or region, unusable reference coordinates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPositionUnavailable is returned when a position was requested but
	// could not be determined.
	ErrPositionUnavailable = errors.New("position unavailable")

	// ErrPositionUnsupported is returned when no position provider is
	// configured.
	ErrPositionUnsupported = errors.New("position lookup not supported")

	// ErrMalformedFeed wraps row errors when the feed is loaded in strict mode.
	ErrMalformedFeed = errors.New("malformed feed")

	ErrPageOutOfRange = errors.New("page out of range")
)

// RowError describes a feed row that could not be turned into a Location.
type RowError struct {
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
