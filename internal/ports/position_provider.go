package ports

import (
	"context"
	"location-lookup/internal/domain"
)

// Contract for determining the user's current position.
type PositionProvider interface {
	// Return the current position, or an error wrapping
	// domain.ErrPositionUnavailable / domain.ErrPositionUnsupported.
	Locate(ctx context.Context) (domain.Coordinates, error)
}
