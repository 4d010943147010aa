package position

import (
	"context"
	"fmt"
	"location-lookup/internal/domain"
	"location-lookup/internal/ports"
	"strings"

	olc "github.com/google/open-location-code/go"
)

// Resolved positions are rounded like the coordinates shown to the user.
const decimals = 6

// Fixed answers Locate with a position given up front, either as a
// "lat,lng" pair or as a full plus code.
type Fixed struct {
	Position string
}

// Unsupported is the provider used when no position source is configured.
type Unsupported struct{}

func (Unsupported) Locate(ctx context.Context) (domain.Coordinates, error) {
	return domain.Coordinates{}, domain.ErrPositionUnsupported
}

// NewProvider returns a Fixed provider for pos, or Unsupported when pos
// is empty.
func NewProvider(pos string) ports.PositionProvider {
	if strings.TrimSpace(pos) == "" {
		return Unsupported{}
	}
	return &Fixed{Position: pos}
}

func (f *Fixed) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("locate: %w: %w", domain.ErrPositionUnavailable, err)
	}

	c, err := Decode(f.Position)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("locate: %w", err)
	}
	return c.Round(decimals), nil
}

// Decode parses a "lat,lng" pair or a full Open Location Code.
func Decode(pos string) (domain.Coordinates, error) {
	pos = strings.TrimSpace(pos)

	if lat, lng, ok := strings.Cut(pos, ","); ok {
		c, err := domain.ParseCoordinates(lat, lng)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("decode %q: %w: %w", pos, domain.ErrPositionUnavailable, err)
		}
		return c, nil
	}

	code := strings.ToUpper(pos)
	if err := olc.CheckFull(code); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode plus code %q: %w: %w", pos, domain.ErrPositionUnavailable, err)
	}

	area, err := olc.Decode(code)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode plus code %q: %w: %w", pos, domain.ErrPositionUnavailable, err)
	}

	lat, lng := area.Center()
	return domain.Coordinates{Lat: lat, Lon: lng}, nil
}
