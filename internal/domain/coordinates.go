package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether both components are finite and inside the
// [-90,90] x [-180,180] range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Round returns the coordinates rounded to the given number of decimals.
func (c Coordinates) Round(decimals int) Coordinates {
	p := math.Pow(10, float64(decimals))
	return Coordinates{
		Lat: math.Round(c.Lat*p) / p,
		Lon: math.Round(c.Lon*p) / p,
	}
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// ParseCoordinates turns user supplied latitude/longitude text into
// Coordinates. Non-numeric, non-finite or out-of-range values are reported
// as ErrInvalidInput.
func ParseCoordinates(latText, lonText string) (Coordinates, error) {
	lat, err := parseDegrees(latText)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: latitude %q: %w", latText, ErrInvalidInput)
	}

	lon, err := parseDegrees(lonText)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: longitude %q: %w", lonText, ErrInvalidInput)
	}

	c := Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("parse coordinates: %s out of range: %w", c, ErrInvalidInput)
	}
	return c, nil
}

func parseDegrees(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(s, 64)
}
