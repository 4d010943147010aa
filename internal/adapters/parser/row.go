package parser

import (
	"errors"
	"fmt"
	"location-lookup/internal/domain"
	"strconv"
	"strings"
)

// Positional column layout of the feed: name, category, latitude,
// longitude and an optional region.
const (
	colName = iota
	colCategory
	colLatitude
	colLongitude
	colRegion

	minFields = colLongitude + 1
	maxFields = colRegion + 1
)

var (
	errFieldCount = errors.New("unexpected field count")
	errEmptyField = errors.New("empty value")
	errNotNumeric = errors.New("not a number")
	errOutOfRange = errors.New("coordinate out of range")
)

// blank reports whether a row carries no data at all.
func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// buildLocation maps one feed row to a Location. line is the 1-based line
// number used in the returned RowError.
func buildLocation(line int, fields []string) (domain.Location, *domain.RowError) {
	if len(fields) < minFields || len(fields) > maxFields {
		return domain.Location{}, &domain.RowError{
			Line: line,
			Err:  fmt.Errorf("%w: got %d, want %d or %d", errFieldCount, len(fields), minFields, maxFields),
		}
	}

	name := strings.TrimSpace(fields[colName])
	if name == "" {
		return domain.Location{}, &domain.RowError{Line: line, Field: "name", Err: errEmptyField}
	}

	category := strings.TrimSpace(fields[colCategory])
	if category == "" {
		return domain.Location{}, &domain.RowError{Line: line, Field: "category", Err: errEmptyField}
	}

	lat, err := parseFloat(fields[colLatitude])
	if err != nil {
		return domain.Location{}, &domain.RowError{Line: line, Field: "latitude", Err: err}
	}

	lon, err := parseFloat(fields[colLongitude])
	if err != nil {
		return domain.Location{}, &domain.RowError{Line: line, Field: "longitude", Err: err}
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if !coords.Valid() {
		return domain.Location{}, &domain.RowError{
			Line: line,
			Err:  fmt.Errorf("%w: %s", errOutOfRange, coords),
		}
	}

	var region string
	if len(fields) > colRegion {
		region = strings.TrimSpace(fields[colRegion])
	}

	return domain.Location{
		Name:     name,
		Category: category,
		Region:   region,
		Coords:   coords,
	}, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyField
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotNumeric, s)
	}
	return v, nil
}
