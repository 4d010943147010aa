package services

import (
	"cmp"
	"fmt"
	"location-lookup/internal/domain"
	"slices"
	"strings"
)

const (
	// DefaultRadiusMeters is the coordinate-mode cutoff of the current
	// deployment; the first one used 10 000 m.
	DefaultRadiusMeters = 7500.0
)

// QueryEngine answers coordinate and region queries over a Dataset.
// It holds no per-query state and does not modify the dataset.
type QueryEngine struct {
	dataset      *domain.Dataset
	radiusMeters float64
}

func NewQueryEngine(dataset *domain.Dataset, radiusMeters float64) *QueryEngine {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	if dataset == nil {
		dataset = domain.NewDataset(nil)
	}
	return &QueryEngine{dataset: dataset, radiusMeters: radiusMeters}
}

func (e *QueryEngine) RadiusMeters() float64 { return e.radiusMeters }

// ByCoordinate returns the records matching category within the radius of
// ref, nearest first. Records at equal distance keep dataset order.
func (e *QueryEngine) ByCoordinate(ref domain.Coordinates, category string) ([]domain.QueryResult, error) {
	if err := validateCategory(category); err != nil {
		return nil, fmt.Errorf("query by coordinate: %w", err)
	}
	if !ref.Valid() {
		return nil, fmt.Errorf("query by coordinate: reference %s: %w", ref, domain.ErrInvalidInput)
	}

	results := []domain.QueryResult{}
	for _, loc := range e.dataset.Locations() {
		if !loc.MatchesCategory(category) {
			continue
		}

		d := DistanceBetween(ref, loc.Coords)
		// NaN never passes this comparison.
		if !(d <= e.radiusMeters) {
			continue
		}

		results = append(results, domain.QueryResult{Location: loc, DistanceMeters: &d})
	}

	slices.SortStableFunc(results, func(a, b domain.QueryResult) int {
		return cmp.Compare(*a.DistanceMeters, *b.DistanceMeters)
	})

	return results, nil
}

// ByRegion returns the records whose region and category both match
// exactly, sorted by name. No distance is computed.
func (e *QueryEngine) ByRegion(region, category string) ([]domain.QueryResult, error) {
	if err := validateCategory(category); err != nil {
		return nil, fmt.Errorf("query by region: %w", err)
	}
	if region == "" {
		return nil, fmt.Errorf("query by region: region is required: %w", domain.ErrInvalidInput)
	}

	results := []domain.QueryResult{}
	for _, loc := range e.dataset.Locations() {
		if loc.Region != region || !loc.MatchesCategory(category) {
			continue
		}
		results = append(results, domain.QueryResult{Location: loc})
	}

	slices.SortStableFunc(results, func(a, b domain.QueryResult) int {
		return strings.Compare(a.Name, b.Name)
	})

	return results, nil
}

func validateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is required: %w", domain.ErrInvalidInput)
	}
	return nil
}
