package services

import (
	"errors"
	"location-lookup/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(name, category, region string, lat, lon float64) domain.Location {
	return domain.Location{Name: name, Category: category, Region: region, Coords: domain.Coordinates{Lat: lat, Lon: lon}}
}

func resultNames(results []domain.QueryResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestByCoordinateEndToEndExample(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{
		loc("A", "Red", "", 25.0, 121.0),
		loc("B", "Red", "", 25.001, 121.001),
		loc("C", "Blue", "", 30.0, 121.0),
	})
	engine := NewQueryEngine(ds, 7500)

	results, err := engine.ByCoordinate(domain.Coordinates{Lat: 25.0, Lon: 121.0}, "Red")
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B"}, resultNames(results))
	require.NotNil(t, results[0].DistanceMeters)
	assert.Zero(t, *results[0].DistanceMeters)
	assert.InDelta(t, 150.07, *results[1].DistanceMeters, 0.01)
}

func TestByCoordinateAnyCategory(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{
		loc("A", "Red", "", 25.0, 121.0),
		loc("B", "Blue", "", 25.01, 121.0),
		loc("C", "Yellow", "", 25.02, 121.0),
		loc("Far", "Blue", "", 26.0, 121.0),
	})

	results, err := NewQueryEngine(ds, 7500).ByCoordinate(domain.Coordinates{Lat: 25.0, Lon: 121.0}, domain.AnyCategory)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, resultNames(results))
}

func TestByCoordinateNeverExceedsRadius(t *testing.T) {
	var locs []domain.Location
	for i := 0; i < 200; i++ {
		lat := 25.0 + float64(i)*0.0005
		lon := 121.0 + math.Mod(float64(i)*0.0007, 0.08)
		locs = append(locs, loc("P", "Red", "", lat, lon))
	}
	ref := domain.Coordinates{Lat: 25.0, Lon: 121.0}

	for _, radius := range []float64{100, 1000, 7500, 10000} {
		results, err := NewQueryEngine(domain.NewDataset(locs), radius).ByCoordinate(ref, "Red")
		require.NoError(t, err)
		require.NotEmpty(t, results)

		prev := -1.0
		for _, r := range results {
			d := *r.DistanceMeters
			assert.LessOrEqual(t, d, radius)
			assert.GreaterOrEqual(t, d, prev)
			prev = d
		}
	}
}

func TestByCoordinateStableOnTies(t *testing.T) {
	// Same point listed three times plus one nearer record.
	ds := domain.NewDataset([]domain.Location{
		loc("first", "Red", "", 25.01, 121.0),
		loc("second", "Red", "", 25.01, 121.0),
		loc("nearest", "Red", "", 25.0, 121.0),
		loc("third", "Red", "", 25.01, 121.0),
	})

	results, err := NewQueryEngine(ds, 7500).ByCoordinate(domain.Coordinates{Lat: 25.0, Lon: 121.0}, "Red")
	require.NoError(t, err)

	assert.Equal(t, []string{"nearest", "first", "second", "third"}, resultNames(results))
}

func TestByCoordinateRadiusIsInclusive(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{loc("edge", "Red", "", 25.01, 121.0)})
	d := Distance(25.0, 121.0, 25.01, 121.0)

	results, err := NewQueryEngine(ds, d).ByCoordinate(domain.Coordinates{Lat: 25.0, Lon: 121.0}, "Red")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestByCoordinateEmptyResultIsNotAnError(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{loc("A", "Red", "", 25.0, 121.0)})

	results, err := NewQueryEngine(ds, 7500).ByCoordinate(domain.Coordinates{Lat: 40.0, Lon: -74.0}, "Red")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestByCoordinateRejectsInvalidInput(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{loc("A", "Red", "", 25.0, 121.0)})
	engine := NewQueryEngine(ds, 7500)

	tests := []struct {
		name     string
		ref      domain.Coordinates
		category string
	}{
		{name: "empty category", ref: domain.Coordinates{Lat: 25, Lon: 121}, category: ""},
		{name: "nan latitude", ref: domain.Coordinates{Lat: math.NaN(), Lon: 121}, category: "Red"},
		{name: "infinite longitude", ref: domain.Coordinates{Lat: 25, Lon: math.Inf(1)}, category: "Red"},
		{name: "out of range", ref: domain.Coordinates{Lat: 120, Lon: 121}, category: "Red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.ByCoordinate(tt.ref, tt.category)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Nil(t, results)
		})
	}
}

func TestByRegionSortsByName(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{
		loc("delta", "Red", "North", 25.0, 121.0),
		loc("Bravo", "Red", "North", 26.0, 121.0),
		loc("alpha", "Red", "North", 27.0, 121.0),
		loc("Charlie", "Blue", "North", 28.0, 121.0),
		loc("Echo", "Red", "north", 29.0, 121.0),
		loc("Able", "Red", "South", 30.0, 121.0),
	})
	engine := NewQueryEngine(ds, 7500)

	results, err := engine.ByRegion("North", "Red")
	require.NoError(t, err)
	// Byte-wise order puts upper case before lower case.
	assert.Equal(t, []string{"Bravo", "alpha", "delta"}, resultNames(results))
	for _, r := range results {
		assert.Nil(t, r.DistanceMeters)
	}

	results, err = engine.ByRegion("North", domain.AnyCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bravo", "Charlie", "alpha", "delta"}, resultNames(results))

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Name, results[i].Name)
	}
}

func TestByRegionIgnoresRadius(t *testing.T) {
	ds := domain.NewDataset([]domain.Location{
		loc("Here", "Red", "Island", 25.0, 121.0),
		loc("There", "Red", "Island", -25.0, -59.0),
	})

	results, err := NewQueryEngine(ds, 10).ByRegion("Island", "Red")
	require.NoError(t, err)
	assert.Equal(t, []string{"Here", "There"}, resultNames(results))
}

func TestByRegionRejectsInvalidInput(t *testing.T) {
	engine := NewQueryEngine(domain.NewDataset(nil), 7500)

	_, err := engine.ByRegion("", "Red")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = engine.ByRegion("North", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	results, err := engine.ByRegion("North", "Red")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewQueryEngineDefaults(t *testing.T) {
	engine := NewQueryEngine(nil, 0)
	assert.Equal(t, DefaultRadiusMeters, engine.RadiusMeters())

	results, err := engine.ByCoordinate(domain.Coordinates{Lat: 0, Lon: 0}, domain.AnyCategory)
	require.NoError(t, err)
	assert.Empty(t, results)
}
