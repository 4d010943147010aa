package domain

// AnyCategory is the category filter value that matches every record.
const AnyCategory = "any"

// Represents a single place loaded from the feed.
// Region is empty when the feed row has no region column.
type Location struct {
	Name     string
	Category string
	Region   string
	Coords   Coordinates
}

// MatchesCategory reports whether the location passes the category filter.
func (l Location) MatchesCategory(category string) bool {
	return category == AnyCategory || l.Category == category
}

// A Location matched by a query. DistanceMeters is nil when the query had
// no reference point (region search).
type QueryResult struct {
	Location
	DistanceMeters *float64
}
