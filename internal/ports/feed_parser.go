package ports

import (
	"io"
	"location-lookup/internal/domain"

	"go.uber.org/multierr"
)

// Outcome of parsing a feed: the rows that became Locations, in feed order,
// and one RowError per rejected row.
type ParseResult struct {
	Locations []domain.Location
	Rejected  []*domain.RowError
}

// Err combines the rejected rows into a single error, nil when every row parsed.
func (r *ParseResult) Err() error {
	var err error
	for _, re := range r.Rejected {
		err = multierr.Append(err, re)
	}
	return err
}

// Port: turns raw feed bytes into Location records.
// The first row is a header and is discarded.
type FeedParser interface {
	Parse(r io.Reader) (*ParseResult, error)
}
