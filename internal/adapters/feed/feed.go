package feed

import (
	"location-lookup/internal/ports"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options tune the HTTP source; they are ignored for file feeds.
type Options struct {
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// NewSource picks the source for a feed location: HTTP(S) URLs are fetched,
// anything else is read as a local path ("-" for stdin).
func NewSource(location string, opts Options, log *zap.Logger) (ports.FeedSource, error) {
	l := strings.ToLower(location)
	if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
		return NewHTTPSource(location, opts.Timeout, opts.MaxAttempts, opts.Backoff, log)
	}
	return NewFileSource(location), nil
}
