package ports

import (
	"context"
	"io"
)

// Contract for retrieving the raw location feed.
type FeedSource interface {
	// Open the feed for reading. The caller closes the returned reader.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Human readable origin of the feed, used in logs and errors.
	String() string
}
