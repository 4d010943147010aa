package services

import (
	"context"
	"errors"
	"io"
	"location-lookup/internal/adapters/feed"
	"location-lookup/internal/adapters/parser"
	"location-lookup/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const loaderFeed = "name,category,lat,lng,region\n" +
	"A,Red,25.0,121.0,North\n" +
	"B,Red,25.001,121.001,South\n" +
	"Broken,Red,north,121.0,North\n" +
	"C,Blue,30.0,121.0\n"

type failingSource struct{ err error }

func (s failingSource) Open(ctx context.Context) (io.ReadCloser, error) { return nil, s.err }
func (s failingSource) String() string                                  { return "failing" }

func TestLoaderLenientSkipsBadRows(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLoader(feed.NewStaticSource("fixture", loaderFeed), parser.NewSplitParser(), false, zap.New(core))

	res, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Dataset.Len())
	assert.Equal(t, []string{"Blue", "Red"}, res.Dataset.Categories())
	assert.Equal(t, []string{"North", "South"}, res.Dataset.Regions())
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 4, res.Rejected[0].Line)

	skipped := logs.FilterMessage("skipping feed row").All()
	require.Len(t, skipped, 1)
	assert.EqualValues(t, 4, skipped[0].ContextMap()["line"])
	assert.Equal(t, 1, logs.FilterMessage("dataset loaded").Len())
}

func TestLoaderStrictFailsOnBadRows(t *testing.T) {
	l := NewLoader(feed.NewStaticSource("fixture", loaderFeed), parser.NewSplitParser(), true, nil)

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedFeed))

	var re *domain.RowError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 4, re.Line)
}

func TestLoaderStrictAcceptsCleanFeed(t *testing.T) {
	clean := "name,category,lat,lng\nA,Red,25.0,121.0\n"
	l := NewLoader(feed.NewStaticSource("fixture", clean), parser.NewCSVParser(), true, nil)

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dataset.Len())
	assert.Empty(t, res.Rejected)
}

func TestLoaderPropagatesSourceError(t *testing.T) {
	cause := errors.New("connection refused")
	l := NewLoader(failingSource{err: cause}, parser.NewSplitParser(), false, nil)

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, cause)
}

func TestLoaderEmptyFeed(t *testing.T) {
	l := NewLoader(feed.NewStaticSource("fixture", ""), parser.NewSplitParser(), true, nil)

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Dataset.Len())
}

func TestLoaderRequiresCollaborators(t *testing.T) {
	_, err := NewLoader(nil, parser.NewSplitParser(), false, nil).Load(context.Background())
	assert.Error(t, err)
}
