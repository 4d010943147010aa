package services

import (
	"context"
	"errors"
	"fmt"
	"location-lookup/internal/domain"
	"location-lookup/internal/platform/obs"
	"location-lookup/internal/ports"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Loader fetches the feed once and turns it into a Dataset.
//
// In lenient mode rows the parser rejects are logged and skipped. In strict
// mode any rejected row fails the load with domain.ErrMalformedFeed.
type Loader struct {
	Source ports.FeedSource
	Parser ports.FeedParser
	Strict bool
	Log    *zap.Logger
}

// LoadResult is the loaded dataset plus the rows that were skipped.
type LoadResult struct {
	Dataset  *domain.Dataset
	Rejected []*domain.RowError
}

func NewLoader(source ports.FeedSource, parser ports.FeedParser, strict bool, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Source: source, Parser: parser, Strict: strict, Log: log}
}

func (l *Loader) Load(ctx context.Context) (_ *LoadResult, err error) {
	defer obs.Time(ctx, l.Log, "dataset.Load")(&err)

	if l.Source == nil || l.Parser == nil {
		return nil, errors.New("load dataset: source and parser are required")
	}

	rc, err := l.Source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	defer rc.Close()

	parsed, err := l.Parser.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("load dataset: parse %s: %w", l.Source, err)
	}

	if len(parsed.Rejected) > 0 {
		if l.Strict {
			return nil, fmt.Errorf("load dataset: %s: %d rejected rows: %w",
				l.Source, len(parsed.Rejected), multierr.Append(domain.ErrMalformedFeed, parsed.Err()))
		}
		for _, re := range parsed.Rejected {
			l.Log.Warn("skipping feed row",
				zap.String("run_id", obs.RunID(ctx)),
				zap.String("feed", l.Source.String()),
				zap.Int("line", re.Line),
				zap.String("field", re.Field),
				zap.Error(re.Err),
			)
		}
	}

	ds := domain.NewDataset(parsed.Locations)
	l.Log.Info("dataset loaded",
		zap.String("run_id", obs.RunID(ctx)),
		zap.String("feed", l.Source.String()),
		zap.Int("locations", ds.Len()),
		zap.Int("rejected", len(parsed.Rejected)),
		zap.Int("categories", len(ds.Categories())),
		zap.Int("regions", len(ds.Regions())),
	)

	return &LoadResult{Dataset: ds, Rejected: parsed.Rejected}, nil
}
