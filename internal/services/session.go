package services

import (
	"context"
	"fmt"
	"location-lookup/internal/domain"
	"location-lookup/internal/ports"
)

// Mode tells which kind of query produced the current results.
type Mode int

const (
	ModeNone Mode = iota
	ModeCoordinate
	ModeRegion
)

// Settings are the deployment tunables of a Session.
type Settings struct {
	RadiusMeters float64
	PageSize     int
	Speeds       TravelSpeeds
}

// Session is the application state of one user: the loaded dataset, the
// query engine over it, and the page state of the latest query. Every
// search replaces the page state and starts again on page 1.
type Session struct {
	dataset  *domain.Dataset
	engine   *QueryEngine
	settings Settings

	mode      Mode
	reference *domain.Coordinates
	pages     *Paginator
}

func NewSession(dataset *domain.Dataset, settings Settings) *Session {
	engine := NewQueryEngine(dataset, settings.RadiusMeters)
	settings.RadiusMeters = engine.RadiusMeters()

	s := &Session{
		dataset:  dataset,
		engine:   engine,
		settings: settings,
	}
	s.pages = NewPaginator(nil, settings.PageSize, settings.Speeds)
	return s
}

func (s *Session) Dataset() *domain.Dataset { return s.dataset }

func (s *Session) Settings() Settings { return s.settings }

func (s *Session) Mode() Mode { return s.mode }

// Reference is the point of the latest coordinate search, nil otherwise.
func (s *Session) Reference() *domain.Coordinates { return s.reference }

// SearchNear parses the typed coordinates and runs a coordinate query.
func (s *Session) SearchNear(latText, lonText, category string) (PageView, error) {
	if category == "" {
		return PageView{}, fmt.Errorf("search near: category is required: %w", domain.ErrInvalidInput)
	}
	ref, err := domain.ParseCoordinates(latText, lonText)
	if err != nil {
		return PageView{}, fmt.Errorf("search near: %w", err)
	}
	return s.searchCoordinate(ref, category)
}

// SearchNearPosition asks provider for the current position and runs a
// coordinate query from there.
func (s *Session) SearchNearPosition(ctx context.Context, provider ports.PositionProvider, category string) (PageView, error) {
	if category == "" {
		return PageView{}, fmt.Errorf("search near position: category is required: %w", domain.ErrInvalidInput)
	}
	ref, err := provider.Locate(ctx)
	if err != nil {
		return PageView{}, fmt.Errorf("search near position: %w", err)
	}
	return s.searchCoordinate(ref, category)
}

// SearchFrom runs a coordinate query from an already known position.
func (s *Session) SearchFrom(ref domain.Coordinates, category string) (PageView, error) {
	return s.searchCoordinate(ref, category)
}

func (s *Session) searchCoordinate(ref domain.Coordinates, category string) (PageView, error) {
	results, err := s.engine.ByCoordinate(ref, category)
	if err != nil {
		return PageView{}, err
	}

	s.mode = ModeCoordinate
	s.reference = &ref
	s.pages = NewPaginator(results, s.settings.PageSize, s.settings.Speeds)
	return s.pages.Current(), nil
}

// SearchRegion runs a region query.
func (s *Session) SearchRegion(region, category string) (PageView, error) {
	results, err := s.engine.ByRegion(region, category)
	if err != nil {
		return PageView{}, err
	}

	s.mode = ModeRegion
	s.reference = nil
	s.pages = NewPaginator(results, s.settings.PageSize, s.settings.Speeds)
	return s.pages.Current(), nil
}

// Page renders the current page of the latest query.
func (s *Session) Page() PageView { return s.pages.Current() }

func (s *Session) Next() bool { return s.pages.Next() }

func (s *Session) Prev() bool { return s.pages.Prev() }

func (s *Session) Goto(n int) error { return s.pages.Goto(n) }

// All renders every result of the latest query.
func (s *Session) All() []ResultView { return Views(s.pages.Results(), s.pages.speeds) }
