package services

import (
	"fmt"
	"location-lookup/internal/domain"
	"math"
)

const DefaultPageSize = 5

// MapsDirectionsURL is the map-routing endpoint results link out to; the
// destination is appended as "<lat>,<lng>".
const MapsDirectionsURL = "https://www.google.com/maps/dir/?api=1&destination="

// Average travel speeds used for the time estimates.
type TravelSpeeds struct {
	WalkMetersPerMinute float64
	RideMetersPerMinute float64
}

// DefaultTravelSpeeds: walking about 80 m/min, riding about 250 m/min.
// Some deployments ride at 500 m/min.
var DefaultTravelSpeeds = TravelSpeeds{WalkMetersPerMinute: 80, RideMetersPerMinute: 250}

// Display fields of one result. Distance and travel times are nil for
// region results.
type ResultView struct {
	Name           string
	Category       string
	Region         string
	Coords         domain.Coordinates
	DistanceMeters *int
	WalkMinutes    *int
	RideMinutes    *int
	MapURL         string
}

// One page of results plus the state of the navigation controls. Offset is
// the index of the first item within the full result list.
type PageView struct {
	Number       int
	Offset       int
	TotalPages   int
	TotalResults int
	Items        []ResultView
	HasPrev      bool
	HasNext      bool
}

// Paginator slices a result list into fixed-size pages. It starts on page
// 1 and only moves on explicit Next, Prev or Goto calls.
type Paginator struct {
	results []domain.QueryResult
	page    int
	size    int
	speeds  TravelSpeeds
}

func NewPaginator(results []domain.QueryResult, size int, speeds TravelSpeeds) *Paginator {
	if size < 1 {
		size = DefaultPageSize
	}
	if speeds.WalkMetersPerMinute <= 0 {
		speeds.WalkMetersPerMinute = DefaultTravelSpeeds.WalkMetersPerMinute
	}
	if speeds.RideMetersPerMinute <= 0 {
		speeds.RideMetersPerMinute = DefaultTravelSpeeds.RideMetersPerMinute
	}
	return &Paginator{results: results, page: 1, size: size, speeds: speeds}
}

// TotalPages is ceil(len(results) / size); zero for an empty result.
func (p *Paginator) TotalPages() int {
	return (len(p.results) + p.size - 1) / p.size
}

func (p *Paginator) PageNumber() int { return p.page }

func (p *Paginator) PageSize() int { return p.size }

func (p *Paginator) Len() int { return len(p.results) }

// Results returns every result, unpaged.
func (p *Paginator) Results() []domain.QueryResult { return p.results }

func (p *Paginator) HasPrev() bool { return p.page > 1 }

func (p *Paginator) HasNext() bool { return p.page < p.TotalPages() }

// Next advances one page. It reports false and stays put on the last page.
func (p *Paginator) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.page++
	return true
}

// Prev goes back one page. It reports false and stays put on page 1.
func (p *Paginator) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.page--
	return true
}

// Goto jumps to page n, which must be in [1, TotalPages].
func (p *Paginator) Goto(n int) error {
	if n < 1 || n > p.TotalPages() {
		return fmt.Errorf("goto page %d of %d: %w", n, p.TotalPages(), domain.ErrPageOutOfRange)
	}
	p.page = n
	return nil
}

// Current renders the current page.
func (p *Paginator) Current() PageView {
	start := (p.page - 1) * p.size
	end := min(start+p.size, len(p.results))
	if start > end {
		start = end
	}

	return PageView{
		Number:       p.page,
		Offset:       start,
		TotalPages:   p.TotalPages(),
		TotalResults: len(p.results),
		Items:        Views(p.results[start:end], p.speeds),
		HasPrev:      p.HasPrev(),
		HasNext:      p.HasNext(),
	}
}

// Views renders results without paging, e.g. for export.
func Views(results []domain.QueryResult, speeds TravelSpeeds) []ResultView {
	out := make([]ResultView, 0, len(results))
	for _, r := range results {
		out = append(out, NewResultView(r, speeds))
	}
	return out
}

func NewResultView(r domain.QueryResult, speeds TravelSpeeds) ResultView {
	v := ResultView{
		Name:     r.Name,
		Category: r.Category,
		Region:   r.Region,
		Coords:   r.Coords,
		MapURL:   MapURL(r.Coords),
	}

	if r.DistanceMeters != nil {
		d := *r.DistanceMeters
		meters := int(math.Round(d))
		walk := int(math.Round(d / speeds.WalkMetersPerMinute))
		ride := int(math.Round(d / speeds.RideMetersPerMinute))
		v.DistanceMeters = &meters
		v.WalkMinutes = &walk
		v.RideMinutes = &ride
	}

	return v
}

// MapURL links to directions towards c.
func MapURL(c domain.Coordinates) string {
	return MapsDirectionsURL + c.String()
}
