package render

import (
	"fmt"
	"io"
	"location-lookup/internal/domain"
	"location-lookup/internal/services"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	EmptyNearby = "No matching locations found nearby."
	EmptyRegion = "No matching locations found in this region."
)

// Names wider than this are truncated in the table; the export keeps them whole.
const maxNameWidth = 32

type column struct {
	title string
	right bool
	value func(services.ResultView) string
}

var (
	nameColumn     = column{title: "Name", value: func(v services.ResultView) string { return runewidth.Truncate(v.Name, maxNameWidth, "…") }}
	categoryColumn = column{title: "Category", value: func(v services.ResultView) string { return v.Category }}
	regionColumn   = column{title: "Region", value: func(v services.ResultView) string { return v.Region }}
	coordsColumn   = column{title: "Lat,Lng", value: func(v services.ResultView) string { return FormatCoords(v.Coords) }}
	distanceColumn = column{title: "Distance", right: true, value: func(v services.ResultView) string { return optional(v.DistanceMeters, "m") }}
	walkColumn     = column{title: "Walk", right: true, value: func(v services.ResultView) string { return optional(v.WalkMinutes, "min") }}
	rideColumn     = column{title: "Ride", right: true, value: func(v services.ResultView) string { return optional(v.RideMinutes, "min") }}
	mapColumn      = column{title: "Map", value: func(v services.ResultView) string { return v.MapURL }}
)

func columnsFor(mode services.Mode) []column {
	if mode == services.ModeRegion {
		return []column{nameColumn, categoryColumn, regionColumn, coordsColumn, mapColumn}
	}
	return []column{nameColumn, categoryColumn, coordsColumn, distanceColumn, walkColumn, rideColumn, mapColumn}
}

// Page writes one page of results as an aligned text table, followed by a
// page indicator. An empty page writes the empty-result message instead.
func Page(w io.Writer, mode services.Mode, page services.PageView) error {
	if page.TotalResults == 0 {
		msg := EmptyNearby
		if mode == services.ModeRegion {
			msg = EmptyRegion
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	cols := columnsFor(mode)
	header := make([]string, 0, len(cols)+1)
	header = append(header, "#")
	for _, c := range cols {
		header = append(header, c.title)
	}

	rows := make([][]string, 0, len(page.Items))
	for i, item := range page.Items {
		row := make([]string, 0, len(cols)+1)
		row = append(row, strconv.Itoa(page.Offset+i+1))
		for _, c := range cols {
			row = append(row, c.value(item))
		}
		rows = append(rows, row)
	}

	right := make([]bool, 0, len(cols)+1)
	right = append(right, true)
	for _, c := range cols {
		right = append(right, c.right)
	}

	var b strings.Builder
	writeTable(&b, header, rows, right)
	fmt.Fprintf(&b, "Page %d of %d (%d results)\n", page.Number, page.TotalPages, page.TotalResults)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, header []string, rows [][]string, right []bool) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			switch {
			case right[i]:
				b.WriteString(runewidth.FillLeft(cell, widths[i]))
			case i == len(cells)-1:
				b.WriteString(cell)
			default:
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	line(header)
	sep := make([]string, len(header))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
}

// FormatCoords prints coordinates with 6 decimals, the precision positions
// are resolved to.
func FormatCoords(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

func optional(v *int, unit string) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v) + " " + unit
}

// Options writes a selection list, one value per line, under title.
func Options(w io.Writer, title string, values []string) error {
	var b strings.Builder
	b.WriteString(title + ":\n")
	for _, v := range values {
		b.WriteString("  " + v + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Notice writes a blocking user-facing message, e.g. a validation failure.
func Notice(w io.Writer, msg string) {
	fmt.Fprintln(w, "locator:", msg)
}
