package parser

import (
	"fmt"
	"location-lookup/internal/ports"
	"strings"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	KindSplit = "split"
	KindCSV   = "csv"
)

// DetectFormat guesses the feed format from its location: XLSX when the
// path ends in .xlsx or the published export asks for output=xlsx, CSV
// otherwise.
func DetectFormat(location string) string {
	l := strings.ToLower(location)
	if strings.HasSuffix(l, ".xlsx") || strings.Contains(l, "output=xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// New returns the parser for a feed format. kind selects between the
// split-on-comma and the quoting-aware implementation for CSV feeds.
func New(format, kind string) (ports.FeedParser, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXParser(""), nil
	case FormatCSV, "":
		switch kind {
		case KindSplit, "":
			return NewSplitParser(), nil
		case KindCSV:
			return NewCSVParser(), nil
		}
		return nil, fmt.Errorf("new parser: unknown csv parser %q", kind)
	}
	return nil, fmt.Errorf("new parser: unknown feed format %q", format)
}
