package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"location-lookup/internal/domain"
	"location-lookup/internal/ports"
)

// CSVParser is the quoting-aware feed parser: fields may be wrapped in
// double quotes and contain commas, quotes and line breaks.
type CSVParser struct{}

func NewCSVParser() *CSVParser { return &CSVParser{} }

func (p *CSVParser) Parse(r io.Reader) (*ports.ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	res := &ports.ParseResult{}
	first := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				// The reader resynchronises on the next line.
				res.Rejected = append(res.Rejected, &domain.RowError{Line: pe.StartLine, Err: pe.Err})
				first = false
				continue
			}
			return nil, fmt.Errorf("csv parser: read: %w", err)
		}

		if first {
			first = false
			continue // header
		}
		if blank(fields) {
			continue
		}

		line, _ := cr.FieldPos(0)

		loc, rowErr := buildLocation(line, fields)
		if rowErr != nil {
			res.Rejected = append(res.Rejected, rowErr)
			continue
		}
		res.Locations = append(res.Locations, loc)
	}

	return res, nil
}
