package parser

import (
	"errors"
	"fmt"
	"io"
	"location-lookup/internal/ports"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the spreadsheet's XLSX export. Rows come from the named
// sheet, or the first sheet of the workbook when Sheet is empty.
type XLSXParser struct {
	Sheet string
}

func NewXLSXParser(sheet string) *XLSXParser { return &XLSXParser{Sheet: sheet} }

func (p *XLSXParser) Parse(r io.Reader) (_ *ports.ParseResult, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("xlsx parser: close workbook: %w", cerr)
		}
	}()

	sheet := p.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("xlsx parser: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: read sheet %q: %w", sheet, err)
	}

	res := &ports.ParseResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if blank(row) {
			continue
		}

		loc, rowErr := buildLocation(i+1, row)
		if rowErr != nil {
			res.Rejected = append(res.Rejected, rowErr)
			continue
		}
		res.Locations = append(res.Locations, loc)
	}

	return res, nil
}
