package parser

import (
	"bytes"
	"errors"
	"location-lookup/internal/domain"
	"location-lookup/internal/ports"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleFeed = "name,category,lat,lng,region\r\n" +
	" Park Gate , Red ,25.0,121.0, North \r\n" +
	"Library,Blue,25.001,121.001\r\n" +
	"\r\n" +
	"Bad Lat,Red,abc,121.0,North\r\n" +
	"Station,Yellow,30.0,121.0,South\r\n"

func names(res *ports.ParseResult) []string {
	out := make([]string, 0, len(res.Locations))
	for _, l := range res.Locations {
		out = append(out, l.Name)
	}
	return out
}

func TestSplitParserParsesPositionalRows(t *testing.T) {
	res, err := NewSplitParser().Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, []string{"Park Gate", "Library", "Station"}, names(res))

	first := res.Locations[0]
	assert.Equal(t, "Red", first.Category)
	assert.Equal(t, "North", first.Region)
	assert.Equal(t, domain.Coordinates{Lat: 25.0, Lon: 121.0}, first.Coords)

	assert.Empty(t, res.Locations[1].Region)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 5, res.Rejected[0].Line)
	assert.Equal(t, "latitude", res.Rejected[0].Field)
	assert.ErrorIs(t, res.Rejected[0], errNotNumeric)
	assert.Error(t, res.Err())
}

func TestSplitParserRejectsCommaInsideValue(t *testing.T) {
	feed := "name,category,lat,lng,region\n" +
		"\"Gate, East\",Red,25.0,121.0,North\n"

	res, err := NewSplitParser().Parse(strings.NewReader(feed))
	require.NoError(t, err)

	assert.Empty(t, res.Locations)
	require.Len(t, res.Rejected, 1)
	assert.ErrorIs(t, res.Rejected[0], errFieldCount)
}

func TestSplitParserHeaderOnly(t *testing.T) {
	res, err := NewSplitParser().Parse(strings.NewReader("name,category,lat,lng\n"))
	require.NoError(t, err)

	assert.Empty(t, res.Locations)
	assert.Empty(t, res.Rejected)
	assert.NoError(t, res.Err())
}

func TestCSVParserKeepsQuotedComma(t *testing.T) {
	feed := "name,category,lat,lng,region\n" +
		"\"Gate, East\",Red,25.0,121.0,North\n" +
		"Library,Blue,25.001,121.001\n"

	res, err := NewCSVParser().Parse(strings.NewReader(feed))
	require.NoError(t, err)

	assert.Equal(t, []string{"Gate, East", "Library"}, names(res))
	assert.Empty(t, res.Rejected)
}

func TestCSVParserReportsLineNumbers(t *testing.T) {
	feed := "name,category,lat,lng\n" +
		"A,Red,25.0,121.0\n" +
		"B,Red,95.0,121.0\n" +
		"C,,25.0,121.0\n"

	res, err := NewCSVParser().Parse(strings.NewReader(feed))
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, names(res))
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, 3, res.Rejected[0].Line)
	assert.ErrorIs(t, res.Rejected[0], errOutOfRange)
	assert.Equal(t, 4, res.Rejected[1].Line)
	assert.Equal(t, "category", res.Rejected[1].Field)
}

func TestCSVParserBareQuoteIsRowError(t *testing.T) {
	feed := "name,category,lat,lng\n" +
		"Gate \"East\",Red,25.0,121.0\n" +
		"B,Red,25.0,121.0\n"

	res, err := NewCSVParser().Parse(strings.NewReader(feed))
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, names(res))
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 2, res.Rejected[0].Line)
}

func TestXLSXParserReadsFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"name", "category", "lat", "lng", "region"},
		{"Park Gate", "Red", 25.5, 121.25, "North"},
		{"Library", "Blue", 25.75, 121.5},
		{"Broken", "Blue", "n/a", 121.5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	res, err := NewXLSXParser("").Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Park Gate", "Library"}, names(res))
	assert.Equal(t, domain.Coordinates{Lat: 25.5, Lon: 121.25}, res.Locations[0].Coords)
	assert.Equal(t, "North", res.Locations[0].Region)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 4, res.Rejected[0].Line)
}

func TestXLSXParserRejectsGarbage(t *testing.T) {
	_, err := NewXLSXParser("").Parse(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestNewSelectsParser(t *testing.T) {
	p, err := New(FormatCSV, KindSplit)
	require.NoError(t, err)
	assert.IsType(t, &SplitParser{}, p)

	p, err = New("", "")
	require.NoError(t, err)
	assert.IsType(t, &SplitParser{}, p)

	p, err = New(FormatCSV, KindCSV)
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	p, err = New(FormatXLSX, KindSplit)
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, p)

	_, err = New("json", "")
	assert.Error(t, err)
	_, err = New(FormatCSV, "regex")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("https://docs.google.com/spreadsheets/d/e/x/pub?output=csv"))
	assert.Equal(t, FormatXLSX, DetectFormat("https://docs.google.com/spreadsheets/d/e/x/pub?output=xlsx"))
	assert.Equal(t, FormatXLSX, DetectFormat("data/Pots.XLSX"))
	assert.Equal(t, FormatCSV, DetectFormat("data/pots.csv"))
}

func TestParseResultErrCombinesRows(t *testing.T) {
	res := &ports.ParseResult{Rejected: []*domain.RowError{
		{Line: 2, Err: errEmptyField},
		{Line: 3, Err: errNotNumeric},
	}}

	err := res.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errEmptyField))
	assert.True(t, errors.Is(err, errNotNumeric))
}
