package parser

import (
	"bufio"
	"fmt"
	"io"
	"location-lookup/internal/ports"
	"strings"
)

// SplitParser reads the feed line by line and splits every line on a
// literal comma. It has no quoting support: a value containing a comma
// shifts the columns and the row is rejected.
type SplitParser struct{}

func NewSplitParser() *SplitParser { return &SplitParser{} }

func (p *SplitParser) Parse(r io.Reader) (*ports.ParseResult, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	res := &ports.ParseResult{}
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue // header
		}

		text := strings.TrimRight(sc.Text(), "\r")
		fields := strings.Split(text, ",")
		if blank(fields) {
			continue
		}

		loc, rowErr := buildLocation(line, fields)
		if rowErr != nil {
			res.Rejected = append(res.Rejected, rowErr)
			continue
		}
		res.Locations = append(res.Locations, loc)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("split parser: read line %d: %w", line+1, err)
	}

	return res, nil
}
