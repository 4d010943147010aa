package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// Stdin is the FileSource path that reads the feed from standard input.
const Stdin = "-"

// FileSource reads the feed from a local file, or from stdin when Path is "-".
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (s *FileSource) String() string {
	if s.Path == Stdin {
		return "stdin"
	}
	return s.Path
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed file %q: %w", s.Path, err)
	}
	return f, nil
}

// StaticSource serves a feed held in memory.
type StaticSource struct {
	Name string
	Data []byte
}

func NewStaticSource(name, data string) *StaticSource {
	return &StaticSource{Name: name, Data: []byte(data)}
}

func (s *StaticSource) String() string { return s.Name }

func (s *StaticSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}
