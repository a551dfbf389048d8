package collector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LineSource yields the raw lines of one export, already past its preamble.
// ReadLine returns io.EOF at the end of input.
type LineSource interface {
	Name() string
	DateLabel() string
	ReadLine() (string, error)
	LineNumber() int64
	Close() error
}

// Preamble describes the block of lines a broker puts before the column header.
type Preamble struct {
	SkipLines int // lines to consume before the column header
	DateLine  int // zero-based index of the line holding the session date, -1 for none
}

// FileSource reads lines from a file on disk.
type FileSource struct {
	path      string
	file      *os.File
	reader    *bufio.Reader
	line      int64
	dateLabel string
	closed    bool
}

// OpenFile opens path and consumes its preamble. A file that ends inside the
// preamble is malformed and reported as a ResourceError.
func OpenFile(path string, pre Preamble) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: path, Err: err}
	}
	s := &FileSource{path: path, file: f, reader: bufio.NewReader(f)}

	for i := 0; i < pre.SkipLines; i++ {
		line, err := s.ReadLine()
		if err != nil {
			_ = s.Close()
			if errors.Is(err, io.EOF) {
				return nil, &ResourceError{Op: "read preamble", Path: path,
					Err: fmt.Errorf("file ends after %d of %d preamble lines: %w", i, pre.SkipLines, io.ErrUnexpectedEOF)}
			}
			return nil, err
		}
		if i == pre.DateLine {
			s.dateLabel = line
		}
	}
	return s, nil
}

func (s *FileSource) Name() string { return filepath.Base(s.path) }

// Path returns the path the source was opened with.
func (s *FileSource) Path() string { return s.path }

func (s *FileSource) DateLabel() string { return s.dateLabel }

// LineNumber returns the physical, one-based number of the last line read.
func (s *FileSource) LineNumber() int64 { return s.line }

func (s *FileSource) ReadLine() (string, error) {
	if s.closed {
		return "", &ResourceError{Op: "read", Path: s.path, Err: os.ErrClosed}
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", &ResourceError{Op: "read", Path: s.path, Err: err}
		}
		if line == "" {
			return "", io.EOF
		}
	}
	s.line++
	line = strings.TrimRight(line, "\r\n")
	if s.line == 1 {
		line = strings.TrimPrefix(line, "\ufeff")
	}
	return line, nil
}

// Close releases the file. Calling it again is a no-op.
func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.file.Close(); err != nil {
		return &ResourceError{Op: "close", Path: s.path, Err: err}
	}
	return nil
}

// SliceSource serves lines from memory. It is used for tests and for
// feeding already-split input.
type SliceSource struct {
	name      string
	dateLabel string
	lines     []string
	pos       int
	closes    int
}

// NewSliceSource creates a source over lines, which start at the column header.
func NewSliceSource(name, dateLabel string, lines []string) *SliceSource {
	return &SliceSource{name: name, dateLabel: dateLabel, lines: lines}
}

func (s *SliceSource) Name() string      { return s.name }
func (s *SliceSource) DateLabel() string { return s.dateLabel }
func (s *SliceSource) LineNumber() int64 { return int64(s.pos) }

func (s *SliceSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	s.pos++
	return s.lines[s.pos-1], nil
}

func (s *SliceSource) Close() error {
	s.closes++
	return nil
}

// Closes reports how many times Close was called.
func (s *SliceSource) Closes() int { return s.closes }
