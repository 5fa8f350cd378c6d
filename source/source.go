// Package source provides the seam between raw bytes and the parser core:
// a small interface producing a fully materialized buffer, with
// constructors for the common cases and an ancestor-directory file finder
// in the style of direnv-like tools.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source produces a contiguous byte buffer. Validation and parsing begin
// only after Bytes returns; none of the parser core ever sees a partial
// read.
type Source interface {
	Bytes() ([]byte, error)
}

// ErrNotFound is wrapped with the last directory checked when Find
// exhausts the ancestor chain without finding filename.
var ErrNotFound = errors.New("source: file not found in any ancestor directory")

type stringSource string

func (s stringSource) Bytes() ([]byte, error) {
	return []byte(s), nil
}

// FromString returns a Source that serves s verbatim.
func FromString(s string) Source {
	return stringSource(s)
}

type bytesSource []byte

func (b bytesSource) Bytes() ([]byte, error) {
	return b, nil
}

// FromBytes returns a Source that serves b verbatim. b is not copied; the
// caller must not mutate it afterward.
func FromBytes(b []byte) Source {
	return bytesSource(b)
}

type readerSource struct {
	r io.Reader
}

func (rs readerSource) Bytes() ([]byte, error) {
	b, err := io.ReadAll(rs.r)
	if err != nil {
		return nil, fmt.Errorf("source: read: %w", err)
	}
	return b, nil
}

// FromReader returns a Source that fully drains r the first (and only)
// time Bytes is called.
func FromReader(r io.Reader) Source {
	return readerSource{r: r}
}

type fileSource struct {
	path string
}

func (fs fileSource) Bytes() ([]byte, error) {
	b, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("source: read %q: %w", fs.path, err)
	}
	return b, nil
}

// FromFile returns a Source that reads path on demand.
func FromFile(path string) Source {
	return fileSource{path: path}
}

// Find ascends from startDir (the working directory if startDir is
// empty) through parent directories looking for a regular file named
// filename, returning its path. It stops at the filesystem root and
// returns an error wrapping ErrNotFound if no match is found.
func Find(filename, startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("source: determine working directory: %w", err)
		}
		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("source: resolve %q: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, filename)
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: last checked %q", ErrNotFound, dir)
		}
		dir = parent
	}
}
