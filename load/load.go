// Package load provides a fluent entry point that chains a source
// selection, option toggles, and a terminal Parse call, so callers don't
// need to sequence source.Source construction, korni.ParseOptions, and
// env.New by hand.
package load

import (
	"fmt"
	"io"

	"github.com/ph1losof/korni"
	"github.com/ph1losof/korni/env"
	"github.com/ph1losof/korni/source"
)

// Builder accumulates a source and a set of parse options. Parse is the
// only method that reads the source; apart from the Find constructor,
// which searches the filesystem when it is called, everything before it
// is pure configuration.
type Builder struct {
	src  source.Source
	opts korni.ParseOptions
	err  error
}

// FromString starts a Builder backed by s verbatim.
func FromString(s string) *Builder {
	return &Builder{src: source.FromString(s)}
}

// FromBytes starts a Builder backed by b verbatim.
func FromBytes(b []byte) *Builder {
	return &Builder{src: source.FromBytes(b)}
}

// FromReader starts a Builder that drains r when Parse is called.
func FromReader(r io.Reader) *Builder {
	return &Builder{src: source.FromReader(r)}
}

// FromFile starts a Builder that reads path when Parse is called.
func FromFile(path string) *Builder {
	return &Builder{src: source.FromFile(path)}
}

// Find starts a Builder backed by the result of ascending from the
// working directory looking for filename. Unlike the other constructors,
// Find touches the filesystem immediately: if no ancestor contains
// filename, the error is captured and returned by the eventual Parse
// call.
func Find(filename string) *Builder {
	path, err := source.Find(filename, "")
	if err != nil {
		return &Builder{err: fmt.Errorf("load: %w", err)}
	}
	return &Builder{src: source.FromFile(path)}
}

// WithComments enables comment entries (and commented-out pair
// detection) in the eventual parse.
func (b *Builder) WithComments() *Builder {
	b.opts.IncludeComments = true
	return b
}

// WithPositions enables position tracking in the eventual parse.
func (b *Builder) WithPositions() *Builder {
	b.opts.TrackPositions = true
	return b
}

// Parse materializes the configured source's bytes and parses them,
// returning an Environment. It is the only method on Builder that
// performs I/O.
func (b *Builder) Parse() (*env.Environment, error) {
	if b.err != nil {
		return nil, b.err
	}
	raw, err := b.src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	entries := korni.ParseWithOptions(string(raw), b.opts)
	return env.New(entries), nil
}
