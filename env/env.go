// Package env exposes a parsed entry stream as a lookup-friendly facade:
// a map-like view over KEY=VALUE pairs plus the errors recovered along
// the way, resolving duplicate keys last-write-wins the way a shell does
// when it sources a file top to bottom.
package env

import (
	"iter"

	"github.com/ph1losof/korni"
)

// Environment wraps a parsed entry list. It retains the entries in source
// order and builds its lookup index once, at construction time.
type Environment struct {
	entries []korni.Entry
	index   map[string]int // key -> index into pairs, last-write-wins
	pairs   []korni.KeyValuePair
	errors  []*korni.ParseError
}

// New builds an Environment from an already-parsed entry list.
func New(entries []korni.Entry) *Environment {
	e := &Environment{
		entries: entries,
		index:   make(map[string]int),
	}
	for _, entry := range entries {
		switch entry.Kind {
		case korni.EntryPair:
			if idx, ok := e.index[entry.Pair.Key]; ok {
				e.pairs[idx] = entry.Pair
			} else {
				e.index[entry.Pair.Key] = len(e.pairs)
				e.pairs = append(e.pairs, entry.Pair)
			}
		case korni.EntryError:
			e.errors = append(e.errors, entry.Err)
		}
	}
	return e
}

// Parse is a convenience constructor that parses input with options and
// wraps the result.
func Parse(input string, options korni.ParseOptions) *Environment {
	return New(korni.ParseWithOptions(input, options))
}

// Get returns the value for key and whether it was found.
func (e *Environment) Get(key string) (string, bool) {
	idx, ok := e.index[key]
	if !ok {
		return "", false
	}
	return e.pairs[idx].Value, true
}

// GetOr returns the value for key, or fallback if key was not set.
func (e *Environment) GetOr(key, fallback string) string {
	if v, ok := e.Get(key); ok {
		return v
	}
	return fallback
}

// GetEntry returns the full KeyValuePair for key, including its spans and
// quote style when position tracking was enabled for the parse.
func (e *Environment) GetEntry(key string) (korni.KeyValuePair, bool) {
	idx, ok := e.index[key]
	if !ok {
		return korni.KeyValuePair{}, false
	}
	return e.pairs[idx], true
}

// ToMap returns a fresh map of every key to its final value.
func (e *Environment) ToMap() map[string]string {
	m := make(map[string]string, len(e.pairs))
	for _, p := range e.pairs {
		m[p.Key] = p.Value
	}
	return m
}

// Keys returns the set of keys in the order each key first appeared; a
// later assignment replaces the value but keeps the key's position.
func (e *Environment) Keys() []string {
	keys := make([]string, len(e.pairs))
	for i, p := range e.pairs {
		keys[i] = p.Key
	}
	return keys
}

// All ranges over every resolved key/value pair.
func (e *Environment) All() iter.Seq2[string, korni.KeyValuePair] {
	return func(yield func(string, korni.KeyValuePair) bool) {
		for _, p := range e.pairs {
			if !yield(p.Key, p) {
				return
			}
		}
	}
}

// Errors returns every parse error recovered while building this
// Environment, in source order.
func (e *Environment) Errors() []*korni.ParseError {
	return e.errors
}

// HasErrors reports whether any parse error was recovered.
func (e *Environment) HasErrors() bool {
	return len(e.errors) > 0
}

// Entries returns the raw, unresolved entry stream this Environment was
// built from, for callers that need the full fidelity (including shadowed
// pairs and comment entries) that the resolved view discards.
func (e *Environment) Entries() []korni.Entry {
	return e.entries
}
