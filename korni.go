package korni

import "iter"

// Parse scans input with FastOptions: no comment entries, no position
// tracking, the cheapest surface for callers that only need key/value
// pairs.
func Parse(input string) []Entry {
	return ParseWithOptions(input, FastOptions)
}

// ParseWithOptions scans the whole of input eagerly and returns its
// entries in source order.
func ParseWithOptions(input string, options ParseOptions) []Entry {
	var entries []Entry
	scanEntries(input, options, func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

// Iterate returns a lazy range-over-func sequence over input's entries.
// The scanner advances one step per iteration and stops the moment the
// consuming range loop breaks, so a caller looking for one key can avoid
// scanning the rest of a large file.
func Iterate(input string, options ParseOptions) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		scanEntries(input, options, yield)
	}
}
