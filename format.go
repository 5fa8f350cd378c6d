package korni

import "strings"

// Format canonicalizes entries back into EDF text: one pair or comment per
// line, consistent `KEY=VALUE` spacing, and double-quoting only where the
// value actually requires it (any horizontal whitespace, '#', a quote
// character, a control character, a leading '=', or a trailing
// backslash). Error entries are dropped; a formatted file is always
// valid. input must be the same string entries was parsed from, since
// comment entries carry only a Span into it.
//
// Format does not try to preserve the original quoting of a pair; it
// renders the canonical form described above.
func Format(input string, entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case EntryPair:
			writeFormattedPair(&b, e.Pair)
		case EntryComment:
			b.WriteString(e.CommentSpan.Slice(input))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatPairs renders just the key/value pairs, in the order given,
// skipping comments and errors entirely, for callers that only need the
// assignments.
func FormatPairs(pairs []KeyValuePair) string {
	var b strings.Builder
	for _, p := range pairs {
		writeFormattedPair(&b, p)
	}
	return b.String()
}

func writeFormattedPair(b *strings.Builder, p KeyValuePair) {
	if p.IsComment {
		b.WriteByte('#')
		b.WriteByte(' ')
	}
	if p.IsExported {
		b.WriteString("export ")
	}
	b.WriteString(p.Key)
	b.WriteByte('=')
	b.WriteString(formatValue(p.Value))
	b.WriteByte('\n')
}

func formatValue(v string) string {
	if v == "" {
		return ""
	}
	if needsQuoting(v) {
		return quoteDouble(v)
	}
	return v
}

func needsQuoting(v string) bool {
	if v[0] == '=' || v[len(v)-1] == '\\' {
		return true
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if isHSpace(c) || c == '#' || c == '"' || c == '\'' || c < 0x20 {
			return true
		}
	}
	return false
}

func quoteDouble(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
