// Package korni implements a failure-tolerant, position-preserving parser for
// EDF (Ecolog Dotenv File) configuration text: the KEY=VALUE syntax shells
// use for .env files, extended with export prefixes, quoting, escapes, line
// continuations, and inline comments.
//
// The parser never stops at the first malformed line. Every defect becomes
// an Entry of its own, carrying the byte offset of the first bad byte, and
// parsing resumes at the next line. This makes the package suitable as the
// core of editor tooling (language servers, linters, formatters) where a
// half-broken file still needs the rest of its entries reported.
package korni

// Position is a zero-indexed (line, column, byte offset) triple. Columns are
// byte columns within a line, not rune columns.
type Position struct {
	Line   int
	Col    int
	Offset int
}

// Before reports whether p occurs strictly before other in the input.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a half-open byte range [Start.Offset, End.Offset) within the
// input, bounded by two Positions.
type Span struct {
	Start Position
	End   Position
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Slice returns the substring of input denoted by s. The caller is
// responsible for passing the same input the span was computed against.
func (s Span) Slice(input string) string {
	return input[s.Start.Offset:s.End.Offset]
}

// QuoteType describes how a value was delimited in the source.
type QuoteType int

const (
	// QuoteNone means the value was unquoted.
	QuoteNone QuoteType = iota
	// QuoteSingle means the value was delimited by '...' (strictly literal).
	QuoteSingle
	// QuoteDouble means the value was delimited by "..." (escape-aware).
	QuoteDouble
)

func (q QuoteType) String() string {
	switch q {
	case QuoteSingle:
		return "single"
	case QuoteDouble:
		return "double"
	default:
		return "none"
	}
}

// KeyValuePair is one parsed KEY=VALUE assignment.
//
// Key and Value are plain Go strings. Slicing a Go string never copies, so a
// Key or Value taken verbatim from the input is already a zero-copy view
// into it; the only place a real copy happens is double-quoted escape
// processing, which must build new bytes and therefore allocates via
// strings.Builder. There is no separate borrowed/owned wrapper type: Go's
// string representation already gives us that distinction for free.
type KeyValuePair struct {
	Key   string
	Value string

	// KeySpan, ValueSpan, EqualsPos, OpenQuotePos and CloseQuotePos are nil
	// unless ParseOptions.TrackPositions was set.
	KeySpan   *Span
	ValueSpan *Span

	EqualsPos     *Position
	OpenQuotePos  *Position
	CloseQuotePos *Position

	Quote QuoteType

	// IsExported is true iff the line began with "export" followed by at
	// least one horizontal whitespace byte.
	IsExported bool

	// IsComment is true iff this pair was recovered from a commented-out
	// "# KEY=VALUE" line rather than a live assignment.
	IsComment bool
}

// EntryKind discriminates the three shapes an Entry can take.
type EntryKind int

const (
	EntryPair EntryKind = iota
	EntryComment
	EntryError
)

func (k EntryKind) String() string {
	switch k {
	case EntryPair:
		return "Pair"
	case EntryComment:
		return "Comment"
	case EntryError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Entry is one item of the parser's output stream. Exactly one of Pair,
// CommentSpan, or Err is meaningful, selected by Kind.
type Entry struct {
	Kind EntryKind

	Pair        KeyValuePair
	CommentSpan Span
	Err         *ParseError
}

// AsPair returns the entry's KeyValuePair and true iff Kind == EntryPair.
func (e Entry) AsPair() (KeyValuePair, bool) {
	if e.Kind != EntryPair {
		return KeyValuePair{}, false
	}
	return e.Pair, true
}

// ParseOptions selectively enables comment entries and position tracking.
type ParseOptions struct {
	IncludeComments bool
	TrackPositions  bool
}

// FastOptions is the zero-allocation preset: no comments, no positions.
var FastOptions = ParseOptions{IncludeComments: false, TrackPositions: false}

// FullOptions enables both comment entries and position tracking.
var FullOptions = ParseOptions{IncludeComments: true, TrackPositions: true}
