package korni

import "strings"

// scanEntries is the single internal generator behind Parse,
// ParseWithOptions and Iterate. It walks input once, left to right,
// emitting one Entry per logical line (two for a line whose trailing
// comment is preserved) through emit. Returning false from emit stops the
// scan immediately, which is what powers Iterate's early-exit behavior.
func scanEntries(input string, opts ParseOptions, emit func(Entry) bool) {
	n := len(input)
	i := 0
	lt := &lineTracker{}

	if hasBOMAt(input, 0) {
		i = 3
		lt.lineStart = 3
	}

	var pending *Entry
	if idx := indexOfBOM(input, i); idx >= 0 {
		pos, lineStart := positionAt(input, idx)
		lineEnd, _ := findLineEnd(input, lineStart)
		pending = &Entry{Kind: EntryError, Err: &ParseError{
			Kind:   InvalidBOM,
			Offset: idx,
			Pos:    pos,
			Line:   input[lineStart:lineEnd],
		}}
	}

	for i < n {
		if pending != nil {
			e := *pending
			pending = nil
			if !emit(e) {
				return
			}
		}

		next, ok := scanLine(input, lt, opts, emit, &pending)
		if !ok {
			return
		}
		i = next
	}
	if pending != nil {
		emit(*pending)
	}
}

// scanLine parses exactly one logical line starting at lt.lineStart
// (the LineStart state) and returns the offset where the next logical
// line begins.
func scanLine(input string, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry) (int, bool) {
	n := len(input)
	i := lt.lineStart

	for i < n && isHSpace(input[i]) {
		i++
	}
	if i >= n || isLineBreak(input[i]) {
		return advancePastLine(input, lt)
	}
	if input[i] == '#' {
		return scanComment(input, i, lt, opts, emit, pending)
	}

	if !isKeyStart(input[i]) {
		if _, ok := decodeAt(input, i); !ok {
			return emitLineError(input, lt, i, InvalidUTF8, "", emit)
		}
		return emitLineError(input, lt, i, InvalidKey, "key must start with a letter or underscore", emit)
	}

	keyStart := i
	j := scanKeyRun(input, i, n)
	word := input[i:j]
	isExported := false

	if word == "export" && j < n && isHSpace(input[j]) {
		isExported = true
		i = j
		for i < n && isHSpace(input[i]) {
			i++
		}
		if i >= n || isLineBreak(input[i]) {
			return emitLineError(input, lt, i, Expected, "key after 'export'", emit)
		}
		if _, ok := decodeAt(input, i); !ok {
			return emitLineError(input, lt, i, InvalidUTF8, "", emit)
		}
		if !isKeyStart(input[i]) {
			return emitLineError(input, lt, i, InvalidKey, "expected a key after 'export'", emit)
		}
		keyStart = i
		j = scanKeyRun(input, i, n)
	}
	i = j

	var equalsPos int
	switch {
	case i < n && input[i] == '=':
		equalsPos = i
		i++
	case i < n && isHSpace(input[i]):
		k := i
		for k < n && isHSpace(input[k]) {
			k++
		}
		if k < n && input[k] == '=' {
			return emitLineError(input, lt, i, ForbiddenWhitespace, "before_equals", emit)
		}
		return emitLineError(input, lt, i, Expected, "'=' after key", emit)
	case i >= n || isLineBreak(input[i]):
		return emitLineError(input, lt, i, Expected, "'=' after key", emit)
	default:
		if _, ok := decodeAt(input, i); !ok {
			return emitLineError(input, lt, i, InvalidUTF8, "", emit)
		}
		return emitLineError(input, lt, i, InvalidKey, "disallowed character in key", emit)
	}

	pair := KeyValuePair{
		Key:        input[keyStart:j],
		IsExported: isExported,
	}
	if opts.TrackPositions {
		ks := lt.at(keyStart)
		ke := lt.at(j)
		ep := lt.at(equalsPos)
		pair.KeySpan = &Span{Start: ks, End: ke}
		pair.EqualsPos = &ep
	}

	return scanValueStart(input, i, lt, opts, emit, pending, pair)
}

// scanKeyRun returns the offset just past the longest run of isKeyChar
// bytes starting at i.
func scanKeyRun(input string, i, n int) int {
	j := i
	for j < n && isKeyChar(input[j]) {
		j++
	}
	return j
}

// advancePastLine consumes a blank line (or the terminator of one that
// turned out to have nothing parseable before it) and emits nothing.
func advancePastLine(input string, lt *lineTracker) (int, bool) {
	lineEnd, termLen := findLineEnd(input, lt.lineStart)
	next := lineEnd + termLen
	if termLen > 0 {
		lt.crossTerminator(next)
	}
	return next, true
}

// emitLineError emits an Error entry at offset and recovers by
// synchronizing to the next line terminator; any data already
// accumulated for the defective line is discarded.
func emitLineError(input string, lt *lineTracker, offset int, kind ErrorKind, reason string, emit func(Entry) bool) (int, bool) {
	lineEnd, termLen := findLineEnd(input, lt.lineStart)
	pos := lt.at(offset)
	if kind == InvalidUTF8 && reason == "" {
		reason = "invalid UTF-8 sequence"
		if offset < len(input) && input[offset]&0xC0 == 0x80 {
			reason = "unexpected continuation byte"
		}
	}
	ok := emit(Entry{Kind: EntryError, Err: &ParseError{
		Kind:   kind,
		Offset: offset,
		Pos:    pos,
		Reason: reason,
		Line:   input[lt.lineStart:lineEnd],
	}})
	next := lineEnd + termLen
	if termLen > 0 {
		lt.crossTerminator(next)
	}
	return next, ok
}

// finishLine emits pair as-is and advances past the current line's
// terminator. The caller must already have positioned lt.lineStart on the
// line (possibly continuation-extended) that pair was scanned from.
func finishLine(input string, lt *lineTracker, emit func(Entry) bool, pair KeyValuePair) (int, bool) {
	lineEnd, termLen := findLineEnd(input, lt.lineStart)
	next := lineEnd + termLen
	ok := emit(Entry{Kind: EntryPair, Pair: pair})
	if termLen > 0 {
		lt.crossTerminator(next)
	}
	return next, ok
}

// finishWithComment emits pair, then — when opts.IncludeComments is set —
// queues a Comment entry over the trailing "# ..." span to be returned as
// the very next entry. hashPos is the offset of '#'.
func finishWithComment(input string, lt *lineTracker, hashPos int, emit func(Entry) bool, pending **Entry, opts ParseOptions, pair KeyValuePair) (int, bool) {
	lineEnd, termLen := findLineEnd(input, lt.lineStart)
	next := lineEnd + termLen

	ok := emit(Entry{Kind: EntryPair, Pair: pair})
	if ok && opts.IncludeComments {
		*pending = &Entry{Kind: EntryComment, CommentSpan: Span{
			Start: lt.at(hashPos),
			End:   lt.at(lineEnd),
		}}
	}
	if termLen > 0 {
		lt.crossTerminator(next)
	}
	return next, ok
}

// scanValueStart implements the ValueStart state.
func scanValueStart(input string, i int, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry, pair KeyValuePair) (int, bool) {
	n := len(input)
	if i >= n || isLineBreak(input[i]) {
		pair.Quote = QuoteNone
		pair.Value = ""
		if opts.TrackPositions {
			p := lt.at(i)
			pair.ValueSpan = &Span{Start: p, End: p}
		}
		return finishLine(input, lt, emit, pair)
	}
	switch {
	case input[i] == '\'':
		return scanSingleQuoted(input, i, lt, opts, emit, pending, pair)
	case input[i] == '"':
		return scanDoubleQuoted(input, i, lt, opts, emit, pending, pair)
	case input[i] == '=':
		return emitLineError(input, lt, i, DoubleEquals, "", emit)
	case isHSpace(input[i]):
		return emitLineError(input, lt, i, ForbiddenWhitespace, "after_equals", emit)
	default:
		return scanUnquoted(input, i, lt, opts, emit, pending, pair)
	}
}

// scanUnquoted implements the Unquoted state, including trailing-backslash
// line continuation and the "whitespace then '#'" inline-comment boundary.
// It stays on the zero-copy slice path unless continuation forces it to
// build a new string out of non-contiguous segments.
func scanUnquoted(input string, start int, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry, pair KeyValuePair) (int, bool) {
	n := len(input)
	i := start
	segStart := start
	var b strings.Builder
	usingBuilder := false

	flush := func(end int) {
		if usingBuilder {
			b.WriteString(input[segStart:end])
		}
	}

	valueSpanStart := lt.at(start)

	for {
		if i >= n || isLineBreak(input[i]) {
			flush(i)
			value := input[start:i]
			if usingBuilder {
				value = b.String()
			}
			pair.Value = value
			pair.Quote = QuoteNone
			if opts.TrackPositions {
				ep := lt.at(i)
				pair.ValueSpan = &Span{Start: valueSpanStart, End: ep}
			}
			return finishLine(input, lt, emit, pair)
		}

		c := input[i]

		if c == '\\' && i+1 < n && isLineBreak(input[i+1]) {
			usingBuilder = true
			flush(i)
			termStart := i + 1
			termLen := 1
			if input[termStart] == '\r' && termStart+1 < n && input[termStart+1] == '\n' {
				termLen = 2
			}
			next := termStart + termLen
			lt.crossTerminator(next)
			i = next
			segStart = i
			continue
		}

		if isHSpace(c) {
			k := i
			for k < n && isHSpace(input[k]) {
				k++
			}
			flush(i)
			value := input[start:i]
			if usingBuilder {
				value = b.String()
			}
			pair.Value = value
			pair.Quote = QuoteNone
			if opts.TrackPositions {
				ep := lt.at(i)
				pair.ValueSpan = &Span{Start: valueSpanStart, End: ep}
			}
			if k < n && input[k] == '#' {
				return finishWithComment(input, lt, k, emit, pending, opts, pair)
			}
			return finishLine(input, lt, emit, pair)
		}

		w, ok := decodeAt(input, i)
		if !ok {
			return emitLineError(input, lt, i, InvalidUTF8, "", emit)
		}
		i += w
	}
}

// scanSingleQuoted implements the SingleQuoted state: strictly literal,
// no escape processing, must close before any line break.
func scanSingleQuoted(input string, quotePos int, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry, pair KeyValuePair) (int, bool) {
	n := len(input)
	valStart := quotePos + 1
	i := valStart
	for {
		if i >= n || isLineBreak(input[i]) {
			return emitLineError(input, lt, quotePos, UnclosedQuote, "single", emit)
		}
		if input[i] == '\'' {
			pair.Value = input[valStart:i]
			pair.Quote = QuoteSingle
			if opts.TrackPositions {
				op := lt.at(quotePos)
				cp := lt.at(i)
				pair.OpenQuotePos = &op
				pair.CloseQuotePos = &cp
				pair.ValueSpan = &Span{Start: lt.at(valStart), End: lt.at(i)}
			}
			return scanPostValue(input, i+1, lt, opts, emit, pending, pair)
		}
		w, ok := decodeAt(input, i)
		if !ok {
			return emitLineError(input, lt, i, InvalidUTF8, "", emit)
		}
		i += w
	}
}

// translateEscape maps the character following a backslash inside a
// double-quoted value to its decoded byte. Only the six sequences named
// by the format are recognized; anything else is preserved literally by
// the caller.
func translateEscape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '$':
		return '$', true
	default:
		return 0, false
	}
}

// scanDoubleQuoted implements the DoubleQuoted state. It stays on the
// zero-copy slice path unless a recognized escape sequence forces it to
// build a new string, since that is the one place the decoded bytes do
// not exist contiguously in the source.
func scanDoubleQuoted(input string, quotePos int, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry, pair KeyValuePair) (int, bool) {
	n := len(input)
	valStart := quotePos + 1
	i := valStart
	segStart := valStart
	var b strings.Builder
	usingBuilder := false

	flush := func(end int) {
		if usingBuilder {
			b.WriteString(input[segStart:end])
		}
	}

	for {
		if i >= n || isLineBreak(input[i]) {
			return emitLineError(input, lt, quotePos, UnclosedQuote, "double", emit)
		}
		c := input[i]

		if c == '"' {
			flush(i)
			value := input[valStart:i]
			if usingBuilder {
				value = b.String()
			}
			pair.Value = value
			pair.Quote = QuoteDouble
			if opts.TrackPositions {
				op := lt.at(quotePos)
				cp := lt.at(i)
				pair.OpenQuotePos = &op
				pair.CloseQuotePos = &cp
				pair.ValueSpan = &Span{Start: lt.at(valStart), End: lt.at(i)}
			}
			return scanPostValue(input, i+1, lt, opts, emit, pending, pair)
		}

		if c == '\\' && i+1 < n && !isLineBreak(input[i+1]) {
			w, ok := decodeAt(input, i+1)
			if !ok {
				return emitLineError(input, lt, i+1, InvalidUTF8, "", emit)
			}
			if w == 1 {
				if translated, known := translateEscape(input[i+1]); known {
					usingBuilder = true
					flush(i)
					b.WriteByte(translated)
					i += 2
					segStart = i
					continue
				}
			}
			// Unrecognized escape: preserve both the backslash and the
			// escaped character literally.
			i += 1 + w
			continue
		}

		w, ok := decodeAt(input, i)
		if !ok {
			return emitLineError(input, lt, i, InvalidUTF8, "", emit)
		}
		i += w
	}
}

// scanPostValue implements the PostValue state, reached after a quoted
// value closes.
func scanPostValue(input string, i int, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry, pair KeyValuePair) (int, bool) {
	n := len(input)
	for {
		if i >= n || isLineBreak(input[i]) {
			return finishLine(input, lt, emit, pair)
		}
		c := input[i]
		if isHSpace(c) {
			i++
			continue
		}
		if c == '#' {
			return finishWithComment(input, lt, i, emit, pending, opts, pair)
		}
		return emitLineError(input, lt, i, Expected, "end of line or comment", emit)
	}
}

// scanComment implements the Comment state: a '#' line. When
// opts.IncludeComments is set, it emits either a Comment entry or, if the
// body (after '#' and optional whitespace) itself parses as a clean
// KEY=VALUE assignment, a Pair entry with IsComment set instead. When
// IncludeComments is false, commented-out pairs are suppressed exactly
// like plain comments, since both are conceptually comments.
func scanComment(input string, hashPos int, lt *lineTracker, opts ParseOptions, emit func(Entry) bool, pending **Entry) (int, bool) {
	lineEnd, termLen := findLineEnd(input, lt.lineStart)
	next := lineEnd + termLen

	bodyStart := hashPos + 1
	k := bodyStart
	for k < lineEnd && isHSpace(input[k]) {
		k++
	}

	var ok bool
	// Commented-out pairs carry no sub-spans (KeySpan/ValueSpan/etc. stay
	// nil even with TrackPositions set): they are a best-effort
	// reconstruction of a disabled line, not a position-tracked assignment.
	if pair, isPair := tryParseCommentedPair(input, k, lineEnd); isPair {
		pair.IsComment = true
		ok = true
		if opts.IncludeComments {
			ok = emit(Entry{Kind: EntryPair, Pair: pair})
		}
	} else {
		ok = true
		if opts.IncludeComments {
			ok = emit(Entry{Kind: EntryComment, CommentSpan: Span{
				Start: lt.at(hashPos),
				End:   lt.at(lineEnd),
			}})
		}
	}

	if termLen > 0 {
		lt.crossTerminator(next)
	}
	return next, ok
}

// tryParseCommentedPair attempts a lightweight, single-line parse of the
// comment body as a KEY=VALUE assignment. It does not support line
// continuation or report errors: a body that doesn't cleanly parse simply
// isn't a commented-out pair, and the caller falls back to a plain
// Comment entry.
func tryParseCommentedPair(input string, start, lineEnd int) (KeyValuePair, bool) {
	if start >= lineEnd || !isKeyStart(input[start]) {
		return KeyValuePair{}, false
	}
	j := scanKeyRun(input, start, lineEnd)
	if j >= lineEnd || input[j] != '=' {
		return KeyValuePair{}, false
	}
	key := input[start:j]
	i := j + 1

	var value string
	var quote QuoteType

	switch {
	case i < lineEnd && input[i] == '\'':
		end := strings.IndexByte(input[i+1:lineEnd], '\'')
		if end < 0 {
			return KeyValuePair{}, false
		}
		end += i + 1
		value = input[i+1 : end]
		quote = QuoteSingle
		i = end + 1
	case i < lineEnd && input[i] == '"':
		end := -1
		for k := i + 1; k < lineEnd; k++ {
			if input[k] == '"' && input[k-1] != '\\' {
				end = k
				break
			}
		}
		if end < 0 {
			return KeyValuePair{}, false
		}
		value = unescapeDoubleQuoted(input[i+1 : end])
		quote = QuoteDouble
		i = end + 1
	default:
		// Whitespace or a second '=' right after '=', or a trailing
		// backslash that would continue the line, is a defect in a live
		// assignment, so the body is not a clean pair.
		if i < lineEnd && (isHSpace(input[i]) || input[i] == '=') {
			return KeyValuePair{}, false
		}
		if lineEnd < len(input) && input[lineEnd-1] == '\\' {
			return KeyValuePair{}, false
		}
		trimmed := trimTrailingHSpace(input[i:lineEnd])
		value = input[i : i+trimmed]
		quote = QuoteNone
		i += trimmed
	}

	for i < lineEnd {
		if !isHSpace(input[i]) {
			return KeyValuePair{}, false
		}
		i++
	}

	return KeyValuePair{Key: key, Value: value, Quote: quote}, true
}

// unescapeDoubleQuoted applies the same six escape substitutions as
// scanDoubleQuoted to a raw double-quoted body, for use by the
// commented-pair heuristic where building a fresh string unconditionally
// is an acceptable cost.
func unescapeDoubleQuoted(raw string) string {
	var b strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '\\' && i+1 < len(raw) {
			if translated, ok := translateEscape(raw[i+1]); ok {
				b.WriteByte(translated)
				i += 2
				continue
			}
		}
		b.WriteByte(raw[i])
		i++
	}
	return b.String()
}
