package korni

import (
	"strings"
	"unicode/utf8"
)

const bom0, bom1, bom2 = 0xEF, 0xBB, 0xBF

// hasBOMAt reports whether the 3-byte UTF-8 BOM starts at offset i in s.
func hasBOMAt(s string, i int) bool {
	return i+3 <= len(s) && s[i] == bom0 && s[i+1] == bom1 && s[i+2] == bom2
}

// indexOfBOM returns the offset of the next UTF-8 BOM byte sequence at or
// after from, or -1 if none remains. Unlike hasBOMAt, it searches the
// whole remaining input rather than one specific offset, so a BOM buried
// inside a value or comment is found too.
func indexOfBOM(s string, from int) int {
	idx := strings.Index(s[from:], "\xEF\xBB\xBF")
	if idx < 0 {
		return -1
	}
	return from + idx
}

// positionAt computes the zero-indexed Position of offset by counting
// line terminators from the start of s, along with the offset where that
// line begins. It exists for the handful of errors discovered ahead of
// the line-by-line scan, such as a BOM found away from the start of the
// file, where no lineTracker has reached offset yet.
func positionAt(s string, offset int) (pos Position, lineStart int) {
	line := 0
	start := 0
	for j := 0; j < offset; j++ {
		switch s[j] {
		case '\n':
			line++
			start = j + 1
		case '\r':
			if j+1 < len(s) && s[j+1] == '\n' {
				continue
			}
			line++
			start = j + 1
		}
	}
	return Position{Line: line, Col: offset - start, Offset: offset}, start
}

// isHSpace reports whether b is a horizontal whitespace byte: space or tab.
func isHSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// isLineBreak reports whether b starts a line terminator.
func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

// isKeyStart reports whether b may begin a bare key: a letter or
// underscore.
func isKeyStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// isKeyChar reports whether b may appear after the first character of a
// bare key: a letter, digit, or underscore.
func isKeyChar(b byte) bool {
	return isKeyStart(b) || (b >= '0' && b <= '9')
}

// findLineEnd returns the offset of the first byte of the line terminator
// at or after i, and the length of that terminator (1 for "\n" or a lone
// "\r", 2 for "\r\n"). If no terminator is found before the end of s, it
// returns len(s), 0. Scanning for terminator bytes is always safe even over
// ill-formed UTF-8: '\n' (0x0A) and '\r' (0x0D) never occur as part of a
// multi-byte UTF-8 sequence, valid or not.
func findLineEnd(s string, i int) (int, int) {
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return j, 1
		case '\r':
			if j+1 < len(s) && s[j+1] == '\n' {
				return j, 2
			}
			return j, 1
		}
	}
	return len(s), 0
}

// decodeAt reports the width of the character starting at s[i]. ASCII
// bytes are width 1. A multi-byte UTF-8 sequence reports its full width
// and ok=true only if it is well-formed; otherwise ok is false and the
// defect is anchored at i, the first offending byte.
func decodeAt(s string, i int) (width int, ok bool) {
	if i >= len(s) {
		return 0, true
	}
	if s[i] < utf8.RuneSelf {
		return 1, true
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return size, true
}

// trimTrailingHSpace returns the length of s with trailing space/tab bytes
// removed.
func trimTrailingHSpace(s string) int {
	n := len(s)
	for n > 0 && isHSpace(s[n-1]) {
		n--
	}
	return n
}
