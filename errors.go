package korni

import "fmt"

// ErrorKind enumerates every defect the line parser can recognize. Each
// kind maps to one recovery action: synchronize to the next line
// terminator and continue, except an unrecoverable UTF-8 defect with no
// reachable line boundary, which ends the parse.
type ErrorKind int

const (
	// InvalidUTF8 marks a byte sequence that is not well-formed UTF-8.
	InvalidUTF8 ErrorKind = iota
	// UnclosedQuote marks a single- or double-quoted value that reaches
	// EOL or EOF before its closing quote. Reason identifies "single" or
	// "double".
	UnclosedQuote
	// InvalidKey marks a key containing a disallowed character, or one
	// that begins with a digit.
	InvalidKey
	// ForbiddenWhitespace marks whitespace appearing where it is
	// forbidden (between key and '=', between '=' and an unquoted value,
	// etc). Reason names the location.
	ForbiddenWhitespace
	// DoubleEquals marks a second '=' appearing at position zero of the
	// value, where a value was expected.
	DoubleEquals
	// InvalidBOM marks a UTF-8 byte-order mark occurring at any offset
	// other than 0.
	InvalidBOM
	// Expected marks a location where a specific token was required
	// (e.g. end-of-line after a closed quoted value) and a different byte
	// appeared.
	Expected
	// Generic marks a defect that does not match any other kind; Reason
	// carries a free-form message.
	Generic
	// IO is raised only by external collaborators (source, load); the
	// core parser itself never produces it.
	IO
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidUTF8:
		return "InvalidUTF8"
	case UnclosedQuote:
		return "UnclosedQuote"
	case InvalidKey:
		return "InvalidKey"
	case ForbiddenWhitespace:
		return "ForbiddenWhitespace"
	case DoubleEquals:
		return "DoubleEquals"
	case InvalidBOM:
		return "InvalidBOM"
	case Expected:
		return "Expected"
	case Generic:
		return "Generic"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

// ParseError describes one recovered defect. It implements error, so a
// ParseError can be returned or wrapped wherever Go code expects one, while
// Entry.Err also exposes it as a first-class value in the streaming API.
type ParseError struct {
	Kind ErrorKind

	// Offset is the byte offset of the first offending byte.
	Offset int

	// Pos is the full position of Offset. It is filled in whether or not
	// position tracking was enabled for the parse that produced this
	// error.
	Pos Position

	// Reason is a short human-readable description: the rejected
	// location name for ForbiddenWhitespace, "single"/"double" for
	// UnclosedQuote, a short description of the problem for InvalidKey, and
	// so on. It is empty for DoubleEquals and InvalidBOM.
	Reason string

	// Line is the raw text of the offending source line, with its
	// terminator stripped, for diagnostic display.
	Line string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// Is supports errors.Is against another *ParseError by comparing kinds,
// so callers can write errors.Is(err, &korni.ParseError{Kind: korni.InvalidKey}).
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
