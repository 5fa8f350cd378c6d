// Package lint translates a parsed entry stream into severity-ranked
// diagnostics: recovered parse errors pass through directly, and a small
// fixed rule set flags shadowed keys, unquoted secret-looking values, and
// disabled (commented-out) configuration entries.
package lint

import (
	"fmt"
	"strings"

	"github.com/ph1losof/korni"
)

// Severity ranks a Diagnostic from most to least urgent.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is one lint finding, anchored at a Span. Span is the
// zero-value Span when the entries it was derived from carried no
// position information.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     korni.Span
}

var secretSuffixes = []string{"_KEY", "_SECRET", "_TOKEN", "_PASSWORD"}

func looksLikeSecret(key string) bool {
	upper := strings.ToUpper(key)
	for _, suffix := range secretSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return true
		}
	}
	return false
}

func spanOf(p korni.KeyValuePair) korni.Span {
	if p.KeySpan == nil {
		return korni.Span{}
	}
	if p.ValueSpan != nil {
		return korni.Span{Start: p.KeySpan.Start, End: p.ValueSpan.End}
	}
	return *p.KeySpan
}

// Run walks entries against the fixed rule set and returns diagnostics in
// the order their triggering entries appear, except that a shadowed-key
// warning is anchored at the earlier assignment, which the rule discovers
// only once the later, shadowing assignment is seen.
func Run(entries []korni.Entry) []Diagnostic {
	var diags []Diagnostic

	type seen struct {
		pair korni.KeyValuePair
		idx  int
	}
	last := make(map[string]seen)

	for i, entry := range entries {
		switch entry.Kind {
		case korni.EntryError:
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Message:  entry.Err.Error(),
				Span:     korni.Span{Start: entry.Err.Pos, End: entry.Err.Pos},
			})

		case korni.EntryPair:
			p := entry.Pair
			if p.IsComment {
				diags = append(diags, Diagnostic{
					Severity: SeverityHint,
					Message:  fmt.Sprintf("disabled configuration entry %q", p.Key),
					Span:     spanOf(p),
				})
				continue
			}

			if prior, ok := last[p.Key]; ok {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("%q is shadowed by a later assignment", p.Key),
					Span:     spanOf(prior.pair),
				})
			}
			last[p.Key] = seen{pair: p, idx: i}

			if p.Quote == korni.QuoteNone && p.Value != "" && looksLikeSecret(p.Key) {
				diags = append(diags, Diagnostic{
					Severity: SeverityInfo,
					Message:  fmt.Sprintf("consider quoting the value of %q: unquoted secret-looking values are easy to mangle via shell word-splitting", p.Key),
					Span:     spanOf(p),
				})
			}
		}
	}

	return diags
}
