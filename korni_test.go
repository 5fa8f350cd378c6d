package korni

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	entries := Parse("KEY=value\n")
	require.Len(t, entries, 1)

	pair, ok := entries[0].AsPair()
	require.True(t, ok)
	require.Equal(t, "KEY", pair.Key)
	require.Equal(t, "value", pair.Value)
	require.Equal(t, QuoteNone, pair.Quote)
	require.False(t, pair.IsExported)
}

func TestParse_ExportAndDoubleQuotedEscapes(t *testing.T) {
	entries := Parse("export GREETING=\"hi\\nworld\"\n")
	require.Len(t, entries, 1)

	pair, ok := entries[0].AsPair()
	require.True(t, ok)
	require.Equal(t, "GREETING", pair.Key)
	require.Equal(t, "hi\nworld", pair.Value)
	require.Equal(t, QuoteDouble, pair.Quote)
	require.True(t, pair.IsExported)
}

func TestParse_SingleQuotedLiteral(t *testing.T) {
	entries := Parse(`RAW='a\nb'` + "\n")
	require.Len(t, entries, 1)

	pair, ok := entries[0].AsPair()
	require.True(t, ok)
	require.Equal(t, "RAW", pair.Key)
	require.Equal(t, `a\nb`, pair.Value)
	require.Equal(t, QuoteSingle, pair.Quote)
}

func TestParse_InlineCommentAndContinuation(t *testing.T) {
	input := "A=1 # note\nB=one\\\ntwo\n"

	entries := ParseWithOptions(input, FastOptions)
	require.Len(t, entries, 2)

	a, ok := entries[0].AsPair()
	require.True(t, ok)
	require.Equal(t, "A", a.Key)
	require.Equal(t, "1", a.Value)

	bPair, ok := entries[1].AsPair()
	require.True(t, ok)
	require.Equal(t, "B", bPair.Key)
	require.Equal(t, "onetwo", bPair.Value)

	withComments := ParseWithOptions(input, ParseOptions{IncludeComments: true, TrackPositions: true})
	require.Len(t, withComments, 3)
	require.Equal(t, EntryPair, withComments[0].Kind)
	require.Equal(t, EntryComment, withComments[1].Kind)
	require.Equal(t, "# note", withComments[1].CommentSpan.Slice(input))
	require.Equal(t, EntryPair, withComments[2].Kind)
}

func TestParse_UnclosedQuoteRecovers(t *testing.T) {
	entries := Parse("BAD=\"oops\nGOOD=ok\n")
	require.Len(t, entries, 2)

	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, UnclosedQuote, entries[0].Err.Kind)
	require.Equal(t, "double", entries[0].Err.Reason)

	good, ok := entries[1].AsPair()
	require.True(t, ok)
	require.Equal(t, "GOOD", good.Key)
	require.Equal(t, "ok", good.Value)
}

func TestParse_InvalidKeyRecovers(t *testing.T) {
	entries := Parse("1BAD=x\nOK=y\n")
	require.Len(t, entries, 2)

	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, InvalidKey, entries[0].Err.Kind)
	require.Equal(t, 0, entries[0].Err.Offset)

	ok2, ok := entries[1].AsPair()
	require.True(t, ok)
	require.Equal(t, "OK", ok2.Key)
	require.Equal(t, "y", ok2.Value)
}

func TestParse_EmptyInput(t *testing.T) {
	require.Empty(t, Parse(""))
}

func TestParse_NoTrailingNewline(t *testing.T) {
	entries := Parse("KEY=value")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "value", pair.Value)
}

func TestParse_CRLF(t *testing.T) {
	lf := Parse("A=1\nB=2\n")
	crlf := Parse("A=1\r\nB=2\r\n")
	require.Len(t, crlf, len(lf))
	for i := range lf {
		lp, _ := lf[i].AsPair()
		cp, _ := crlf[i].AsPair()
		require.Equal(t, lp.Key, cp.Key)
		require.Equal(t, lp.Value, cp.Value)
	}
}

func TestParse_LeadingBOM(t *testing.T) {
	withBOM := Parse("\xEF\xBB\xBFKEY=value\n")
	without := Parse("KEY=value\n")
	require.Equal(t, without, withBOM)
}

func TestParse_MidFileBOM(t *testing.T) {
	entries := ParseWithOptions("A=1\n\xEF\xBB\xBFB=2\n", FullOptions)
	require.Len(t, entries, 3)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, InvalidBOM, entries[0].Err.Kind)
	require.Equal(t, 4, entries[0].Err.Offset)

	a, ok := entries[1].AsPair()
	require.True(t, ok)
	require.Equal(t, "A", a.Key)

	require.Equal(t, EntryError, entries[2].Kind)
	require.Equal(t, InvalidKey, entries[2].Err.Kind)
}

func TestParse_BOMInsideValueReported(t *testing.T) {
	entries := Parse("A=val\xEF\xBB\xBFue\n")
	require.Len(t, entries, 2)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, InvalidBOM, entries[0].Err.Kind)
	require.Equal(t, 5, entries[0].Err.Offset)

	pair, ok := entries[1].AsPair()
	require.True(t, ok)
	require.Equal(t, "val\xEF\xBB\xBFue", pair.Value)
}

func TestParse_CommentsOnlyFile(t *testing.T) {
	input := "# one\n# two\n"
	require.Empty(t, Parse(input))

	withComments := ParseWithOptions(input, ParseOptions{IncludeComments: true})
	require.Len(t, withComments, 2)
	require.Equal(t, EntryComment, withComments[0].Kind)
	require.Equal(t, EntryComment, withComments[1].Kind)
}

func TestParse_CommentedOutPair(t *testing.T) {
	input := "# DISABLED=1\nACTIVE=2\n"

	require.Len(t, Parse(input), 1)

	withComments := ParseWithOptions(input, ParseOptions{IncludeComments: true})
	require.Len(t, withComments, 2)

	pair, ok := withComments[0].AsPair()
	require.True(t, ok)
	require.True(t, pair.IsComment)
	require.Equal(t, "DISABLED", pair.Key)
	require.Equal(t, "1", pair.Value)
}

func TestParse_DoubleEquals(t *testing.T) {
	entries := Parse("KEY==value\nOK=1\n")
	require.Len(t, entries, 2)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, DoubleEquals, entries[0].Err.Kind)
}

func TestParse_ForbiddenWhitespaceBeforeEquals(t *testing.T) {
	entries := Parse("KEY =value\nOK=1\n")
	require.Len(t, entries, 2)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, ForbiddenWhitespace, entries[0].Err.Kind)
}

func TestParse_HashWithoutSpaceIsValueData(t *testing.T) {
	entries := Parse("KEY=a#b\n")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "a#b", pair.Value)
}

func TestParse_SpaceThenHashIsComment(t *testing.T) {
	entries := ParseWithOptions("KEY=a #b\n", ParseOptions{IncludeComments: true})
	require.Len(t, entries, 2)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "a", pair.Value)
	require.Equal(t, EntryComment, entries[1].Kind)
}

func TestParse_UnquotedValueTerminatesAtSpace(t *testing.T) {
	entries := Parse("K=val next\n")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "val", pair.Value)
}

func TestParse_UnquotedValueTerminatesAtTab(t *testing.T) {
	entries := Parse("K=val\tnext\n")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "val", pair.Value)
}

func TestParse_UnquotedTrailingWhitespaceStripped(t *testing.T) {
	entries := Parse("K=val   \n")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "val", pair.Value)
}

func TestParse_ForbiddenWhitespaceAfterEquals(t *testing.T) {
	entries := Parse("KEY= val\nOK=1\n")
	require.Len(t, entries, 2)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, ForbiddenWhitespace, entries[0].Err.Kind)
	require.Equal(t, "after_equals", entries[0].Err.Reason)

	ok, found := entries[1].AsPair()
	require.True(t, found)
	require.Equal(t, "OK", ok.Key)
}

func TestParse_ForbiddenWhitespaceAfterEqualsTab(t *testing.T) {
	entries := Parse("KEY=\tval\n")
	require.Len(t, entries, 1)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, ForbiddenWhitespace, entries[0].Err.Kind)
	require.Equal(t, "after_equals", entries[0].Err.Reason)
}

func TestParse_WhitespaceThenEqualsAfterKeyIsForbiddenWhitespace(t *testing.T) {
	entries := Parse("KEY =val\n")
	require.Len(t, entries, 1)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, ForbiddenWhitespace, entries[0].Err.Kind)
	require.Equal(t, "before_equals", entries[0].Err.Reason)
}

func TestParse_WhitespaceThenNonEqualsAfterKeyExpectsEquals(t *testing.T) {
	entries := Parse("KEY NAME=val\n")
	require.Len(t, entries, 1)
	require.Equal(t, EntryError, entries[0].Kind)
	require.Equal(t, Expected, entries[0].Err.Kind)
	require.Equal(t, "'=' after key", entries[0].Err.Reason)
}

func TestParse_PositionsTracked(t *testing.T) {
	entries := ParseWithOptions("FOO=bar\n", FullOptions)
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.NotNil(t, pair.KeySpan)
	require.Equal(t, 0, pair.KeySpan.Start.Offset)
	require.Equal(t, 3, pair.KeySpan.End.Offset)
	require.NotNil(t, pair.ValueSpan)
	require.Equal(t, "bar", pair.ValueSpan.Slice("FOO=bar\n"))
}

func TestParse_NoPositionsWhenDisabled(t *testing.T) {
	entries := Parse("FOO=bar\n")
	pair, _ := entries[0].AsPair()
	require.Nil(t, pair.KeySpan)
	require.Nil(t, pair.ValueSpan)
	require.Nil(t, pair.EqualsPos)
}

func TestIterate_StopsEarly(t *testing.T) {
	input := "A=1\nB=2\nC=3\n"
	var seen []string
	for e := range Iterate(input, FastOptions) {
		pair, _ := e.AsPair()
		seen = append(seen, pair.Key)
		if pair.Key == "B" {
			break
		}
	}
	require.Equal(t, []string{"A", "B"}, seen)
}

func TestIterate_MatchesParseWithOptions(t *testing.T) {
	input := "export A=\"x\\ty\"\nB='lit\\n'\n# c\nC=z # inline\n"
	var fromIter []Entry
	for e := range Iterate(input, FullOptions) {
		fromIter = append(fromIter, e)
	}
	require.Equal(t, ParseWithOptions(input, FullOptions), fromIter)
}

func TestParse_ExportsPrefixWithoutSpaceIsPlainKey(t *testing.T) {
	entries := Parse("exports=1\n")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "exports", pair.Key)
	require.False(t, pair.IsExported)
}

func TestParse_LeadingWhitespaceBeforeExportPermitted(t *testing.T) {
	entries := Parse("  export A=1\n")
	require.Len(t, entries, 1)
	pair, _ := entries[0].AsPair()
	require.Equal(t, "A", pair.Key)
	require.True(t, pair.IsExported)
}

func TestParseError_ImplementsError(t *testing.T) {
	entries := Parse("1BAD=x\n")
	var err error = entries[0].Err
	require.Contains(t, err.Error(), "InvalidKey")
}
