package lint

import (
	"testing"

	"github.com/ph1losof/korni"
	"github.com/stretchr/testify/require"
)

func TestRun_ErrorsPassThrough(t *testing.T) {
	entries := korni.ParseWithOptions("1BAD=x\nOK=y\n", korni.FullOptions)
	diags := Run(entries)

	require.Len(t, diags, 1)
	require.Equal(t, SeverityError, diags[0].Severity)
}

func TestRun_ShadowedKey(t *testing.T) {
	entries := korni.ParseWithOptions("A=1\nA=2\n", korni.FullOptions)
	diags := Run(entries)

	require.Len(t, diags, 1)
	require.Equal(t, SeverityWarning, diags[0].Severity)
	require.Contains(t, diags[0].Message, "shadowed")
}

func TestRun_UnquotedSecretLookingValue(t *testing.T) {
	entries := korni.ParseWithOptions("API_TOKEN=abc123\n", korni.FullOptions)
	diags := Run(entries)

	require.Len(t, diags, 1)
	require.Equal(t, SeverityInfo, diags[0].Severity)
}

func TestRun_QuotedSecretLookingValueIsNotFlagged(t *testing.T) {
	entries := korni.ParseWithOptions(`API_TOKEN="abc123"`+"\n", korni.FullOptions)
	require.Empty(t, Run(entries))
}

func TestRun_CommentedOutPairIsHint(t *testing.T) {
	entries := korni.ParseWithOptions("# DISABLED=1\n", korni.ParseOptions{IncludeComments: true, TrackPositions: true})
	diags := Run(entries)

	require.Len(t, diags, 1)
	require.Equal(t, SeverityHint, diags[0].Severity)
	require.Contains(t, diags[0].Message, "disabled configuration entry")
}

func TestRun_NoFindingsForCleanFile(t *testing.T) {
	entries := korni.ParseWithOptions("A=1\nB=2\n", korni.FullOptions)
	require.Empty(t, Run(entries))
}
