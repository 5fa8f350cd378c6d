package httpd

import (
	"github.com/ph1losof/korni"
	"github.com/ph1losof/korni/lint"
)

// entryDTO is the wire shape for one korni.Entry. The core parser types
// stay free of encoding concerns; this is the one place that knows how
// to flatten them to JSON.
type entryDTO struct {
	Kind       string `json:"kind"`
	Key        string `json:"key,omitempty"`
	Value      string `json:"value,omitempty"`
	Quote      string `json:"quote,omitempty"`
	IsExported bool   `json:"isExported,omitempty"`
	IsComment  bool   `json:"isComment,omitempty"`
	Comment    string `json:"comment,omitempty"`
	Error      string `json:"error,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

func toEntryDTOs(content string, entries []korni.Entry) []entryDTO {
	dtos := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		dto := entryDTO{Kind: e.Kind.String()}
		switch e.Kind {
		case korni.EntryPair:
			dto.Key = e.Pair.Key
			dto.Value = e.Pair.Value
			dto.Quote = e.Pair.Quote.String()
			dto.IsExported = e.Pair.IsExported
			dto.IsComment = e.Pair.IsComment
		case korni.EntryComment:
			dto.Comment = e.CommentSpan.Slice(content)
		case korni.EntryError:
			dto.Error = e.Err.Error()
			dto.Offset = e.Err.Offset
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// diagnosticDTO is the wire shape for one lint.Diagnostic.
type diagnosticDTO struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Offset   int    `json:"offset"`
}

func toDiagnosticDTOs(diags []lint.Diagnostic) []diagnosticDTO {
	dtos := make([]diagnosticDTO, 0, len(diags))
	for _, d := range diags {
		dtos = append(dtos, diagnosticDTO{
			Severity: d.Severity.String(),
			Message:  d.Message,
			Offset:   d.Span.Start.Offset,
		})
	}
	return dtos
}
