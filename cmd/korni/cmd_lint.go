package main

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/ph1losof/korni"
	"github.com/ph1losof/korni/lint"
	"github.com/spf13/cobra"
)

type diagnosticView struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

func newLintCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lint <files...>",
		Short: "Run the lint layer over .env files",
		Long: `Reports shadowed keys, unquoted secret-looking values, and disabled
configuration entries. Exits with a non-zero status if any file produced
a SeverityError diagnostic.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sawError atomic.Bool

			err := processFiles(args, func(filename string, content []byte) (string, error) {
				entries := korni.ParseWithOptions(string(content), korni.FullOptions)
				diags := lint.Run(entries)

				hasError := false
				for _, d := range diags {
					if d.Severity == lint.SeverityError {
						hasError = true
					}
				}
				if hasError {
					sawError.Store(true)
				}

				switch format {
				case "json":
					return renderLintJSON(filename, diags)
				case "text", "":
					return renderLintText(filename, diags), nil
				default:
					return "", fmt.Errorf("unknown format %q", format)
				}
			})
			if err != nil {
				return err
			}
			if sawError.Load() {
				return fmt.Errorf("lint errors found")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

func renderLintJSON(filename string, diags []lint.Diagnostic) (string, error) {
	views := make([]diagnosticView, 0, len(diags))
	for _, d := range diags {
		views = append(views, diagnosticView{
			Severity: d.Severity.String(),
			Message:  d.Message,
			Line:     d.Span.Start.Line,
		})
	}
	out, err := json.MarshalIndent(map[string]any{filename: views}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(out) + "\n", nil
}

func renderLintText(filename string, diags []lint.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	severityColor := map[lint.Severity]*color.Color{
		lint.SeverityError:   color.New(color.Bold, color.FgRed),
		lint.SeverityWarning: color.New(color.FgYellow),
		lint.SeverityInfo:    color.New(color.FgCyan),
		lint.SeverityHint:    color.New(color.FgHiBlack),
	}

	var out string
	for _, d := range diags {
		c, ok := severityColor[d.Severity]
		if !ok {
			c = color.New()
		}
		out += fmt.Sprintf("%s:%d: %s\n", filename, d.Span.Start.Line, c.Sprintf("%s: %s", d.Severity.String(), d.Message))
	}
	return out
}
