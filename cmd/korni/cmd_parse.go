package main

import (
	"encoding/json"
	"fmt"

	"github.com/ph1losof/korni"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type entryView struct {
	Kind       string `json:"kind" yaml:"kind"`
	Key        string `json:"key,omitempty" yaml:"key,omitempty"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Quote      string `json:"quote,omitempty" yaml:"quote,omitempty"`
	IsExported bool   `json:"isExported,omitempty" yaml:"isExported,omitempty"`
	IsComment  bool   `json:"isComment,omitempty" yaml:"isComment,omitempty"`
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
}

func toEntryViews(content string, entries []korni.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		v := entryView{Kind: e.Kind.String()}
		switch e.Kind {
		case korni.EntryPair:
			v.Key = e.Pair.Key
			v.Value = e.Pair.Value
			v.Quote = e.Pair.Quote.String()
			v.IsExported = e.Pair.IsExported
			v.IsComment = e.Pair.IsComment
		case korni.EntryComment:
			v.Comment = e.CommentSpan.Slice(content)
		case korni.EntryError:
			v.Error = e.Err.Error()
			v.Line = e.Err.Pos.Line
		}
		views = append(views, v)
	}
	return views
}

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <files...>",
		Short: "Parse .env files and dump the entry stream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return processFiles(args, func(filename string, content []byte) (string, error) {
				entries := korni.ParseWithOptions(string(content), korni.FullOptions)
				views := toEntryViews(string(content), entries)

				switch format {
				case "yaml":
					out, err := yaml.Marshal(views)
					if err != nil {
						return "", fmt.Errorf("encode yaml: %w", err)
					}
					return string(out), nil
				case "json", "":
					out, err := json.MarshalIndent(views, "", "  ")
					if err != nil {
						return "", fmt.Errorf("encode json: %w", err)
					}
					return string(out) + "\n", nil
				default:
					return "", fmt.Errorf("unknown format %q", format)
				}
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}
