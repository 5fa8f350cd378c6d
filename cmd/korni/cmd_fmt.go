package main

import (
	"fmt"
	"os"

	"github.com/ph1losof/korni"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <files...>",
		Short: "Canonicalize quoting and spacing in .env files",
		Long: `Re-render each file's KEY=VALUE pairs and comments in canonical form:
consistent "export KEY=VALUE" spacing, and double-quoting only where a
value actually needs it.

Use -w to overwrite each file in place instead of printing to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return processFiles(args, func(filename string, content []byte) (string, error) {
				entries := korni.ParseWithOptions(string(content), korni.FullOptions)
				output := korni.Format(string(content), entries)

				if write {
					if err := os.WriteFile(filename, []byte(output), 0644); err != nil {
						return "", fmt.Errorf("write file: %w", err)
					}
					return "", nil
				}
				return output, nil
			})
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "overwrite the file in place")
	return cmd
}
