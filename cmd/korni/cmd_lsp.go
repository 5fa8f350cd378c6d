package main

import (
	"github.com/ph1losof/korni/internal/lspserver"
	"github.com/spf13/cobra"
)

const korniVersion = "0.1.0"

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lspserver.New(korniVersion)
			return server.RunStdio()
		},
	}
}
