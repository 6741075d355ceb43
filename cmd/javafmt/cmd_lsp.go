package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/javafmt/lsp"
)

func newLSPCmd() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve()
			if err != nil {
				return err
			}
			server := lsp.NewServer("0.1.0", cfg)
			return server.RunStdio()
		},
	}

	flags.register(cmd)

	return cmd
}
