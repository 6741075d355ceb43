package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javafmt/format"
)

func newFmtCmd() *cobra.Command {
	var overwrite bool
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Format a .java file",
		Long: `Format a .java file to stdout.

If a file is provided, it must have a .java extension.
If no file is provided, reads Java source from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve()
			if err != nil {
				return err
			}

			var source []byte
			var filename string

			if len(args) == 0 {
				if overwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				if ext := filepath.Ext(filename); ext != ".java" {
					return fmt.Errorf("expected .java file, got %s", ext)
				}
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			output, err := format.Format(source, cfg)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}
			if output == nil {
				// Already formatted.
				output = source
			}

			if overwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")
	flags.register(cmd)

	return cmd
}
