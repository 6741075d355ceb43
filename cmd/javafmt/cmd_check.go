package main

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/dhamidi/javafmt/format"
)

func newCheckCmd() *cobra.Command {
	var showDiff bool
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "check <files...>",
		Short: "Report files that are not formatted",
		Long: `Check whether the given .java files are formatted.

Exits non-zero when any file would change. Use --diff to print a
unified diff of the pending changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve()
			if err != nil {
				return err
			}

			unformatted := 0
			for _, filename := range args {
				source, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}

				output, err := format.Format(source, cfg)
				if err != nil {
					return fmt.Errorf("format %s: %w", filename, err)
				}
				if output == nil {
					continue
				}

				unformatted++
				fmt.Fprintln(os.Stderr, filename)
				if showDiff {
					diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
						A:        difflib.SplitLines(string(source)),
						B:        difflib.SplitLines(string(output)),
						FromFile: filename,
						ToFile:   filename + " (formatted)",
						Context:  3,
					})
					if err != nil {
						return err
					}
					fmt.Fprint(os.Stdout, diff)
				}
			}

			if unformatted > 0 {
				return fmt.Errorf("%d file(s) not formatted", unformatted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print unified diffs for unformatted files")
	flags.register(cmd)

	return cmd
}
