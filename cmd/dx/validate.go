package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dxserializer/dx"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a text-form file (LLM or Human, auto-detected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			report := dx.Validate(string(text))
			if report.OK {
				fmt.Fprintf(cmd.OutOrStdout(), "OK (%s form)\n", report.Format)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "INVALID (%s form)\n", report.Format)
			for _, e := range report.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
			}

			return fmt.Errorf("%s is not a well-formed %s document", args[0], report.Format)
		},
	}
}
