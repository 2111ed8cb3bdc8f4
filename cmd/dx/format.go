package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dxserializer/dx"
)

func newFormatLLMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format-llm <file>",
		Short: "Parse a Human-form file and print it re-encoded as LLM text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := dx.ParseHuman(string(text))
			if err != nil {
				return fmt.Errorf("parsing Human form: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), dx.FormatLLM(doc))

			return nil
		},
	}
}

func newFormatHumanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format-human <file>",
		Short: "Parse an LLM-form file and print it re-encoded as Human text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := dx.ParseLLM(string(text))
			if err != nil {
				return fmt.Errorf("parsing LLM form: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), dx.FormatHuman(doc))

			return nil
		},
	}
}
