package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dxserializer/dx"
)

func newParseLLMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-llm <file>",
		Short: "Parse an LLM-form file and print its structure",
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

			dumpDocument(cmd.OutOrStdout(), doc)

			return nil
		},
	}
}

func newParseHumanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-human <file>",
		Short: "Parse a Human-form file and print its structure",
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

			dumpDocument(cmd.OutOrStdout(), doc)

			return nil
		},
	}
}
