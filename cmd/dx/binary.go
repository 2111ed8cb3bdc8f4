package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dxserializer/dx"
	"github.com/dxserializer/dx/document"
)

func newToBinaryCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "to-binary <file>",
		Short: "Parse a text-form file (LLM or Human, auto-detected) and write its Machine container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := parseAutoDetect(string(text))
			if err != nil {
				return err
			}

			bin, err := dx.SerializeBinary(doc)
			if err != nil {
				return fmt.Errorf("serializing Machine container: %w", err)
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(bin)
				return err
			}

			if err := os.WriteFile(out, bin, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(bin), out)

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path for the Machine container (default: stdout)")

	return cmd
}

func newFromBinaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-binary <file>",
		Short: "Decode a Machine container and print it as Human text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := dx.DeserializeBinary(bin)
			if err != nil {
				return fmt.Errorf("deserializing Machine container: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), dx.FormatHuman(doc))

			return nil
		},
	}
}

// parseAutoDetect parses text using dx.DetectFormat to choose between
// ParseLLM and ParseHuman.
func parseAutoDetect(text string) (*document.Document, error) {
	if dx.DetectFormat(text) == dx.FormatLLM {
		doc, err := dx.ParseLLM(text)
		if err != nil {
			return nil, fmt.Errorf("parsing LLM form: %w", err)
		}

		return doc, nil
	}

	doc, err := dx.ParseHuman(text)
	if err != nil {
		return nil, fmt.Errorf("parsing Human form: %w", err)
	}

	return doc, nil
}
