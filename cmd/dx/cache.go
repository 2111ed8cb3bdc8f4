package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dxserializer/dx"
)

// newCacheCmd plays the role of the editor-host collaborator from §6.5:
// given a Human document the host just saved at <file>, it produces the
// LLM and Machine cache files under --cache-root (at the paths
// dx.CachePaths names, <cache-root>/<file>.llm and .machine) and writes
// them to disk — the
// one place in this module that actually touches the filesystem, since the
// core itself never does (§5).
func newCacheCmd() *cobra.Command {
	var cacheRoot string

	cmd := &cobra.Command{
		Use:   "cache <file>",
		Short: "Write the §6.5 LLM/Machine cache files for a saved Human document",
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

			llmPath, machinePath := dx.CachePaths(cacheRoot, args[0])

			if err := os.MkdirAll(filepath.Dir(llmPath), 0o755); err != nil {
				return fmt.Errorf("creating cache directory: %w", err)
			}

			if err := os.WriteFile(llmPath, []byte(dx.FormatLLM(doc)), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", llmPath, err)
			}

			bin, err := dx.SerializeBinary(doc)
			if err != nil {
				return fmt.Errorf("serializing Machine container: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(machinePath), 0o755); err != nil {
				return fmt.Errorf("creating cache directory: %w", err)
			}

			if err := os.WriteFile(machinePath, bin, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", machinePath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\nwrote %s\n", llmPath, machinePath)

			return nil
		},
	}

	cmd.Flags().StringVar(&cacheRoot, "cache-root", ".dx-cache", "root directory for cache files")

	return cmd
}
