// Command dx demonstrates the conversion facade (dxserializer/dx) against
// real files: parsing/formatting the LLM and Human textual forms,
// converting to/from the Machine binary container, validating input, and
// writing the §6.5 editor-host cache files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dx",
		Short: "dx - DX Serializer conversion CLI",
		Long:  "dx drives the DX Serializer facade (parse/format/serialize/validate) against files on disk.",
	}

	cmd.AddCommand(
		newParseLLMCmd(),
		newFormatLLMCmd(),
		newParseHumanCmd(),
		newFormatHumanCmd(),
		newToBinaryCmd(),
		newFromBinaryCmd(),
		newValidateCmd(),
		newCacheCmd(),
	)

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dx:", err)
		os.Exit(1)
	}
}
