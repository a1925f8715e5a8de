package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"imageprompt/pkg/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the analysis result",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(schema.ResultSchema)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
