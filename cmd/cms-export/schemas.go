// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cms-export/internal/convert"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Print the collection schemas used for field mapping",
	Long: `Schemas prints the effective schema table: the built-in collections merged
with the file given by --schemas. The YAML output can be used as a starting
point for a custom schemas file.`,
	Args: cobra.NoArgs,
	RunE: runSchemas,
}

func runSchemas(cmd *cobra.Command, args []string) error {
	cfg, err := converterConfig()
	if err != nil {
		return err
	}
	schemas, err := schemaTable(cfg)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeSchemasJSON(cmd, schemas)
	}
	return schemas.WriteYAML(cmd.OutOrStdout())
}

func writeSchemasJSON(cmd *cobra.Command, schemas convert.SchemaTable) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(schemas)
}

func init() {
	schemasCmd.Flags().Bool("json", false, "output schemas as JSON")

	rootCmd.AddCommand(schemasCmd)
}
