package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datagen-go/datagen/pkg/schemaio"
)

var writeJSONSchemaCmd = &cobra.Command{
	Use:   "writeJsonSchema <path>",
	Short: "Write the JSON Schema of the input format to path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := schemaio.WriteJSONSchema(path); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("Wrote JSON Schema to: %s\n", path)
		}
		return nil
	},
}
