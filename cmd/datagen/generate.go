package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datagen-go/datagen/internal/generate"
)

var (
	pretty bool
	count  int
)

var generateCmd = &cobra.Command{
	Use:   "generate [<schema-file>] [<out-file>]",
	Short: "Evaluate a schema and print or write the generated value",
	Long: `Evaluates the input schema (auto-discovered as datagen.schema.{json,yaml,yml}
in the current directory or one of its parents when no schema-file is given) and writes
the serialised result to out-file, or stdout when omitted.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var schemaPath, outPath string
		if len(args) > 0 {
			schemaPath = args[0]
		}
		if len(args) > 1 {
			outPath = args[1]
		}

		if !quiet {
			fmt.Printf("Generating from: %s\n", describePath(schemaPath))
		}

		err := generate.Run(generate.Request{
			SchemaPath: schemaPath,
			OutputPath: outPath,
			Pretty:     pretty,
			Count:      count,
		})
		if err != nil {
			return err
		}

		if !quiet && outPath != "" {
			fmt.Printf("Wrote output to: %s\n", outPath)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print the serialised output where supported")
	generateCmd.Flags().IntVar(&count, "count", 1, "number of records to generate")
}

func describePath(path string) string {
	if path == "" {
		return "(auto-discovered)"
	}
	return path
}
