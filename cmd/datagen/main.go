package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:     "datagen",
	Short:   "Schema-driven synthetic data generator",
	Long:    `datagen evaluates a declarative schema describing how to produce a synthetic value and serialises the result as JSON, YAML, or XML.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(writeJSONSchemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
