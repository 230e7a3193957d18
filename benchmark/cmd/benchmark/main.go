package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/datagen-go/datagen/benchmark/internal/generator"
	"github.com/datagen-go/datagen/benchmark/internal/report"
	"github.com/datagen-go/datagen/benchmark/internal/runner"
)

var (
	testSet    string
	outputDir  string
	keepFiles  bool
	jsonOutput bool
	jsonPath   string
	verbose    bool
)

func init() {
	flag.StringVar(&testSet, "test-set", "all", "Test set to run: tiny, mid, large, or all")
	flag.StringVar(&outputDir, "output-dir", "benchmark-output", "Directory for generated schema/output files")
	flag.BoolVar(&keepFiles, "keep-files", false, "Don't delete generated files after benchmark")
	flag.BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	flag.StringVar(&jsonPath, "json-path", "", "Path to save JSON output (defaults to stdout)")
	flag.BoolVar(&verbose, "verbose", true, "Verbose output")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\ninterrupted, cleaning up...")
		cancel()
	}()

	r := runner.NewRunner(outputDir, keepFiles, verbose)

	var results []*runner.BenchmarkResult
	var err error

	switch strings.ToLower(testSet) {
	case "all":
		results, err = r.RunAll(ctx)
	case "tiny":
		var result *runner.BenchmarkResult
		result, err = r.Run(ctx, "tiny", generator.NewTinyGenerator())
		if result != nil {
			results = []*runner.BenchmarkResult{result}
		}
	case "mid":
		var result *runner.BenchmarkResult
		result, err = r.Run(ctx, "mid", generator.NewMidGenerator())
		if result != nil {
			results = []*runner.BenchmarkResult{result}
		}
	case "large":
		var result *runner.BenchmarkResult
		result, err = r.Run(ctx, "large", generator.NewLargeGenerator())
		if result != nil {
			results = []*runner.BenchmarkResult{result}
		}
	default:
		return fmt.Errorf("unknown test set: %s (use tiny, mid, large, or all)", testSet)
	}

	if err != nil && len(results) == 0 {
		return err
	}

	reporter := report.NewReporter(jsonOutput, jsonPath)
	if err := reporter.Generate(results); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	if !jsonOutput {
		fmt.Println("\nbenchmark completed")
		if keepFiles {
			if absPath, err := filepath.Abs(outputDir); err == nil {
				fmt.Printf("generated files kept in: %s\n", absPath)
			}
		}

		errorCount := 0
		for _, res := range results {
			errorCount += len(res.Errors)
		}
		if errorCount > 0 {
			fmt.Printf("\nwarning: %d errors encountered during benchmarks\n", errorCount)
			return fmt.Errorf("%d errors encountered", errorCount)
		}
	}

	return nil
}
