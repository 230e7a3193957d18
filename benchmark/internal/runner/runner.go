// Package runner drives a benchmark.generator.Generator through a real
// generation run and times it: it takes the place of the teacher's
// exec.Command("graphql-go-gen", ...) subprocess dance, since the
// generation driver being benchmarked (internal/generate.Run) lives in
// this same module and can be called in-process.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/datagen-go/datagen/benchmark/internal/generator"
	"github.com/datagen-go/datagen/internal/generate"
)

// BenchmarkResult is one generator's timing and output profile.
type BenchmarkResult struct {
	Name           string
	NodeCount      int
	MaxDepth       int
	SchemaBytes    int
	OutputBytes    int
	SetupTime      time.Duration
	GenerationTime time.Duration
	MemoryUsed     uint64
	Errors         []error
}

// Runner owns the scratch directory benchmark schemas and outputs are
// written under.
type Runner struct {
	outputDir string
	keepFiles bool
	verbose   bool
}

func NewRunner(outputDir string, keepFiles, verbose bool) *Runner {
	return &Runner{outputDir: outputDir, keepFiles: keepFiles, verbose: verbose}
}

// Run generates a schema with gen, evaluates it via internal/generate.Run,
// and reports how long each step took.
func (r *Runner) Run(ctx context.Context, name string, gen generator.Generator) (*BenchmarkResult, error) {
	result := &BenchmarkResult{Name: name}

	testDir := filepath.Join(r.outputDir, name)
	if err := os.RemoveAll(testDir); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("cleaning test directory: %w", err)
	}
	if err := os.MkdirAll(testDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating test directory: %w", err)
	}
	if !r.keepFiles {
		defer func() {
			if err := os.RemoveAll(testDir); err != nil {
				r.log("warning: failed to clean up %s: %v", testDir, err)
			}
		}()
	}

	r.log("generating schema for %s...", name)
	setupStart := time.Now()
	schemaPath, err := gen.Generate(ctx, testDir)
	if err != nil {
		return nil, fmt.Errorf("generating schema: %w", err)
	}
	result.SetupTime = time.Since(setupStart)

	stats := gen.GetStats()
	result.NodeCount = stats.NodeCount
	result.MaxDepth = stats.MaxDepth
	result.SchemaBytes = stats.SchemaBytes

	r.log("schema has %d nodes, depth %d, %d bytes", result.NodeCount, result.MaxDepth, result.SchemaBytes)

	var memBefore, memAfter runtime.MemStats
	runtime.ReadMemStats(&memBefore)

	outputPath := filepath.Join(testDir, "output.json")
	r.log("running generate for %s...", name)
	genStart := time.Now()
	runErr := generate.Run(generate.Request{
		SchemaPath: schemaPath,
		OutputPath: outputPath,
		Count:      1,
	})
	result.GenerationTime = time.Since(genStart)
	if runErr != nil {
		result.Errors = append(result.Errors, fmt.Errorf("generation failed: %w", runErr))
	}

	runtime.ReadMemStats(&memAfter)
	result.MemoryUsed = memAfter.Alloc - memBefore.Alloc

	if info, err := os.Stat(outputPath); err == nil {
		result.OutputBytes = int(info.Size())
	} else if runErr == nil {
		result.Errors = append(result.Errors, fmt.Errorf("output file not created: %w", err))
	}

	r.log("generation completed in %v", result.GenerationTime)
	return result, nil
}

// RunAll runs every built-in schema shape in increasing order of size.
func (r *Runner) RunAll(ctx context.Context) ([]*BenchmarkResult, error) {
	benchmarks := []struct {
		name string
		gen  generator.Generator
	}{
		{"tiny", generator.NewTinyGenerator()},
		{"mid", generator.NewMidGenerator()},
		{"large", generator.NewLargeGenerator()},
	}

	results := make([]*BenchmarkResult, 0, len(benchmarks))
	for _, bm := range benchmarks {
		result, err := r.Run(ctx, bm.name, bm.gen)
		if err != nil {
			r.log("error running %s: %v", bm.name, err)
			if result == nil {
				result = &BenchmarkResult{Name: bm.name, Errors: []error{err}}
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.verbose {
		fmt.Printf(format+"\n", args...)
	}
}
