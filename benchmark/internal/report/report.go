package report

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/datagen-go/datagen/benchmark/internal/runner"
)

// Reporter renders a set of BenchmarkResults as a table or as JSON.
type Reporter struct {
	jsonOutput bool
	outputPath string
}

func NewReporter(jsonOutput bool, outputPath string) *Reporter {
	return &Reporter{jsonOutput: jsonOutput, outputPath: outputPath}
}

type JSONReport struct {
	Timestamp  time.Time         `json:"timestamp"`
	System     SystemInfo        `json:"system"`
	Benchmarks []BenchmarkReport `json:"benchmarks"`
}

type SystemInfo struct {
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	CPUCount     int    `json:"cpu_count"`
	GoVersion    string `json:"go_version"`
}

type BenchmarkReport struct {
	Name               string   `json:"name"`
	NodeCount          int      `json:"node_count"`
	MaxDepth           int      `json:"max_depth"`
	SchemaBytes        int      `json:"schema_bytes"`
	OutputBytes        int      `json:"output_bytes"`
	SetupTimeMs        int64    `json:"setup_time_ms"`
	GenerationTimeMs   int64    `json:"generation_time_ms"`
	MemoryUsedBytes    uint64   `json:"memory_used_bytes"`
	NodesPerSecond     float64  `json:"nodes_per_second"`
	ErrorCount         int      `json:"error_count"`
	Errors             []string `json:"errors,omitempty"`
}

func (r *Reporter) Generate(results []*runner.BenchmarkResult) error {
	if r.jsonOutput {
		return r.generateJSON(results)
	}
	return r.generateTable(results)
}

func (r *Reporter) generateTable(results []*runner.BenchmarkResult) error {
	fmt.Println("\n" + strings.Repeat("=", 100))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("Generated at: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Schema\tNodes\tDepth\tSchema Bytes\tOutput Bytes\tSetup\tGeneration\tNodes/s\tMemory\tStatus")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	var totalNodes int
	var totalGenTime time.Duration

	for _, res := range results {
		status := "ok"
		if len(res.Errors) > 0 {
			status = fmt.Sprintf("%d errors", len(res.Errors))
		}

		nodesPerSec := float64(res.NodeCount) / res.GenerationTime.Seconds()

		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%v\t%v\t%.1f\t%s\t%s\n",
			res.Name,
			res.NodeCount,
			res.MaxDepth,
			res.SchemaBytes,
			res.OutputBytes,
			res.SetupTime.Round(time.Microsecond),
			res.GenerationTime.Round(time.Microsecond),
			nodesPerSec,
			formatBytes(res.MemoryUsed),
			status,
		)

		totalNodes += res.NodeCount
		totalGenTime += res.GenerationTime
	}

	fmt.Fprintln(w, strings.Repeat("-", 100))
	w.Flush()

	for _, res := range results {
		if len(res.Errors) > 0 {
			fmt.Printf("\nerrors for %s:\n", res.Name)
			for _, err := range res.Errors {
				fmt.Printf("  - %v\n", err)
			}
		}
	}

	fmt.Println(strings.Repeat("=", 100))
	return nil
}

func (r *Reporter) generateJSON(results []*runner.BenchmarkResult) error {
	report := JSONReport{
		Timestamp:  time.Now(),
		System:     getSystemInfo(),
		Benchmarks: make([]BenchmarkReport, len(results)),
	}

	for i, res := range results {
		br := BenchmarkReport{
			Name:             res.Name,
			NodeCount:        res.NodeCount,
			MaxDepth:         res.MaxDepth,
			SchemaBytes:      res.SchemaBytes,
			OutputBytes:      res.OutputBytes,
			SetupTimeMs:      res.SetupTime.Milliseconds(),
			GenerationTimeMs: res.GenerationTime.Milliseconds(),
			MemoryUsedBytes:  res.MemoryUsed,
			NodesPerSecond:   float64(res.NodeCount) / res.GenerationTime.Seconds(),
			ErrorCount:       len(res.Errors),
		}
		if len(res.Errors) > 0 {
			br.Errors = make([]string, len(res.Errors))
			for j, err := range res.Errors {
				br.Errors[j] = err.Error()
			}
		}
		report.Benchmarks[i] = br
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	if r.outputPath != "" {
		return os.WriteFile(r.outputPath, data, 0o644)
	}
	fmt.Println(string(data))
	return nil
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func getSystemInfo() SystemInfo {
	return SystemInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		CPUCount:     runtime.NumCPU(),
		GoVersion:    runtime.Version(),
	}
}
