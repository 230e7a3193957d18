package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/benchmark/internal/generator"
	"github.com/datagen-go/datagen/benchmark/internal/runner"
)

func TestRunTinyGeneratesAndEvaluatesWithoutError(t *testing.T) {
	r := runner.NewRunner(t.TempDir(), false, false)
	result, err := r.Run(context.Background(), "tiny", generator.NewTinyGenerator())
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Greater(t, result.NodeCount, 0)
	assert.Greater(t, result.OutputBytes, 0)
}

func TestRunAllCoversEveryBuiltInShape(t *testing.T) {
	r := runner.NewRunner(t.TempDir(), false, false)
	results, err := r.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	names := map[string]bool{}
	for _, res := range results {
		names[res.Name] = true
		assert.Empty(t, res.Errors, "benchmark %s had errors", res.Name)
	}
	assert.True(t, names["tiny"])
	assert.True(t, names["mid"])
	assert.True(t, names["large"])
}
