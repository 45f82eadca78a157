package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakanatorz/genetics/pkg/engine"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestStartRunAssignsUUID(t *testing.T) {
	a := openTestArchive(t)

	run, err := a.StartRun(context.Background(), RunMeta{
		Ordering:       "minimize",
		Termination:    "greedy",
		PopulationSize: 64,
		Cycles:         100,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID())
	assert.NoError(t, err, "run ID should be a valid UUID")
}

func TestRecordAndReadBackHistory(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	run, err := a.StartRun(ctx, RunMeta{Ordering: "minimize", Termination: "patient", PopulationSize: 9, Cycles: 3})
	require.NoError(t, err)

	records := []engine.GenerationRecord{
		{Generation: 1, Mean: 10.5, StdDev: 2.1, BestSuccess: false, BestValue: 7.0, BestSummary: "gen one best"},
		{Generation: 2, Mean: 8.2, StdDev: 1.4, BestSuccess: false, BestValue: 5.5, BestSummary: "gen two best"},
		{Generation: 3, Mean: 6.0, StdDev: 0.9, BestSuccess: true, BestValue: 0.4, BestSummary: "winner"},
	}
	for _, rec := range records {
		require.NoError(t, run.RecordGeneration(ctx, rec))
	}

	history, err := a.RunHistory(ctx, run.ID())
	require.NoError(t, err)
	require.Len(t, history, 3)

	for i, got := range history {
		want := records[i]
		assert.Equal(t, want.Generation, got.Generation)
		assert.Equal(t, want.Mean, got.Mean)
		assert.Equal(t, want.StdDev, got.StdDev)
		assert.Equal(t, want.BestSuccess, got.BestSuccess)
		assert.Equal(t, want.BestValue, got.BestValue)
		assert.Equal(t, want.BestSummary, got.BestSummary)
		assert.False(t, got.RecordedAt.IsZero())
	}
}

func TestRunsAreIsolated(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	run1, err := a.StartRun(ctx, RunMeta{Ordering: "minimize", Termination: "patient"})
	require.NoError(t, err)
	run2, err := a.StartRun(ctx, RunMeta{Ordering: "maximize", Termination: "greedy"})
	require.NoError(t, err)

	require.NoError(t, run1.RecordGeneration(ctx, engine.GenerationRecord{Generation: 1, BestSummary: "a"}))
	require.NoError(t, run2.RecordGeneration(ctx, engine.GenerationRecord{Generation: 1, BestSummary: "b"}))
	require.NoError(t, run2.RecordGeneration(ctx, engine.GenerationRecord{Generation: 2, BestSummary: "b2"}))

	h1, err := a.RunHistory(ctx, run1.ID())
	require.NoError(t, err)
	h2, err := a.RunHistory(ctx, run2.ID())
	require.NoError(t, err)

	assert.Len(t, h1, 1)
	assert.Len(t, h2, 2)
	assert.Equal(t, "a", h1[0].BestSummary)
}

func TestHistoryOfUnknownRunIsEmpty(t *testing.T) {
	a := openTestArchive(t)

	history, err := a.RunHistory(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDuplicateGenerationRejected(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	run, err := a.StartRun(ctx, RunMeta{})
	require.NoError(t, err)

	require.NoError(t, run.RecordGeneration(ctx, engine.GenerationRecord{Generation: 1}))
	assert.Error(t, run.RecordGeneration(ctx, engine.GenerationRecord{Generation: 1}))
}
