package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestRunningKnownValues(t *testing.T) {
	var r Running
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Observe(x)
	}

	assert.Equal(t, uint64(8), r.Count())
	assert.InDelta(t, 5.0, r.Mean(), tolerance)
	assert.InDelta(t, 32.0, r.SumSqDev(), tolerance)
	assert.InDelta(t, 4.0, r.Variance(), tolerance)
	assert.InDelta(t, 2.0, r.StdDev(), tolerance)
}

func TestRunningEmpty(t *testing.T) {
	var r Running
	assert.Equal(t, uint64(0), r.Count())
	assert.Equal(t, 0.0, r.Mean())
	assert.Equal(t, 0.0, r.Variance())
	assert.Equal(t, 0.0, r.StdDev())
}

func TestMergeMatchesSequentialForAnyPartitioning(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 1000)
	for i := range values {
		values[i] = rng.NormFloat64()*13 + 100
	}

	var sequential Running
	for _, x := range values {
		sequential.Observe(x)
	}

	partitionings := [][]int{
		{1000},
		{500, 500},
		{1, 999},
		{333, 333, 334},
		{10, 240, 250, 500},
		{1, 1, 1, 997},
	}

	for _, sizes := range partitionings {
		var merged Running
		offset := 0
		for _, size := range sizes {
			var part Running
			for _, x := range values[offset : offset+size] {
				part.Observe(x)
			}
			offset += size
			merged.Merge(part)
		}
		require.Equal(t, 1000, offset)

		assert.Equal(t, sequential.Count(), merged.Count())
		assert.InDelta(t, sequential.Mean(), merged.Mean(), 1e-9)
		assert.InDelta(t, sequential.SumSqDev(), merged.SumSqDev(), 1e-6)
	}
}

func TestMergeWithEmptySides(t *testing.T) {
	var a, empty Running
	a.Observe(3)
	a.Observe(5)

	merged := a
	merged.Merge(empty)
	assert.Equal(t, a, merged)

	var b Running
	b.Merge(a)
	assert.Equal(t, a, b)
}

func TestMergeCommutes(t *testing.T) {
	var a, b Running
	for _, x := range []float64{1, 2, 3} {
		a.Observe(x)
	}
	for _, x := range []float64{10, 20} {
		b.Observe(x)
	}

	ab, ba := a, b
	ab.Merge(b)
	ba.Merge(a)

	assert.Equal(t, ab.Count(), ba.Count())
	assert.InDelta(t, ab.Mean(), ba.Mean(), tolerance)
	assert.InDelta(t, ab.SumSqDev(), ba.SumSqDev(), tolerance)
}
