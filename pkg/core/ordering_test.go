package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderingSuccessDominates(t *testing.T) {
	winner := Score{Success: true, Value: 1000.0}
	loser := Score{Success: false, Value: 0.0}

	for _, ord := range []Ordering{Minimize, Maximize} {
		t.Run(ord.String(), func(t *testing.T) {
			assert.Positive(t, ord.Compare(winner, loser))
			assert.Negative(t, ord.Compare(loser, winner))
		})
	}
}

func TestOrderingValueComparison(t *testing.T) {
	tests := []struct {
		name     string
		ordering Ordering
		a, b     float64
		want     int
	}{
		{"minimize prefers lower", Minimize, 1.0, 2.0, 1},
		{"minimize rejects higher", Minimize, 2.0, 1.0, -1},
		{"minimize ties equal", Minimize, 1.5, 1.5, 0},
		{"maximize prefers higher", Maximize, 2.0, 1.0, 1},
		{"maximize rejects lower", Maximize, 1.0, 2.0, -1},
		{"maximize ties equal", Maximize, 1.5, 1.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ordering.Compare(Score{Value: tt.a}, Score{Value: tt.b})
			assert.Equal(t, tt.want, got)

			// Same comparison among successful scores.
			got = tt.ordering.Compare(Score{Success: true, Value: tt.a}, Score{Success: true, Value: tt.b})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrdering(t *testing.T) {
	ord, err := ParseOrdering("minimize")
	require.NoError(t, err)
	assert.Equal(t, Minimize, ord)

	ord, err = ParseOrdering("MAXIMIZE")
	require.NoError(t, err)
	assert.Equal(t, Maximize, ord)

	_, err = ParseOrdering("sideways")
	assert.Error(t, err)
}
