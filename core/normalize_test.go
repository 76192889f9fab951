package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gotaste/taste/base"
)

func TestNormalizeZScore(t *testing.T) {
	m := newTestMatrix(t)
	normalized := NormalizeZScore(m)
	// Observed values of every row with positive deviation have mean 0.
	for userIndex, vec := range normalized.UserRatings {
		if normalized.Stats[userIndex].StdDev == 0 {
			continue
		}
		sum := 0.0
		vec.ForEach(func(_, _ int, value float64) {
			sum += value
		})
		assert.InDelta(t, 0, sum/float64(vec.Len()), 1e-9)
	}
	// Unobserved cells remain unobserved.
	userIndex := m.UserIndex.ToDenseId(1)
	assert.Equal(t, 2, normalized.UserRatings[userIndex].Len())
	// The underlying matrix is untouched.
	value, _ := m.Get(1, 100)
	assert.Equal(t, 5.0, value)
}

func TestNormalizeZScore_ConstantRow(t *testing.T) {
	table := NewDataTable(
		[]int{1, 1, 1},
		[]int{100, 200, 300},
		[]float64{4, 4, 4})
	m, err := NewRatingMatrix(table)
	assert.NoError(t, err)
	normalized := NormalizeZScore(m)
	// All-identical rows normalize to exactly 0 everywhere, never NaN.
	normalized.UserRatings[0].ForEach(func(_, _ int, value float64) {
		assert.Equal(t, 0.0, value)
		assert.False(t, math.IsNaN(value))
	})
	// Denormalizing maps back to the row mean.
	assert.Equal(t, 4.0, normalized.Stats[0].Denormalize(0))
}

func TestRowStats_RoundTrip(t *testing.T) {
	m := newTestMatrix(t)
	normalized := NormalizeZScore(m)
	for userIndex, row := range m.UserRatings {
		stats := normalized.Stats[userIndex]
		if stats.StdDev == 0 {
			continue
		}
		row.ForEach(func(_, _ int, value float64) {
			assert.InDelta(t, value, stats.Denormalize(stats.Normalize(value)), 1e-9)
		})
	}
}

func TestBinarize(t *testing.T) {
	m := newTestMatrix(t)
	binary, err := Binarize(m, 4)
	assert.NoError(t, err)
	value, observed := binary.Get(1, 100)
	assert.True(t, observed)
	assert.Equal(t, 1.0, value)
	value, observed = binary.Get(1, 200)
	assert.True(t, observed)
	assert.Equal(t, 0.0, value)
	// Unobserved cells stay unobserved.
	_, observed = binary.Get(1, 300)
	assert.False(t, observed)
}

func TestBinarize_ThresholdOutOfRange(t *testing.T) {
	m := newTestMatrix(t)
	_, err := Binarize(m, 6)
	assert.ErrorIs(t, err, base.ErrInvalidParameter)
	_, err = Binarize(m, 0)
	assert.ErrorIs(t, err, base.ErrInvalidParameter)
}
