package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gotaste/taste/base"
)

func newTestMatrix(t *testing.T) *RatingMatrix {
	// user 1: A(5) B(3); user 2: A(5) B(4) C(2); user 3: A(1) B(1)
	table := NewDataTable(
		[]int{1, 1, 2, 2, 2, 3, 3},
		[]int{100, 200, 100, 200, 300, 100, 200},
		[]float64{5, 3, 5, 4, 2, 1, 1})
	m, err := NewRatingMatrix(table)
	assert.NoError(t, err)
	return m
}

func TestNewRatingMatrix(t *testing.T) {
	m := newTestMatrix(t)
	assert.Equal(t, 7, m.Len())
	assert.Equal(t, 3, m.UserCount())
	assert.Equal(t, 3, m.ItemCount())
	assert.InDelta(t, 3.0, m.GlobalMean, 1e-9)
	low, high := m.Range()
	assert.Equal(t, 1.0, low)
	assert.Equal(t, 5.0, high)
	assert.Equal(t, []int{1, 2, 3}, m.Users())
	assert.Equal(t, []int{100, 200, 300}, m.Items())
}

func TestNewRatingMatrix_EmptyInput(t *testing.T) {
	_, err := NewRatingMatrix(NewDataTable(nil, nil, nil))
	assert.ErrorIs(t, err, base.ErrEmptyInput)
	_, err = NewRatingMatrix(nil)
	assert.ErrorIs(t, err, base.ErrEmptyInput)
}

func TestNewRatingMatrix_DuplicateEntry(t *testing.T) {
	table := NewDataTable(
		[]int{1, 1},
		[]int{100, 100},
		[]float64{5, 3})
	_, err := NewRatingMatrix(table)
	assert.ErrorIs(t, err, base.ErrDuplicateEntry)
}

func TestRatingMatrix_Get(t *testing.T) {
	m := newTestMatrix(t)
	value, observed := m.Get(2, 300)
	assert.True(t, observed)
	assert.Equal(t, 2.0, value)
	// Unobserved cell of a known pair.
	_, observed = m.Get(1, 300)
	assert.False(t, observed)
	// Unknown ids read as unobserved.
	_, observed = m.Get(99, 100)
	assert.False(t, observed)
	_, observed = m.Get(1, 999)
	assert.False(t, observed)
}

func TestRatingMatrix_Row(t *testing.T) {
	m := newTestMatrix(t)
	row, err := m.Row(2)
	assert.NoError(t, err)
	assert.Equal(t, 3, row.Len())
	count, err := m.RowCount(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	_, err = m.Row(99)
	assert.ErrorIs(t, err, base.ErrUnknownEntity)
	_, err = m.RowCount(99)
	assert.ErrorIs(t, err, base.ErrUnknownEntity)
}

func TestRatingMatrix_FilterRows(t *testing.T) {
	m := newTestMatrix(t)
	filtered, err := m.FilterRows(func(count int) bool { return count > 2 })
	assert.NoError(t, err)
	assert.Equal(t, 1, filtered.UserCount())
	assert.Equal(t, []int{2}, filtered.Users())
	assert.Equal(t, 3, filtered.ItemCount())
	// The receiver is untouched.
	assert.Equal(t, 3, m.UserCount())
	// Filtering away every row fails like an empty input.
	_, err = m.FilterRows(func(count int) bool { return count > 100 })
	assert.ErrorIs(t, err, base.ErrEmptyInput)
}

func TestRatingMatrix_ToTable(t *testing.T) {
	m := newTestMatrix(t)
	table := m.ToTable()
	assert.Equal(t, m.Len(), table.Len())
	rebuilt, err := NewRatingMatrix(table)
	assert.NoError(t, err)
	assert.Equal(t, m.UserCount(), rebuilt.UserCount())
	assert.Equal(t, m.ItemCount(), rebuilt.ItemCount())
}
