package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseIdSet(t *testing.T) {
	// Create a ID set
	set := NewSparseIdSet()
	assert.Equal(t, 0, set.Len())
	// Add IDs
	set.Add(1)
	set.Add(2)
	set.Add(4)
	set.Add(8)
	set.Add(2)
	assert.Equal(t, 4, set.Len())
	assert.Equal(t, 0, set.ToDenseId(1))
	assert.Equal(t, 1, set.ToDenseId(2))
	assert.Equal(t, 2, set.ToDenseId(4))
	assert.Equal(t, 3, set.ToDenseId(8))
	assert.Equal(t, NotId, set.ToDenseId(1000))
	assert.Equal(t, 1, set.ToSparseId(0))
	assert.Equal(t, 2, set.ToSparseId(1))
	assert.Equal(t, 4, set.ToSparseId(2))
	assert.Equal(t, 8, set.ToSparseId(3))
	// Nil set
	var nilSet *SparseIdSet
	assert.Equal(t, 0, nilSet.Len())
	assert.Equal(t, NotId, nilSet.ToDenseId(1))
}

func TestSparseVector(t *testing.T) {
	vec := NewSparseVector()
	vec.Add(2, 1)
	vec.Add(1, 0)
	vec.Add(8, 0)
	vec.Add(0, 0)
	assert.Equal(t, 4, vec.Len())
	vec.SortIndex()
	assert.Equal(t, []int{0, 1, 2, 8}, vec.Indices)
	assert.Equal(t, []float64{0, 0, 1, 0}, vec.Values)
}

func TestSparseVector_Find(t *testing.T) {
	vec := NewSparseVector()
	vec.Add(7, 3.5)
	vec.Add(2, 1.5)
	value, exist := vec.Find(2)
	assert.True(t, exist)
	assert.Equal(t, 1.5, value)
	value, exist = vec.Find(7)
	assert.True(t, exist)
	assert.Equal(t, 3.5, value)
	_, exist = vec.Find(4)
	assert.False(t, exist)
	_, exist = NewSparseVector().Find(0)
	assert.False(t, exist)
}

func TestSparseVector_ForIntersection(t *testing.T) {
	a := NewSparseVector()
	a.Add(2, 1)
	a.Add(1, 0)
	a.Add(8, 0)
	b := NewSparseVector()
	b.Add(16, 1)
	b.Add(1, 3)
	b.Add(2, 4)
	intersectIndex := make([]int, 0)
	intersectA := make([]float64, 0)
	intersectB := make([]float64, 0)
	a.ForIntersection(b, func(index int, a, b float64) {
		intersectIndex = append(intersectIndex, index)
		intersectA = append(intersectA, a)
		intersectB = append(intersectB, b)
	})
	assert.Equal(t, []int{1, 2}, intersectIndex)
	assert.Equal(t, []float64{0, 1}, intersectA)
	assert.Equal(t, []float64{3, 4}, intersectB)
}

func TestSparseVectorsMean(t *testing.T) {
	a := NewSparseVector()
	a.Add(0, 1)
	a.Add(1, 2)
	a.Add(2, 3)
	b := NewSparseVector()
	b.Add(4, 4)
	b.Add(5, 6)
	means := SparseVectorsMean([]*SparseVector{a, b})
	assert.Equal(t, []float64{2, 5}, means)
}
