package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKFilter(t *testing.T) {
	filter := NewTopKFilter(3)
	filter.Add(10, 1)
	filter.Add(20, 8)
	filter.Add(30, 2)
	filter.Add(40, 7)
	filter.Add(50, 9)
	ids, scores := filter.Results()
	assert.Equal(t, []int{50, 20, 40}, ids)
	assert.Equal(t, []float64{9, 8, 7}, scores)
}

func TestTopKFilter_Ties(t *testing.T) {
	filter := NewTopKFilter(2)
	filter.Add(7, 5)
	filter.Add(3, 5)
	filter.Add(5, 5)
	// On equal scores the lower id wins.
	ids, _ := filter.Results()
	assert.Equal(t, []int{3, 5}, ids)
}

func TestTopKFilter_Short(t *testing.T) {
	filter := NewTopKFilter(10)
	filter.Add(1, 3)
	filter.Add(2, 4)
	ids, scores := filter.Results()
	assert.Equal(t, []int{2, 1}, ids)
	assert.Equal(t, []float64{4, 3}, scores)
}
