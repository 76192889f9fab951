package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gotaste/taste/base"
)

func TestPopular(t *testing.T) {
	m := newTestMatrix(t)
	popular := NewPopular(nil)
	assert.NoError(t, popular.Fit(m))
	// A: mean(5,5,1) = 11/3; B: mean(3,4,1) = 8/3; C: 2.
	prediction, ok, err := popular.Predict(1, 100)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 11.0/3, prediction, 1e-9)
	// The ranking is identical for every user.
	for _, userId := range []int{1, 3} {
		p1, _, _ := popular.Predict(userId, 300)
		p2, _, _ := popular.Predict(2, 300)
		assert.Equal(t, p2, p1)
	}
	count, err := popular.Count(100)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	_, err = popular.Count(999)
	assert.ErrorIs(t, err, base.ErrUnknownEntity)
}

func TestPopular_TopN(t *testing.T) {
	m := newTestMatrix(t)
	popular := NewPopular(nil)
	assert.NoError(t, popular.Fit(m))
	// User 3 has not rated C; C is the only candidate.
	ranked, err := popular.TopN(3, 5)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(ranked))
	assert.Equal(t, 300, ranked[0].ItemId)
	_, err = popular.TopN(3, 0)
	assert.ErrorIs(t, err, base.ErrInvalidParameter)
}

func TestRandom_Deterministic(t *testing.T) {
	m := newTestMatrix(t)
	first := NewRandom(base.Params{base.RandomState: 42})
	assert.NoError(t, first.Fit(m))
	second := NewRandom(base.Params{base.RandomState: 42})
	assert.NoError(t, second.Fit(m))
	// A fixed seed reproduces identical predictions and top-N output.
	for _, userId := range m.Users() {
		for _, itemId := range m.Items() {
			p1, ok1, err := first.Predict(userId, itemId)
			assert.NoError(t, err)
			p2, ok2, _ := second.Predict(userId, itemId)
			assert.Equal(t, ok1, ok2)
			assert.Equal(t, p1, p2)
		}
		r1, err := first.TopN(userId, 3)
		assert.NoError(t, err)
		r2, _ := second.TopN(userId, 3)
		assert.Equal(t, r1, r2)
	}
	// Repeated queries of the same cell agree.
	p1, _, _ := first.Predict(1, 300)
	p2, _, _ := first.Predict(1, 300)
	assert.Equal(t, p1, p2)
}

func TestRandom_Range(t *testing.T) {
	m := newTestMatrix(t)
	random := NewRandom(base.Params{base.RandomState: 7})
	assert.NoError(t, random.Fit(m))
	low, high := m.Range()
	for _, userId := range m.Users() {
		for _, itemId := range m.Items() {
			prediction, ok, err := random.Predict(userId, itemId)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.GreaterOrEqual(t, prediction, low)
			assert.LessOrEqual(t, prediction, high)
		}
	}
	_, _, err := random.Predict(99, 100)
	assert.ErrorIs(t, err, base.ErrUnknownEntity)
}
