package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Deterministic(t *testing.T) {
	a := NewRandomGenerator(42)
	b := NewRandomGenerator(42)
	assert.Equal(t, a.UniformVector(100, 1, 5), b.UniformVector(100, 1, 5))
	assert.Equal(t, a.Perm(100), b.Perm(100))
}

func TestRandomGenerator_UniformVector(t *testing.T) {
	rng := NewRandomGenerator(0)
	vec := rng.UniformVector(1000, 0.5, 5.0)
	assert.Equal(t, 1000, len(vec))
	for _, v := range vec {
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 5.0)
	}
}

func TestRandomGenerator_SampleInts(t *testing.T) {
	rng := NewRandomGenerator(0)
	sample := rng.SampleInts(10, 4)
	assert.Equal(t, 4, len(sample))
	seen := make(map[int]bool)
	for _, v := range sample {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
		assert.False(t, seen[v])
		seen[v] = true
	}
	// Sample size is capped by the population.
	assert.Equal(t, 10, len(rng.SampleInts(10, 100)))
}
