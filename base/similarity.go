package base

import "math"

// FuncSimilarity computes the similarity between a pair of sparse vectors.
// Similarity is computed over pairwise-complete observations only: indices
// observed by both vectors. A pair with no overlap, or with zero norm over
// the overlap, has undefined similarity and yields NaN.
type FuncSimilarity func(a, b *SparseVector) float64

// CosineSimilarity computes the cosine similarity between a pair of vectors.
func CosineSimilarity(a, b *SparseVector) float64 {
	m, n, l := .0, .0, .0
	a.ForIntersection(b, func(_ int, a, b float64) {
		m += a * a
		n += b * b
		l += a * b
	})
	if m == 0 || n == 0 {
		return math.NaN()
	}
	return l / (math.Sqrt(m) * math.Sqrt(n))
}

// PearsonSimilarity computes the Pearson correlation coefficient between a
// pair of vectors. Each vector is centered by its own mean over the overlap
// set, then the cosine is taken.
func PearsonSimilarity(a, b *SparseVector) float64 {
	count, sumA, sumB := .0, .0, .0
	a.ForIntersection(b, func(_ int, a, b float64) {
		sumA += a
		sumB += b
		count++
	})
	if count == 0 {
		return math.NaN()
	}
	meanA := sumA / count
	meanB := sumB / count
	m, n, l := .0, .0, .0
	a.ForIntersection(b, func(_ int, a, b float64) {
		ratingA := a - meanA
		ratingB := b - meanB
		m += ratingA * ratingA
		n += ratingB * ratingB
		l += ratingA * ratingB
	})
	if m == 0 || n == 0 {
		return math.NaN()
	}
	return l / (math.Sqrt(m) * math.Sqrt(n))
}

// MSDSimilarity computes the Mean Squared Difference similarity between a
// pair of vectors.
func MSDSimilarity(a, b *SparseVector) float64 {
	count, sum := 0.0, 0.0
	a.ForIntersection(b, func(_ int, a, b float64) {
		sum += (a - b) * (a - b)
		count++
	})
	if count == 0 {
		return math.NaN()
	}
	return 1.0 / (sum/count + 1)
}
