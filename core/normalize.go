package core

import (
	"math"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/gotaste/taste/base"
)

// RowStats holds the per-row normalization parameters of one user.
type RowStats struct {
	Mean   float64
	StdDev float64 // population standard deviation over observed entries
}

// Normalize maps a raw rating into the row's Z-score space. Rows with zero
// deviation (all ratings identical) normalize to 0 rather than dividing by
// zero.
func (stats RowStats) Normalize(value float64) float64 {
	if stats.StdDev == 0 {
		return 0
	}
	return (value - stats.Mean) / stats.StdDev
}

// Denormalize inverts Normalize. For zero-deviation rows every normalized
// value maps back to the row mean.
func (stats RowStats) Denormalize(value float64) float64 {
	return value*stats.StdDev + stats.Mean
}

// NormalizedMatrix is a derived view over a RatingMatrix: the same sparsity
// pattern with each observed cell replaced by its per-row Z-score. The
// underlying matrix is never mutated.
type NormalizedMatrix struct {
	Raw         *RatingMatrix
	UserRatings []*base.SparseVector // row-indexed normalized vectors
	Stats       []RowStats           // row-indexed normalization parameters
}

// NormalizeZScore computes a Z-score view of the matrix. Means and deviations
// are computed over observed entries only; unobserved cells stay unobserved.
func NormalizeZScore(m *RatingMatrix) *NormalizedMatrix {
	normalized := &NormalizedMatrix{
		Raw:         m,
		UserRatings: make([]*base.SparseVector, m.UserCount()),
		Stats:       make([]RowStats, m.UserCount()),
	}
	for userIndex, row := range m.UserRatings {
		mean := stat.Mean(row.Values, nil)
		variance := 0.0
		for _, v := range row.Values {
			variance += (v - mean) * (v - mean)
		}
		stats := RowStats{
			Mean:   mean,
			StdDev: math.Sqrt(variance / float64(row.Len())),
		}
		vec := base.NewSparseVector()
		row.ForEach(func(_, itemIndex int, rating float64) {
			vec.Add(itemIndex, stats.Normalize(rating))
		})
		normalized.UserRatings[userIndex] = vec
		normalized.Stats[userIndex] = stats
	}
	return normalized
}

// Binarize maps observed ratings at or above the threshold to 1 and the rest
// to 0, preserving unobserved cells. The threshold must lie within the
// observed rating range.
func Binarize(m *RatingMatrix, threshold float64) (*RatingMatrix, error) {
	low, high := m.Range()
	if threshold < low || threshold > high {
		return nil, errors.Annotatef(base.ErrInvalidParameter,
			"threshold %v outside rating range [%v, %v]", threshold, low, high)
	}
	table := NewDataTable(nil, nil, nil)
	for userIndex, row := range m.UserRatings {
		userId := m.UserIndex.ToSparseId(userIndex)
		row.ForEach(func(_, itemIndex int, rating float64) {
			value := 0.0
			if rating >= threshold {
				value = 1.0
			}
			table.Append(userId, m.ItemIndex.ToSparseId(itemIndex), value)
		})
	}
	return NewRatingMatrix(table)
}
