package core

import (
	"math"
	"sort"

	"github.com/gotaste/taste/base"
)

// Neighbor is one entry of a neighborhood: another row and its similarity to
// the query row.
type Neighbor struct {
	Index      int // dense row index
	Similarity float64
}

// SimilarityEngine holds the pairwise similarity matrix over a fixed set of
// sparse vectors. The matrix is square and symmetric; the diagonal and every
// pair with undefined similarity hold NaN. It is recomputed per training run
// and treated as read-only afterwards, so concurrent readers are safe.
type SimilarityEngine struct {
	sims [][]float64
	ids  []int // dense index -> sparse id, for tie-breaking
}

// NewSimilarityEngine computes pairwise similarity between all vectors,
// parallelized across rows. Each pair is computed once and mirrored. ids maps
// dense indices back to sparse ids; neighbor ties are broken on it.
func NewSimilarityEngine(vectors []*base.SparseVector, ids []int, sim base.FuncSimilarity, jobs int) *SimilarityEngine {
	n := len(vectors)
	sims := newNaNMatrix(n)
	// Sort every vector once up front: ForIntersection sorts lazily, which
	// would race between row workers.
	for _, vec := range vectors {
		vec.SortIndex()
	}
	_ = base.Parallel(n, jobs, func(i int) error {
		for j := i + 1; j < n; j++ {
			ret := sim(vectors[i], vectors[j])
			if !math.IsNaN(ret) {
				sims[i][j] = ret
				sims[j][i] = ret
			}
		}
		return nil
	})
	return &SimilarityEngine{sims: sims, ids: ids}
}

// NewUserSimilarity computes user-user similarity over the matrix rows.
func NewUserSimilarity(m *RatingMatrix, sim base.FuncSimilarity, jobs int) *SimilarityEngine {
	return NewSimilarityEngine(m.UserRatings, m.UserIndex.SparseIds, sim, jobs)
}

// NewItemSimilarity computes item-item similarity over the matrix columns.
func NewItemSimilarity(m *RatingMatrix, sim base.FuncSimilarity, jobs int) *SimilarityEngine {
	return NewSimilarityEngine(m.ItemRatings, m.ItemIndex.SparseIds, sim, jobs)
}

// Similarity between two rows. NaN when undefined or when a == b.
func (engine *SimilarityEngine) Similarity(a, b int) float64 {
	return engine.sims[a][b]
}

// Neighbors returns up to k neighbors of a row, similarity descending with
// ascending sparse id on ties. Dense indices follow insertion order, not id
// order, so ties compare the original ids. The row itself and rows with
// undefined similarity are never included; fewer than k neighbors is not an
// error.
func (engine *SimilarityEngine) Neighbors(index, k int) []Neighbor {
	neighbors := make([]Neighbor, 0, k)
	for other, similarity := range engine.sims[index] {
		if !math.IsNaN(similarity) {
			neighbors = append(neighbors, Neighbor{Index: other, Similarity: similarity})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return engine.ids[neighbors[i].Index] < engine.ids[neighbors[j].Index]
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func newNaNMatrix(n int) [][]float64 {
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		for j := range mat[i] {
			mat[i][j] = math.NaN()
		}
	}
	return mat
}
