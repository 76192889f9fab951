package base

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SparseIdSet manages the map between sparse IDs and dense IDs. The sparse ID
// is the raw user ID or item ID. The dense ID is the internal index optimized
// for faster access and less memory usage.
type SparseIdSet struct {
	DenseIds  map[int]int // sparse ID -> dense ID
	SparseIds []int       // dense ID -> sparse ID
}

// NotId represents an ID that doesn't exist.
const NotId = -1

// NewSparseIdSet creates a SparseIdSet.
func NewSparseIdSet() *SparseIdSet {
	return &SparseIdSet{
		DenseIds:  make(map[int]int),
		SparseIds: make([]int, 0),
	}
}

// Len returns the number of IDs.
func (set *SparseIdSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.SparseIds)
}

// Add adds a new ID to the ID set.
func (set *SparseIdSet) Add(sparseId int) {
	if _, exist := set.DenseIds[sparseId]; !exist {
		set.DenseIds[sparseId] = len(set.SparseIds)
		set.SparseIds = append(set.SparseIds, sparseId)
	}
}

// ToDenseId converts a sparse ID to a dense ID. Returns NotId if the sparse
// ID isn't a member of the set.
func (set *SparseIdSet) ToDenseId(sparseId int) int {
	if set == nil {
		return NotId
	}
	if denseId, exist := set.DenseIds[sparseId]; exist {
		return denseId
	}
	return NotId
}

// ToSparseId converts a dense ID to a sparse ID.
func (set *SparseIdSet) ToSparseId(denseId int) int {
	return set.SparseIds[denseId]
}

// SparseVector is the data structure for a sparse vector.
type SparseVector struct {
	Indices []int
	Values  []float64
	Sorted  bool
}

// NewSparseVector creates a SparseVector.
func NewSparseVector() *SparseVector {
	return &SparseVector{
		Indices: make([]int, 0),
		Values:  make([]float64, 0),
	}
}

// NewDenseSparseMatrix creates an array of SparseVectors.
func NewDenseSparseMatrix(row int) []*SparseVector {
	mat := make([]*SparseVector, row)
	for i := range mat {
		mat[i] = NewSparseVector()
	}
	return mat
}

// SparseVectorsMean computes the mean of each sparse vector.
func SparseVectorsMean(a []*SparseVector) []float64 {
	m := make([]float64, len(a))
	for i := range a {
		m[i] = stat.Mean(a[i].Values, nil)
	}
	return m
}

// Add a new item to the sparse vector.
func (vec *SparseVector) Add(index int, value float64) {
	vec.Indices = append(vec.Indices, index)
	vec.Values = append(vec.Values, value)
	vec.Sorted = false
}

// Len returns the number of items.
func (vec *SparseVector) Len() int {
	if vec == nil {
		return 0
	}
	return len(vec.Values)
}

// Less returns true if the index of the i-th item is less than the index of the j-th item.
func (vec *SparseVector) Less(i, j int) bool {
	return vec.Indices[i] < vec.Indices[j]
}

// Swap two items.
func (vec *SparseVector) Swap(i, j int) {
	vec.Indices[i], vec.Indices[j] = vec.Indices[j], vec.Indices[i]
	vec.Values[i], vec.Values[j] = vec.Values[j], vec.Values[i]
}

// Mean of the observed values.
func (vec *SparseVector) Mean() float64 {
	return stat.Mean(vec.Values, nil)
}

// ForEach iterates items in the sparse vector.
func (vec *SparseVector) ForEach(f func(i, index int, value float64)) {
	for i := range vec.Indices {
		f(i, vec.Indices[i], vec.Values[i])
	}
}

// SortIndex sorts items by indices.
func (vec *SparseVector) SortIndex() {
	if !vec.Sorted {
		sort.Sort(vec)
		vec.Sorted = true
	}
}

// Find returns the value at an index. The second return value reports whether
// the index is observed. The vector is sorted on first use.
func (vec *SparseVector) Find(index int) (float64, bool) {
	if vec.Len() == 0 {
		return 0, false
	}
	vec.SortIndex()
	pos := sort.SearchInts(vec.Indices, index)
	if pos < len(vec.Indices) && vec.Indices[pos] == index {
		return vec.Values[pos], true
	}
	return 0, false
}

// ForIntersection iterates items in the intersection of two vectors. The
// method sorts both vectors by indices first, then finds common indices in
// linear time.
func (vec *SparseVector) ForIntersection(other *SparseVector, f func(index int, a, b float64)) {
	vec.SortIndex()
	other.SortIndex()
	i, j := 0, 0
	for i < vec.Len() && j < other.Len() {
		if vec.Indices[i] == other.Indices[j] {
			f(vec.Indices[i], vec.Values[i], other.Values[j])
			i++
			j++
		} else if vec.Indices[i] < other.Indices[j] {
			i++
		} else {
			j++
		}
	}
}
