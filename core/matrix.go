package core

import (
	"github.com/juju/errors"

	"github.com/gotaste/taste/base"
)

// RatingMatrix is a sparse users×items rating matrix. A cell is either an
// observed real value or unobserved; zero is a valid rating and never stands
// for "missing". The matrix is immutable after construction: every model and
// evaluation pass shares it as a read-only view.
type RatingMatrix struct {
	UserIndex   *base.SparseIdSet    // user id <-> row index
	ItemIndex   *base.SparseIdSet    // item id <-> column index
	UserRatings []*base.SparseVector // row-indexed rating vectors
	ItemRatings []*base.SparseVector // column-indexed rating vectors
	GlobalMean  float64
	low, high   float64 // observed rating range
	count       int
}

// NewRatingMatrix builds a matrix from a rating table. It fails with
// ErrEmptyInput when the table holds no ratings and with ErrDuplicateEntry
// when two ratings collapse to the same (user, item) pair: duplicates are
// rejected, not resolved. Construction is atomic.
func NewRatingMatrix(table *DataTable) (*RatingMatrix, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.Trace(base.ErrEmptyInput)
	}
	m := &RatingMatrix{
		UserIndex: base.NewSparseIdSet(),
		ItemIndex: base.NewSparseIdSet(),
		count:     table.Len(),
	}
	table.ForEach(func(userId, itemId int, rating float64) {
		m.UserIndex.Add(userId)
		m.ItemIndex.Add(itemId)
	})
	m.UserRatings = base.NewDenseSparseMatrix(m.UserIndex.Len())
	m.ItemRatings = base.NewDenseSparseMatrix(m.ItemIndex.Len())
	seen := make(map[[2]int]bool, table.Len())
	sum := 0.0
	_, _, first := table.Get(0)
	m.low, m.high = first, first
	var dupErr error
	table.ForEach(func(userId, itemId int, rating float64) {
		if dupErr != nil {
			return
		}
		userIndex := m.UserIndex.ToDenseId(userId)
		itemIndex := m.ItemIndex.ToDenseId(itemId)
		key := [2]int{userIndex, itemIndex}
		if seen[key] {
			dupErr = errors.Annotatef(base.ErrDuplicateEntry, "user %d, item %d", userId, itemId)
			return
		}
		seen[key] = true
		m.UserRatings[userIndex].Add(itemIndex, rating)
		m.ItemRatings[itemIndex].Add(userIndex, rating)
		sum += rating
		if rating < m.low {
			m.low = rating
		}
		if rating > m.high {
			m.high = rating
		}
	})
	if dupErr != nil {
		return nil, dupErr
	}
	m.GlobalMean = sum / float64(table.Len())
	return m, nil
}

// Len returns the number of observed ratings.
func (m *RatingMatrix) Len() int {
	return m.count
}

// UserCount returns the number of distinct users.
func (m *RatingMatrix) UserCount() int {
	return m.UserIndex.Len()
}

// ItemCount returns the number of distinct items.
func (m *RatingMatrix) ItemCount() int {
	return m.ItemIndex.Len()
}

// Range returns the observed minimum and maximum rating.
func (m *RatingMatrix) Range() (low, high float64) {
	return m.low, m.high
}

// Users returns all user ids in insertion order.
func (m *RatingMatrix) Users() []int {
	return m.UserIndex.SparseIds
}

// Items returns all item ids in insertion order.
func (m *RatingMatrix) Items() []int {
	return m.ItemIndex.SparseIds
}

// Get returns the rating a user gave an item. The second return value reports
// whether the cell is observed; unknown ids read as unobserved.
func (m *RatingMatrix) Get(userId, itemId int) (float64, bool) {
	userIndex := m.UserIndex.ToDenseId(userId)
	itemIndex := m.ItemIndex.ToDenseId(itemId)
	if userIndex == base.NotId || itemIndex == base.NotId {
		return 0, false
	}
	return m.UserRatings[userIndex].Find(itemIndex)
}

// Row returns a user's rating vector, indexed by item column. The vector is
// shared with the matrix and must not be mutated.
func (m *RatingMatrix) Row(userId int) (*base.SparseVector, error) {
	userIndex := m.UserIndex.ToDenseId(userId)
	if userIndex == base.NotId {
		return nil, errors.Annotatef(base.ErrUnknownEntity, "user %d", userId)
	}
	return m.UserRatings[userIndex], nil
}

// RowCount returns the number of ratings observed for a user.
func (m *RatingMatrix) RowCount(userId int) (int, error) {
	row, err := m.Row(userId)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return row.Len(), nil
}

// FilterRows builds a new matrix keeping only users whose rating count
// satisfies the predicate. The receiver is left untouched. Item columns are
// rebuilt from the surviving rows, so the new matrix may hold fewer items.
func (m *RatingMatrix) FilterRows(keep func(count int) bool) (*RatingMatrix, error) {
	table := NewDataTable(nil, nil, nil)
	for userIndex, row := range m.UserRatings {
		if !keep(row.Len()) {
			continue
		}
		userId := m.UserIndex.ToSparseId(userIndex)
		row.ForEach(func(_, itemIndex int, rating float64) {
			table.Append(userId, m.ItemIndex.ToSparseId(itemIndex), rating)
		})
	}
	matrix, err := NewRatingMatrix(table)
	if err != nil {
		return nil, errors.Annotate(err, "filter rows")
	}
	return matrix, nil
}

// ToTable flattens the matrix back to a rating table.
func (m *RatingMatrix) ToTable() *DataTable {
	table := NewDataTable(nil, nil, nil)
	for userIndex, row := range m.UserRatings {
		userId := m.UserIndex.ToSparseId(userIndex)
		row.ForEach(func(_, itemIndex int, rating float64) {
			table.Append(userId, m.ItemIndex.ToSparseId(itemIndex), rating)
		})
	}
	return table
}
