package core

import (
	"github.com/juju/errors"

	"github.com/gotaste/taste/base"
)

// Popular is the item-popularity baseline. The predicted score of an item is
// its mean rating across all raters, so every user sees the same ranking;
// top-N merely suppresses items the user has already rated.
type Popular struct {
	Base
	itemMeans  []float64 // column-indexed mean rating
	itemCounts []int     // column-indexed rater count
}

// NewPopular creates an item-popularity predictor.
func NewPopular(params base.Params) *Popular {
	popular := new(Popular)
	popular.SetParams(params)
	return popular
}

// Fit precomputes per-item means and rater counts.
func (popular *Popular) Fit(trainSet *RatingMatrix) error {
	popular.Init(trainSet)
	popular.itemMeans = base.SparseVectorsMean(trainSet.ItemRatings)
	popular.itemCounts = make([]int, trainSet.ItemCount())
	for itemIndex, column := range trainSet.ItemRatings {
		popular.itemCounts[itemIndex] = column.Len()
	}
	return nil
}

// Predict returns the item's mean rating regardless of the user.
func (popular *Popular) Predict(userId, itemId int) (float64, bool, error) {
	_, itemIndex, err := popular.lookup(userId, itemId)
	if err != nil {
		return 0, false, errors.Trace(err)
	}
	// Every item in the matrix has at least one rater.
	return popular.itemMeans[itemIndex], true, nil
}

// TopN returns the most popular items the user has not rated.
func (popular *Popular) TopN(userId, n int) ([]ItemScore, error) {
	return popular.rankUnrated(userId, n, func(itemId int) (float64, bool, error) {
		return popular.Predict(userId, itemId)
	})
}

// Count returns the number of raters of an item.
func (popular *Popular) Count(itemId int) (int, error) {
	itemIndex := popular.trainSet.ItemIndex.ToDenseId(itemId)
	if itemIndex == base.NotId {
		return 0, errors.Annotatef(base.ErrUnknownEntity, "item %d", itemId)
	}
	return popular.itemCounts[itemIndex], nil
}
