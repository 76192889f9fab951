package core

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/gotaste/taste/base"
	"github.com/gotaste/taste/base/log"
)

// RatedItem is one held-out ground-truth cell of a test user.
type RatedItem struct {
	ItemId int
	Rating float64
}

// GivenKSplit is the outcome of the given-k evaluation protocol. Users are
// partitioned into train and test sets; each test user keeps exactly `given`
// ratings visible inside Train while the rest become held-out ground truth,
// reachable only through this struct. The split owns no reference back into
// any predictor and is discarded after aggregation.
type GivenKSplit struct {
	// Train holds all train users' ratings plus the given ratings of test
	// users. Predictors see nothing else.
	Train *RatingMatrix
	// TestUsers lists evaluable test users, ascending by id.
	TestUsers []int
	// HeldOut maps a test user to its ground-truth cells, ascending by item id.
	HeldOut map[int][]RatedItem
	// GivenItems maps a test user to the items left visible.
	GivenItems map[int]mapset.Set[int]
	// GoodRating is the relevance threshold consumed by ranking metrics.
	GoodRating float64
	// Skipped counts test users excluded for having no more than `given`
	// ratings. Exclusion is counted, never silent.
	Skipped int
}

// SplitGivenK partitions users into train/test by trainFraction using the
// seeded random source, then hides all but `given` ratings of every test
// user. Identical inputs and seed always produce identical partitions and
// hidden sets. Test users that cannot satisfy the given constraint are
// excluded and counted; if none survives the split fails with
// ErrInsufficientData.
func SplitGivenK(m *RatingMatrix, trainFraction float64, given int, goodRating float64, seed int64) (*GivenKSplit, error) {
	if m == nil || m.Len() == 0 {
		return nil, errors.Trace(base.ErrEmptyInput)
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, errors.Annotatef(base.ErrInvalidParameter, "train fraction %v", trainFraction)
	}
	if given <= 0 {
		return nil, errors.Annotatef(base.ErrInvalidParameter, "given %d", given)
	}
	if low, high := m.Range(); goodRating < low || goodRating > high {
		return nil, errors.Annotatef(base.ErrInvalidParameter,
			"good rating %v outside rating range [%v, %v]", goodRating, low, high)
	}
	split := &GivenKSplit{
		HeldOut:    make(map[int][]RatedItem),
		GivenItems: make(map[int]mapset.Set[int]),
		GoodRating: goodRating,
	}
	rng := base.NewRandomGenerator(seed)
	perm := rng.Perm(m.UserCount())
	numTrain := int(trainFraction * float64(m.UserCount()))
	trainTable := NewDataTable(nil, nil, nil)
	// Train users contribute their full rows.
	for _, userIndex := range perm[:numTrain] {
		userId := m.UserIndex.ToSparseId(userIndex)
		m.UserRatings[userIndex].ForEach(func(_, itemIndex int, rating float64) {
			trainTable.Append(userId, m.ItemIndex.ToSparseId(itemIndex), rating)
		})
	}
	// Test users contribute `given` ratings to the train set; the rest is
	// held out. A user must keep at least one held-out rating to be
	// evaluable.
	for _, userIndex := range perm[numTrain:] {
		userId := m.UserIndex.ToSparseId(userIndex)
		row := m.UserRatings[userIndex]
		if row.Len() <= given {
			split.Skipped++
			continue
		}
		// Positions refer to the item-sorted row, so the hidden set depends
		// only on the seed, not on earlier access patterns.
		row.SortIndex()
		givenPositions := mapset.NewThreadUnsafeSet(rng.SampleInts(row.Len(), given)...)
		givenItems := mapset.NewThreadUnsafeSet[int]()
		heldOut := make([]RatedItem, 0, row.Len()-given)
		row.ForEach(func(i, itemIndex int, rating float64) {
			itemId := m.ItemIndex.ToSparseId(itemIndex)
			if givenPositions.Contains(i) {
				trainTable.Append(userId, itemId, rating)
				givenItems.Add(itemId)
			} else {
				heldOut = append(heldOut, RatedItem{ItemId: itemId, Rating: rating})
			}
		})
		sort.Slice(heldOut, func(i, j int) bool { return heldOut[i].ItemId < heldOut[j].ItemId })
		split.TestUsers = append(split.TestUsers, userId)
		split.HeldOut[userId] = heldOut
		split.GivenItems[userId] = givenItems
	}
	if len(split.TestUsers) == 0 {
		return nil, errors.Annotatef(base.ErrInsufficientData,
			"no test user keeps more than %d ratings", given)
	}
	sort.Ints(split.TestUsers)
	train, err := NewRatingMatrix(trainTable)
	if err != nil {
		return nil, errors.Annotate(err, "build train matrix")
	}
	split.Train = train
	log.Logger().Debug("split given-k",
		zap.Int("train_users", numTrain),
		zap.Int("test_users", len(split.TestUsers)),
		zap.Int("skipped_users", split.Skipped),
		zap.Int("given", given),
		zap.Int64("seed", seed))
	return split, nil
}
