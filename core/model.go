package core

import (
	"time"

	"github.com/juju/errors"

	"github.com/gotaste/taste/base"
)

// ItemScore is one entry of a top-N list.
type ItemScore struct {
	ItemId int
	Score  float64
}

// Model is the predictor interface. Every predictor in this package
// implements it; there is no string-based dispatch, a model is selected by
// constructing the concrete type.
type Model interface {
	// SetParams sets hyper-parameters.
	SetParams(params base.Params)
	// GetParams returns hyper-parameters.
	GetParams() base.Params
	// Fit trains the model on a rating matrix. The matrix is treated as
	// read-only for the lifetime of the model.
	Fit(trainSet *RatingMatrix) error
	// Predict the rating of a user for an item. The boolean reports whether a
	// prediction could be formed: absence is an expected, countable outcome,
	// not an error. Ids absent from the training matrix fail with
	// ErrUnknownEntity.
	Predict(userId, itemId int) (float64, bool, error)
	// TopN returns the n highest-scored items the user has not rated, score
	// descending with ascending item id on ties. Fails with
	// ErrInvalidParameter when n is not positive.
	TopN(userId, n int) ([]ItemScore, error)
}

// Base is the structure shared by all predictors.
type Base struct {
	Params    base.Params
	trainSet  *RatingMatrix
	randState int64
}

// SetParams sets hyper-parameters.
func (b *Base) SetParams(params base.Params) {
	b.Params = params
	b.randState = b.Params.GetInt64(base.RandomState, time.Now().UnixNano())
}

// GetParams returns hyper-parameters.
func (b *Base) GetParams() base.Params {
	return b.Params
}

// Init stores the training matrix. Called at the top of every Fit.
func (b *Base) Init(trainSet *RatingMatrix) {
	if b.Params == nil {
		b.SetParams(base.Params{})
	}
	b.trainSet = trainSet
}

// lookup converts sparse ids to dense indices, failing with ErrUnknownEntity
// for ids outside the training matrix.
func (b *Base) lookup(userId, itemId int) (userIndex, itemIndex int, err error) {
	userIndex = b.trainSet.UserIndex.ToDenseId(userId)
	if userIndex == base.NotId {
		return 0, 0, errors.Annotatef(base.ErrUnknownEntity, "user %d", userId)
	}
	itemIndex = b.trainSet.ItemIndex.ToDenseId(itemId)
	if itemIndex == base.NotId {
		return 0, 0, errors.Annotatef(base.ErrUnknownEntity, "item %d", itemId)
	}
	return userIndex, itemIndex, nil
}

// rankUnrated assembles a top-N list over the items the user has not rated,
// scoring each candidate with the predict callback. Candidates without a
// prediction are skipped.
func (b *Base) rankUnrated(userId, n int, predict func(itemId int) (float64, bool, error)) ([]ItemScore, error) {
	if n <= 0 {
		return nil, errors.Annotatef(base.ErrInvalidParameter, "top-N size %d", n)
	}
	userIndex := b.trainSet.UserIndex.ToDenseId(userId)
	if userIndex == base.NotId {
		return nil, errors.Annotatef(base.ErrUnknownEntity, "user %d", userId)
	}
	row := b.trainSet.UserRatings[userIndex]
	filter := base.NewTopKFilter(n)
	for itemIndex := 0; itemIndex < b.trainSet.ItemCount(); itemIndex++ {
		if _, rated := row.Find(itemIndex); rated {
			continue
		}
		itemId := b.trainSet.ItemIndex.ToSparseId(itemIndex)
		score, ok, err := predict(itemId)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !ok {
			continue
		}
		filter.Add(itemId, score)
	}
	ids, scores := filter.Results()
	ranked := make([]ItemScore, len(ids))
	for i := range ids {
		ranked[i] = ItemScore{ItemId: ids[i], Score: scores[i]}
	}
	return ranked, nil
}
