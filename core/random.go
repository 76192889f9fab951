package core

import (
	"math/rand"

	"github.com/juju/errors"

	"github.com/gotaste/taste/base"
)

// RandomModel is the lower-bound baseline: the predicted score is uniformly
// sampled from the observed rating range. Scores are keyed on the seed and
// the (user, item) cell, so repeated queries and repeated runs with the same
// RandomState produce identical predictions and top-N lists.
type RandomModel struct {
	Base
	low  float64
	high float64
}

// NewRandom creates a random predictor.
func NewRandom(params base.Params) *RandomModel {
	random := new(RandomModel)
	random.SetParams(params)
	return random
}

// Fit records the observed rating range.
func (random *RandomModel) Fit(trainSet *RatingMatrix) error {
	random.Init(trainSet)
	random.low, random.high = trainSet.Range()
	return nil
}

// Predict returns a uniform score in the rating range.
func (random *RandomModel) Predict(userId, itemId int) (float64, bool, error) {
	userIndex, itemIndex, err := random.lookup(userId, itemId)
	if err != nil {
		return 0, false, errors.Trace(err)
	}
	rng := rand.New(rand.NewSource(random.cellSeed(userIndex, itemIndex)))
	return random.low + rng.Float64()*(random.high-random.low), true, nil
}

// TopN returns n uniformly scored unrated items.
func (random *RandomModel) TopN(userId, n int) ([]ItemScore, error) {
	return random.rankUnrated(userId, n, func(itemId int) (float64, bool, error) {
		return random.Predict(userId, itemId)
	})
}

// cellSeed mixes the model seed with the cell coordinates so a prediction
// depends only on (seed, user, item), not on query order.
func (random *RandomModel) cellSeed(userIndex, itemIndex int) int64 {
	h := uint64(random.randState)
	h ^= (uint64(userIndex) + 1) * 0x9e3779b97f4a7c15
	h ^= (uint64(itemIndex) + 1) * 0xbf58476d1ce4e5b9
	h ^= h >> 31
	return int64(h)
}
