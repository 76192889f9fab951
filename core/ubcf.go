package core

import (
	"runtime"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/gotaste/taste/base"
	"github.com/gotaste/taste/base/log"
)

// UBCF is the user-based collaborative filtering predictor. A rating is
// predicted as the similarity-weighted mean of the k nearest neighbors'
// ratings for the item, restricted to neighbors who rated it. Parameters:
//
//	Sim        - The similarity function. Default is cosine.
//	K          - The neighborhood size. Default is 5.
//	Normalizer - Rating normalization: "none" or "zscore". Default is "zscore".
//	Jobs       - Concurrency of the pairwise similarity pass. Default is GOMAXPROCS.
type UBCF struct {
	Base
	k          int
	normalizer string
	engine     *SimilarityEngine
	rows       []*base.SparseVector // training rows in prediction space
	normalized *NormalizedMatrix    // nil when normalizer is "none"
}

// NewUBCF creates a user-based collaborative filtering predictor.
func NewUBCF(params base.Params) *UBCF {
	ubcf := new(UBCF)
	ubcf.SetParams(params)
	return ubcf
}

// Fit normalizes user rows as configured and computes the user-user
// similarity matrix.
func (ubcf *UBCF) Fit(trainSet *RatingMatrix) error {
	ubcf.Init(trainSet)
	ubcf.k = ubcf.Params.GetInt(base.K, 5)
	if ubcf.k <= 0 {
		return errors.Annotatef(base.ErrInvalidParameter, "neighborhood size %d", ubcf.k)
	}
	sim := ubcf.Params.GetSim(base.Sim, base.CosineSimilarity)
	jobs := ubcf.Params.GetInt(base.Jobs, runtime.GOMAXPROCS(0))
	ubcf.normalizer = ubcf.Params.GetString(base.Normalizer, base.NormalizerZScore)
	switch ubcf.normalizer {
	case base.NormalizerNone:
		ubcf.normalized = nil
		ubcf.rows = trainSet.UserRatings
	case base.NormalizerZScore:
		ubcf.normalized = NormalizeZScore(trainSet)
		ubcf.rows = ubcf.normalized.UserRatings
	default:
		return errors.Annotatef(base.ErrInvalidParameter, "normalizer %q", ubcf.normalizer)
	}
	start := time.Now()
	ubcf.engine = NewSimilarityEngine(ubcf.rows, trainSet.UserIndex.SparseIds, sim, jobs)
	log.Logger().Debug("fit UBCF",
		zap.Int("users", trainSet.UserCount()),
		zap.Int("items", trainSet.ItemCount()),
		zap.Int("k", ubcf.k),
		zap.String("normalizer", ubcf.normalizer),
		zap.Duration("similarity_time", time.Since(start)))
	return nil
}

// Predict the rating of a user for an item. When no neighbor rated the item,
// or the neighborhood's weight mass is not positive, there is no prediction:
// the result is never coerced to a default value.
func (ubcf *UBCF) Predict(userId, itemId int) (float64, bool, error) {
	userIndex, itemIndex, err := ubcf.lookup(userId, itemId)
	if err != nil {
		return 0, false, errors.Trace(err)
	}
	weightSum := 0.0
	weightRating := 0.0
	found := false
	for _, neighbor := range ubcf.engine.Neighbors(userIndex, ubcf.k) {
		rating, rated := ubcf.rows[neighbor.Index].Find(itemIndex)
		if !rated {
			continue
		}
		found = true
		weightSum += neighbor.Similarity
		weightRating += neighbor.Similarity * rating
	}
	if !found || weightSum <= 0 {
		return 0, false, nil
	}
	prediction := weightRating / weightSum
	if ubcf.normalized != nil {
		prediction = ubcf.normalized.Stats[userIndex].Denormalize(prediction)
	}
	return prediction, true, nil
}

// TopN returns the n highest-predicted items the user has not rated.
func (ubcf *UBCF) TopN(userId, n int) ([]ItemScore, error) {
	return ubcf.rankUnrated(userId, n, func(itemId int) (float64, bool, error) {
		return ubcf.Predict(userId, itemId)
	})
}
