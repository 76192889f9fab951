package core

import (
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/gotaste/taste/base"
	"github.com/gotaste/taste/base/log"
)

// AccuracyResult holds rating-prediction accuracy over the held-out cells.
// Cells the predictor could not score are excluded from the metrics but
// reported in NoPrediction: silent exclusion would hide systematic gaps.
type AccuracyResult struct {
	RMSE         float64
	MAE          float64
	Evaluable    int // held-out cells with a prediction
	NoPrediction int // held-out cells without one
}

// RankingPoint is one row of the per-cutoff ranking table.
type RankingPoint struct {
	N         int
	Precision float64
	Recall    float64
	TPR       float64
	FPR       float64
}

// RankingResult holds ranking accuracy averaged (unweighted) across test
// users. Users without a single relevant held-out item have undefined recall
// and are excluded and counted.
type RankingResult struct {
	Points       []RankingPoint
	Users        int // test users contributing to the averages
	SkippedUsers int // test users with no relevant held-out item
}

// NamedModel pairs a predictor with its display name for comparison runs.
type NamedModel struct {
	Name  string
	Model Model
}

// Report is the evaluation outcome of one predictor against one scheme.
// Reports from the same run align on identical cutoffs, so predictors are
// compared row by row.
type Report struct {
	Name     string
	Accuracy AccuracyResult
	Ranking  RankingResult
	FitTime  time.Duration
	EvalTime time.Duration
}

// EvaluateRatings computes RMSE and MAE of a fitted model over the held-out
// cells of the split. Cells the model cannot predict, including held-out
// items absent from the train matrix, count into NoPrediction. With zero
// evaluable cells the metrics are NaN.
func EvaluateRatings(model Model, split *GivenKSplit) (AccuracyResult, error) {
	type userErrors struct {
		squared, absolute       float64
		evaluable, noPrediction int
	}
	perUser := make([]userErrors, len(split.TestUsers))
	err := base.Parallel(len(split.TestUsers), evalJobs(model), func(i int) error {
		userId := split.TestUsers[i]
		for _, truth := range split.HeldOut[userId] {
			prediction, ok, err := model.Predict(userId, truth.ItemId)
			if err != nil {
				if errors.Cause(err) == base.ErrUnknownEntity {
					// The held-out item has no rater inside the train view.
					perUser[i].noPrediction++
					continue
				}
				return errors.Trace(err)
			}
			if !ok {
				perUser[i].noPrediction++
				continue
			}
			diff := prediction - truth.Rating
			perUser[i].squared += diff * diff
			perUser[i].absolute += math.Abs(diff)
			perUser[i].evaluable++
		}
		return nil
	})
	if err != nil {
		return AccuracyResult{}, errors.Trace(err)
	}
	result := AccuracyResult{
		Evaluable:    lo.SumBy(perUser, func(u userErrors) int { return u.evaluable }),
		NoPrediction: lo.SumBy(perUser, func(u userErrors) int { return u.noPrediction }),
	}
	squared := lo.SumBy(perUser, func(u userErrors) float64 { return u.squared })
	absolute := lo.SumBy(perUser, func(u userErrors) float64 { return u.absolute })
	result.RMSE = math.Sqrt(squared / float64(result.Evaluable))
	result.MAE = absolute / float64(result.Evaluable)
	return result, nil
}

// EvaluateRanking computes precision, recall, TPR and FPR of a fitted model
// at every cutoff, averaged across test users. A held-out item is relevant
// iff its true rating reaches the split's good-rating threshold.
func EvaluateRanking(model Model, split *GivenKSplit, cutoffs []int) (RankingResult, error) {
	if len(cutoffs) == 0 {
		return RankingResult{}, errors.Annotate(base.ErrInvalidParameter, "no cutoffs")
	}
	for _, n := range cutoffs {
		if n <= 0 {
			return RankingResult{}, errors.Annotatef(base.ErrInvalidParameter, "cutoff %d", n)
		}
	}
	cutoffs = append([]int(nil), cutoffs...)
	sort.Ints(cutoffs)
	maxN := lo.Max(cutoffs)
	type userPoints struct {
		precision, recall, fpr []float64
		counted                bool
	}
	perUser := make([]userPoints, len(split.TestUsers))
	err := base.Parallel(len(split.TestUsers), evalJobs(model), func(i int) error {
		userId := split.TestUsers[i]
		relevant := make(map[int]bool)
		relevantCandidates := 0
		for _, truth := range split.HeldOut[userId] {
			if truth.Rating >= split.GoodRating {
				relevant[truth.ItemId] = true
				if split.Train.ItemIndex.ToDenseId(truth.ItemId) != base.NotId {
					relevantCandidates++
				}
			}
		}
		if len(relevant) == 0 {
			return nil
		}
		ranked, err := model.TopN(userId, maxN)
		if err != nil {
			return errors.Trace(err)
		}
		// Candidates are every train item outside the given set; the
		// non-relevant ones are the negatives of the ROC sweep.
		candidates := split.Train.ItemCount() - split.GivenItems[userId].Cardinality()
		negatives := candidates - relevantCandidates
		points := userPoints{counted: true}
		hits := 0
		pos := 0
		for _, n := range cutoffs {
			for ; pos < n && pos < len(ranked); pos++ {
				if relevant[ranked[pos].ItemId] {
					hits++
				}
			}
			selected := pos
			points.precision = append(points.precision, float64(hits)/float64(n))
			points.recall = append(points.recall, float64(hits)/float64(len(relevant)))
			fpr := 0.0
			if negatives > 0 {
				fpr = float64(selected-hits) / float64(negatives)
			}
			points.fpr = append(points.fpr, fpr)
		}
		perUser[i] = points
		return nil
	})
	if err != nil {
		return RankingResult{}, errors.Trace(err)
	}
	counted := lo.Filter(perUser, func(u userPoints, _ int) bool { return u.counted })
	result := RankingResult{
		Users:        len(counted),
		SkippedUsers: len(perUser) - len(counted),
	}
	for c, n := range cutoffs {
		point := RankingPoint{N: n}
		for _, u := range counted {
			point.Precision += u.precision[c]
			point.Recall += u.recall[c]
			point.FPR += u.fpr[c]
		}
		if len(counted) > 0 {
			point.Precision /= float64(len(counted))
			point.Recall /= float64(len(counted))
			point.FPR /= float64(len(counted))
		}
		point.TPR = point.Recall
		result.Points = append(result.Points, point)
	}
	return result, nil
}

// Evaluate fits every predictor on the split's train view and measures both
// rating accuracy and ranking quality at the requested cutoffs. Held-out
// ratings never reach a predictor.
func Evaluate(split *GivenKSplit, models []NamedModel, cutoffs []int) ([]Report, error) {
	reports := make([]Report, 0, len(models))
	for _, named := range models {
		start := time.Now()
		if err := named.Model.Fit(split.Train); err != nil {
			return nil, errors.Annotatef(err, "fit %s", named.Name)
		}
		fitTime := time.Since(start)
		start = time.Now()
		accuracy, err := EvaluateRatings(named.Model, split)
		if err != nil {
			return nil, errors.Annotatef(err, "evaluate ratings of %s", named.Name)
		}
		ranking, err := EvaluateRanking(named.Model, split, cutoffs)
		if err != nil {
			return nil, errors.Annotatef(err, "evaluate ranking of %s", named.Name)
		}
		report := Report{
			Name:     named.Name,
			Accuracy: accuracy,
			Ranking:  ranking,
			FitTime:  fitTime,
			EvalTime: time.Since(start),
		}
		log.Logger().Info("evaluated predictor",
			zap.String("model", named.Name),
			zap.Float64("rmse", accuracy.RMSE),
			zap.Float64("mae", accuracy.MAE),
			zap.Int("no_prediction", accuracy.NoPrediction),
			zap.Duration("fit_time", report.FitTime),
			zap.Duration("eval_time", report.EvalTime))
		reports = append(reports, report)
	}
	return reports, nil
}

// evalJobs reads the Jobs parameter of the model under evaluation.
func evalJobs(model Model) int {
	if params := model.GetParams(); params != nil {
		return params.GetInt(base.Jobs, runtime.GOMAXPROCS(0))
	}
	return runtime.GOMAXPROCS(0)
}
