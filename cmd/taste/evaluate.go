package main

import (
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gotaste/taste/base"
	"github.com/gotaste/taste/base/log"
	"github.com/gotaste/taste/core"
)

func init() {
	// Data loader
	evaluateCmd.PersistentFlags().String("load-csv", "", "load ratings from a CSV file")
	evaluateCmd.PersistentFlags().String("csv-sep", "\t", "load the CSV file with a separator")
	evaluateCmd.PersistentFlags().Bool("csv-header", false, "load the CSV file with a header")
	evaluateCmd.PersistentFlags().Int("min-ratings", 0, "keep only users with more ratings than this")
	// Evaluation scheme
	evaluateCmd.PersistentFlags().Float64("train", 0.8, "fraction of users in the train partition")
	evaluateCmd.PersistentFlags().Int("given", 5, "number of ratings kept visible per test user")
	evaluateCmd.PersistentFlags().Float64("good-rating", 4, "relevance threshold for ranking metrics")
	evaluateCmd.PersistentFlags().Int64("seed", 0, "random seed of the evaluation run")
	evaluateCmd.PersistentFlags().IntSlice("top", []int{1, 3, 5, 10}, "top-N cutoffs")
	// Predictors
	evaluateCmd.PersistentFlags().StringSlice("models", []string{"ubcf", "popular", "random"}, "predictors: ubcf | popular | random")
	evaluateCmd.PersistentFlags().Int("k", 5, "neighborhood size of UBCF")
	evaluateCmd.PersistentFlags().String("sim", "cosine", "similarity of UBCF: cosine | pearson | msd")
	evaluateCmd.PersistentFlags().String("normalizer", base.NormalizerZScore, "normalization of UBCF: none | zscore")
	// Runtime options
	evaluateCmd.PersistentFlags().Int("jobs", 0, "number of concurrent jobs, 0 for GOMAXPROCS")
	evaluateCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	_ = evaluateCmd.MarkPersistentFlagRequired("load-csv")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate predictors against held-out ratings",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.PersistentFlags()
		verbose, _ := flags.GetBool("verbose")
		log.SetDevelopmentLogger(verbose)
		// Load ratings
		fileName, _ := flags.GetString("load-csv")
		sep, _ := flags.GetString("csv-sep")
		hasHeader, _ := flags.GetBool("csv-header")
		table, err := core.LoadDataFromCSV(fileName, sep, hasHeader)
		if err != nil {
			log.Logger().Fatal("load ratings", zap.Error(err))
		}
		matrix, err := core.NewRatingMatrix(table)
		if err != nil {
			log.Logger().Fatal("build rating matrix", zap.Error(err))
		}
		log.Logger().Info("loaded ratings",
			zap.String("file", fileName),
			zap.Int("ratings", matrix.Len()),
			zap.Int("users", matrix.UserCount()),
			zap.Int("items", matrix.ItemCount()))
		if minRatings, _ := flags.GetInt("min-ratings"); minRatings > 0 {
			matrix, err = matrix.FilterRows(func(count int) bool { return count > minRatings })
			if err != nil {
				log.Logger().Fatal("filter users", zap.Error(err))
			}
			log.Logger().Info("filtered users",
				zap.Int("min_ratings", minRatings),
				zap.Int("users", matrix.UserCount()))
		}
		// Split
		trainFraction, _ := flags.GetFloat64("train")
		given, _ := flags.GetInt("given")
		goodRating, _ := flags.GetFloat64("good-rating")
		seed, _ := flags.GetInt64("seed")
		split, err := core.SplitGivenK(matrix, trainFraction, given, goodRating, seed)
		if err != nil {
			log.Logger().Fatal("split ratings", zap.Error(err))
		}
		log.Logger().Info("split ratings",
			zap.Int("test_users", len(split.TestUsers)),
			zap.Int("skipped_users", split.Skipped))
		// Evaluate
		models := loadModels(cmd)
		cutoffs, _ := flags.GetIntSlice("top")
		bar := progressbar.Default(int64(len(models)), "evaluate")
		reports := make([]core.Report, 0, len(models))
		for _, named := range models {
			out, err := core.Evaluate(split, []core.NamedModel{named}, cutoffs)
			if err != nil {
				log.Logger().Fatal("evaluate predictor", zap.String("model", named.Name), zap.Error(err))
			}
			reports = append(reports, out...)
			_ = bar.Add(1)
		}
		// Render tables
		core.WriteAccuracyTable(os.Stdout, reports)
		for _, report := range reports {
			core.WriteRankingTable(os.Stdout, report)
		}
	},
}

func loadModels(cmd *cobra.Command) []core.NamedModel {
	flags := cmd.PersistentFlags()
	k, _ := flags.GetInt("k")
	simName, _ := flags.GetString("sim")
	normalizer, _ := flags.GetString("normalizer")
	seed, _ := flags.GetInt64("seed")
	jobs, _ := flags.GetInt("jobs")
	var sim base.FuncSimilarity
	switch simName {
	case "cosine":
		sim = base.CosineSimilarity
	case "pearson":
		sim = base.PearsonSimilarity
	case "msd":
		sim = base.MSDSimilarity
	default:
		log.Logger().Fatal("unknown similarity", zap.String("sim", simName))
	}
	params := base.Params{
		base.RandomState: seed,
	}
	if jobs > 0 {
		params[base.Jobs] = jobs
	}
	names, _ := flags.GetStringSlice("models")
	models := make([]core.NamedModel, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(name) {
		case "ubcf":
			ubcfParams := params.Copy()
			ubcfParams.Merge(base.Params{base.K: k, base.Sim: sim, base.Normalizer: normalizer})
			models = append(models, core.NamedModel{Name: "UBCF", Model: core.NewUBCF(ubcfParams)})
		case "popular":
			models = append(models, core.NamedModel{Name: "POPULAR", Model: core.NewPopular(params.Copy())})
		case "random":
			models = append(models, core.NamedModel{Name: "RANDOM", Model: core.NewRandom(params.Copy())})
		default:
			log.Logger().Fatal("unknown model", zap.String("model", name))
		}
	}
	return models
}
