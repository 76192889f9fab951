package core

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// WriteAccuracyTable renders the rating-accuracy comparison of several
// reports as a plain table. Reporting layers consume these tables without
// reaching into engine internals.
func WriteAccuracyTable(w io.Writer, reports []Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Model", "RMSE", "MAE", "Evaluable", "No Prediction"})
	for _, report := range reports {
		table.Append([]string{
			report.Name,
			fmt.Sprintf("%.6f", report.Accuracy.RMSE),
			fmt.Sprintf("%.6f", report.Accuracy.MAE),
			fmt.Sprintf("%d", report.Accuracy.Evaluable),
			fmt.Sprintf("%d", report.Accuracy.NoPrediction),
		})
	}
	table.Render()
}

// WriteRankingTable renders one report's per-cutoff ranking metrics.
func WriteRankingTable(w io.Writer, report Report) {
	fmt.Fprintf(w, "%s (users: %d, skipped: %d)\n",
		report.Name, report.Ranking.Users, report.Ranking.SkippedUsers)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"N", "Precision", "Recall", "TPR", "FPR"})
	for _, row := range lo.Map(report.Ranking.Points, formatRankingRow) {
		table.Append(row)
	}
	table.Render()
}

func formatRankingRow(point RankingPoint, _ int) []string {
	return []string{
		fmt.Sprintf("%d", point.N),
		fmt.Sprintf("%.6f", point.Precision),
		fmt.Sprintf("%.6f", point.Recall),
		fmt.Sprintf("%.6f", point.TPR),
		fmt.Sprintf("%.6f", point.FPR),
	}
}
