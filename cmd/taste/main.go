package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const versionName = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "taste",
	Short: "taste: collaborative filtering evaluation engine",
	Long: "taste turns a sparse user-item rating table into predicted ratings and " +
		"top-N recommendations, and measures predictors against held-out data.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Check the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionName)
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(evaluateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
