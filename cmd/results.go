package cmd

import (
	"github.com/jumbo77/c2dev-700/cmd/internal/results/chart"
	"github.com/jumbo77/c2dev-700/cmd/internal/results/csv"

	"github.com/spf13/cobra"
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// resultsCSVCmd represents the csv command
var resultsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Run:     csv.CSVRun,
}

// resultsChartCmd represents the chart command
var resultsChartCmd = &cobra.Command{
	Use:     "chart RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"graph", "g"},
	Short:   "Render an error rate chart",
	Long:    `Render an HTML line chart of error rate versus Eb/No`,
	Run:     chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.AddCommand(resultsCSVCmd)
	resultsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")

	resultsCmd.AddCommand(resultsChartCmd)
	resultsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the rendered chart")
	resultsChartCmd.Flags().BoolVarP(&chart.FrameError, "fer", "f", false, "chart the FER instead of BER or PER")
	resultsChartCmd.Flags().BoolVarP(&chart.PacketError, "per", "p", false, "chart the PER instead of BER or FER")
}
