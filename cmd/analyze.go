package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stockdash/stockdash/analysis"
	"github.com/stockdash/stockdash/chart"
	"github.com/stockdash/stockdash/ingest"
)

var (
	analyzeWindow   int
	analyzeChartOut string
)

var analyzeCMD = &cobra.Command{
	Use:   "analyze [data-file]",
	Short: "Analyze an OHLCV file and print the result as JSON",
	Long: `Run the full analysis pipeline over a CSV or XLSX file of daily
OHLCV data and print the result as JSON. Optionally writes the price
chart to a PNG file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open file: %v", err)
		}
		defer f.Close()

		bars, err := ingest.ParseUpload(filepath.Base(path), f)
		if err != nil {
			log.Fatalf("Failed to parse file: %v", err)
		}

		ts, err := analysis.NewTimeSeries(bars)
		if err != nil {
			log.Fatalf("Failed to build series: %v", err)
		}

		result, err := analysis.Analyze(ts, analyzeWindow)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))

		if analyzeChartOut != "" {
			dates := make([]string, ts.Len())
			for i, d := range ts.Dates() {
				dates[i] = d.Format("2006-01-02")
			}
			img, err := chart.Render(filepath.Base(path), dates, ts.Closes(), result.SMA.Values, analyzeWindow)
			if err != nil {
				log.Fatalf("Failed to render chart: %v", err)
			}
			if err := os.WriteFile(analyzeChartOut, img, 0o644); err != nil {
				log.Fatalf("Failed to write chart: %v", err)
			}
			log.Printf("Chart written to %s", analyzeChartOut)
		}
	},
}

func init() {
	analyzeCMD.Flags().IntVarP(&analyzeWindow, "window", "w", 5, "moving average window in days")
	analyzeCMD.Flags().StringVar(&analyzeChartOut, "chart", "", "write the price chart PNG to this path")
	rootCMD.AddCommand(analyzeCMD)
}
