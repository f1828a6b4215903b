package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCMD = &cobra.Command{
	Use:   "stockdash",
	Short: "Stock OHLCV Analysis Tool",
	Long: `A CLI application for analyzing daily OHLCV stock data.
This tool can analyze CSV and XLSX files with moving averages, daily
returns, streak detection and max-profit simulation, either directly
or through a REST API.`,
}

func Execute() {
	err := rootCMD.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCMD.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")
}
