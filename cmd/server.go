package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockdash/stockdash/api"
	"github.com/stockdash/stockdash/chart"
	"github.com/stockdash/stockdash/config"
	"github.com/stockdash/stockdash/store"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for uploads and analysis.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}

		var datasets store.Datasets
		if cfg.Database.Host != "" {
			log.Println("Initializing database...")
			pg, err := store.OpenPostgres(cfg.Database)
			if err != nil {
				log.Fatalf("Failed to initialize database: %v", err)
			}
			datasets = pg
		} else {
			log.Println("No database configured, using in-memory store")
			datasets = store.NewMemory()
		}

		charts := chart.NewCache(time.Duration(cfg.ChartCacheTTLSec) * time.Second)
		r := api.SetupRoutes(api.NewHandler(datasets, charts, cfg.SMAWindow))

		addr := ":" + cfg.Port
		log.Printf("Starting server on port %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCMD.AddCommand(serverCMD)
}
