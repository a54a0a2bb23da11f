package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shwikky/storefront/internal/catalog/postgres"
	"github.com/shwikky/storefront/internal/ingest"
	"github.com/shwikky/storefront/internal/models"
)

var ingestFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a catalog CSV into the database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cfg.Database.Host == "" {
			log.Fatal("ingest requires a configured database")
		}

		ctx := context.Background()
		pool, err := postgres.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := postgres.InitSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to initialise schema: %v", err)
		}

		if err := ingest.NewLoader(pool).Run(ctx, ingestFile); err != nil {
			log.Fatalf("Ingest failed: %v", err)
		}
		log.Print("Ingest complete")
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestFile, "file", "restaurants_data.csv", "Catalog CSV to load")
}
