package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shwikky/storefront/internal/catalog/postgres"
	"github.com/shwikky/storefront/internal/factories"
	"github.com/shwikky/storefront/internal/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a demo catalog and load it into the database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cfg.Database.Host == "" {
			log.Fatal("seed requires a configured database")
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

		restaurants := factories.NewSeeder(cfg).Generate()

		var items []*models.MenuItem
		for _, r := range restaurants {
			for i := range r.Menu {
				items = append(items, &r.Menu[i])
			}
		}

		if err := postgres.NewRestaurantRepository(pool).BulkCreate(ctx, restaurants); err != nil {
			log.Fatalf("Failed to insert restaurants: %v", err)
		}
		if err := postgres.NewMenuItemRepository(pool).BulkCreate(ctx, items); err != nil {
			log.Fatalf("Failed to insert menu items: %v", err)
		}
		log.Printf("Seeded %d restaurants with %d menu items", len(restaurants), len(items))
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
