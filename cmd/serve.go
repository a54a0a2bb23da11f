package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shwikky/storefront/internal/cart"
	"github.com/shwikky/storefront/internal/catalog"
	"github.com/shwikky/storefront/internal/catalog/postgres"
	"github.com/shwikky/storefront/internal/export"
	"github.com/shwikky/storefront/internal/factories"
	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
	"github.com/shwikky/storefront/internal/search"
	"github.com/shwikky/storefront/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	storage, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise storage: %v", err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise catalog: %v", err)
	}

	cartStore := cart.NewStore(storage)
	cartStore.Load()
	recent := search.NewRecentSearches(storage, cfg.MaxRecentSearches)

	srv := server.New(cfg, provider, cartStore, recent, storage)

	if cfg.KafkaEnabled {
		sink, err := export.NewKafkaDestination(cfg.KafkaBrokerList)
		if err != nil {
			log.Fatalf("Failed to connect to Kafka: %v", err)
		}
		defer sink.Close()
		srv.SetEventSink(sink)
	}

	log.Printf("Serving storefront API on %s", cfg.ListenAddr)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// newStorage picks the persistence backend for cart and recent searches.
func newStorage(cfg *models.Config) (kv.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return kv.NewMemoryStore(), nil
	case "s3":
		return kv.NewS3Store(cfg.CloudStorage.Region, cfg.CloudStorage.BucketName, "state")
	case "file", "":
		return kv.NewFileStore(cfg.StorageDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

// newProvider connects to postgres when a database is configured and falls
// back to a seeded in-memory catalog otherwise.
func newProvider(cfg *models.Config) (catalog.Provider, error) {
	if cfg.Database.Host != "" {
		pool, err := postgres.Connect(context.Background(), cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		return postgres.NewProvider(pool), nil
	}

	log.Print("No database configured, serving a seeded in-memory catalog")
	seeded := factories.NewSeeder(cfg).Generate()
	restaurants := make([]models.Restaurant, 0, len(seeded))
	for _, r := range seeded {
		restaurants = append(restaurants, *r)
	}
	return catalog.NewMemoryProvider(restaurants), nil
}
