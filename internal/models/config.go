package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	DefaultCity string `mapstructure:"default_city"`

	// local storage analog: one JSON blob per key under this directory
	StorageDir     string `mapstructure:"storage_dir"`
	StorageBackend string `mapstructure:"storage_backend"` // file, s3 or memory

	Database DatabaseConfig `mapstructure:"database"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	OutputPath   string `mapstructure:"output_path"`
	OutputFolder string `mapstructure:"output_folder"`
	OutputFormat string `mapstructure:"output_format"` // json, csv or parquet

	// search result caps, applied before grouping
	MaxRestaurantHits int `mapstructure:"max_restaurant_hits"`
	MaxDishHits       int `mapstructure:"max_dish_hits"`
	MaxRecentSearches int `mapstructure:"max_recent_searches"`

	// restaurant ids pinned to the end of every browse result
	PromotedChainIDs []string `mapstructure:"promoted_chain_ids"`
	// restaurant ids matched by the new-arrivals filter
	NewArrivalIDs []string `mapstructure:"new_arrival_ids"`

	// seed command knobs
	SeedRestaurants int `mapstructure:"seed_restaurants"`
	SeedMinItems    int `mapstructure:"seed_min_items"`
	SeedMaxItems    int `mapstructure:"seed_max_items"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("default_city", "Vellore")
	viper.SetDefault("storage_dir", ".storefront")
	viper.SetDefault("storage_backend", "file")
	viper.SetDefault("max_restaurant_hits", 10)
	viper.SetDefault("max_dish_hits", 20)
	viper.SetDefault("max_recent_searches", 5)
	viper.SetDefault("promoted_chain_ids", []string{"burger-king", "dominos", "kfc"})
	viper.SetDefault("new_arrival_ids", []string{"taco-bell", "thai-express", "japanese-kitchen"})
	viper.SetDefault("seed_restaurants", 25)
	viper.SetDefault("seed_min_items", 10)
	viper.SetDefault("seed_max_items", 30)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
