package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Food delivery storefront backend",
	Long:  `storefront serves the restaurant catalog, search and cart APIs of a food delivery platform, with commands to ingest catalog CSVs, seed demo data and export snapshots.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.PersistentFlags().String("listen-addr", ":8080", "HTTP listen address")
	rootCmd.PersistentFlags().String("default-city", "Vellore", "City served when none is requested")
	rootCmd.PersistentFlags().String("storage-backend", "file", "Cart and search persistence backend (file, s3 or memory)")
	rootCmd.PersistentFlags().String("storage-dir", ".storefront", "Directory for the file storage backend")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Publish analytics events to Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().String("output-path", "", "Base path for snapshot output files")
	rootCmd.PersistentFlags().String("output-folder", "output", "Folder under the output path")
	rootCmd.PersistentFlags().String("output-format", "json", "Snapshot format (json, csv or parquet)")

	viper.BindPFlag("listen_addr", rootCmd.PersistentFlags().Lookup("listen-addr"))
	viper.BindPFlag("default_city", rootCmd.PersistentFlags().Lookup("default-city"))
	viper.BindPFlag("storage_backend", rootCmd.PersistentFlags().Lookup("storage-backend"))
	viper.BindPFlag("storage_dir", rootCmd.PersistentFlags().Lookup("storage-dir"))
	viper.BindPFlag("kafka_enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_path", rootCmd.PersistentFlags().Lookup("output-path"))
	viper.BindPFlag("output_folder", rootCmd.PersistentFlags().Lookup("output-folder"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
