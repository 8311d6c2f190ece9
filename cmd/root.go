// Package cmd implements the command-line interface for the car listing
// pipeline. It provides the root command and the stage subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdgeocode "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/geocode"
	cmdrun "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/run"
	cmdschedule "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/schedule"
	cmdtransform "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/transform"
	cmdupload "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/upload"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands
	Debug bool

	// rootCmd represents the root command for the pipeline CLI.
	rootCmd = &cobra.Command{
		Use:   "carpipe",
		Short: "A batch pipeline for used-car listing data",
		Long: `carpipe cleans scraped used-car listings into an analysis-ready table,
enriches them with seller geography, and loads them into PostgreSQL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env early so environment variables are available to viper
	_ = godotenv.Load()

	// Parse flags early so --config and --debug influence initConfig
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(cmdtransform.Command())
	rootCmd.AddCommand(cmdgeocode.Command())
	rootCmd.AddCommand(cmdupload.Command())
	rootCmd.AddCommand(cmdrun.Command())
	rootCmd.AddCommand(cmdschedule.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over config file and defaults,
	// e.g. DATABASE_PASSWORD overrides database.password.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment cover a bare setup.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if Debug {
		viper.Set("app.debug", true)
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.name", "carpipe")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.development", false)

	viper.SetDefault("paths.raw_listings", "data/raw/car_listing.jsonl")
	viper.SetDefault("paths.transformed_listings", "data/transformed/transformed_car_listing.csv")
	viper.SetDefault("paths.geocode_cache", "data/geocode/geocache.csv")

	viper.SetDefault("geocode.enabled", true)
	viper.SetDefault("geocode.base_url", "https://api.postcodedata.nl/v1/postcode")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.dbname", "car_listings")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("schedule.cron", "0 6 * * *")
}
