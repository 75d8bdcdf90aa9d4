package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bucketcrop/internal/bucket"
)

var (
	envFile     string
	debug       bool
	catalogPath string
)

var rootCmd = &cobra.Command{
	Use:   "bucketcrop",
	Short: "Batch aspect-ratio normalization for image datasets",
	Long: `Normalize a folder of training images against a set of aspect-ratio
buckets: crop or pad each image to its best-fit bucket, optionally clamp the
longest side, and write the results in place or to a target folder.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to .env file to load before running commands")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a YAML bucket catalog (default: built-in catalog)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load env file '%s': %w", envFile, err)
			}
		}
		setupLogging(debug)
		return nil
	}
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// activeCatalog returns the bucket catalog for this invocation: the YAML
// file named by --catalog, or the built-in defaults.
func activeCatalog() (bucket.Catalog, error) {
	if catalogPath == "" {
		return bucket.DefaultCatalog(), nil
	}
	return bucket.LoadCatalog(catalogPath)
}
