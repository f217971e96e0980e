package main

import (
	"github.com/riverwatch/tempcache/internal/cachefile"
	"github.com/riverwatch/tempcache/internal/config"
	"github.com/riverwatch/tempcache/internal/pipeline"
	"github.com/riverwatch/tempcache/internal/publish"
	"github.com/riverwatch/tempcache/internal/stations"
	"github.com/riverwatch/tempcache/internal/usgs"
	"github.com/riverwatch/tempcache/pkg/http/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg = config.LoadFromEnv()

var rootCmd = &cobra.Command{
	Use:           "tempcache",
	Short:         "Build a static daily water temperature cache from USGS data",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cfg.InitializeLogging()

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.StationsFile, "stations", cfg.StationsFile, "path to the stationData artifact")
	flags.StringVar(&cfg.OutputFile, "out", cfg.OutputFile, "path of the cache artifact to write")
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "USGS water services base URL")
	flags.DurationVar(&cfg.Throttle, "throttle", cfg.Throttle, "pause between station fetches")
	flags.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "optional S3 bucket to publish the artifact to")
	flags.StringVar(&cfg.S3Key, "s3-key", cfg.S3Key, "S3 object key for the published artifact")
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	records, err := stations.Load(cfg.StationsFile)
	if err != nil {
		return err
	}
	log.Info().Int("station_count", len(records)).Str("path", cfg.StationsFile).Msg("station list loaded")

	httpClient := client.New(client.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	fetcher := usgs.NewClient(httpClient)

	p, err := pipeline.New(fetcher, pipeline.Options{Throttle: cfg.Throttle})
	if err != nil {
		return err
	}
	cache := p.Run(ctx, records)

	if err := cachefile.Write(cfg.OutputFile, cache); err != nil {
		return err
	}

	if cfg.S3Bucket != "" {
		publisher, err := publish.NewFromConfig(ctx, cfg.S3Bucket, cfg.S3Key)
		if err != nil {
			return err
		}
		body, err := cachefile.Encode(cache)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, body); err != nil {
			return err
		}
	}

	log.Info().
		Int("with_data", len(cache.Series)).
		Int("no_data", len(cache.NoData)).
		Str("path", cfg.OutputFile).
		Msg("wrote temperature cache")

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("temp cache build failed")
	}
}
