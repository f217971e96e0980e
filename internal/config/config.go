package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Defaults mirror the legacy artifact names so a bare run in the directory
// holding the station file just works.
const (
	DefaultStationsFile = "multi_state_stations.js"
	DefaultOutputFile   = "multi_state_temp_cache.js"
	DefaultBaseURL      = "https://waterservices.usgs.gov"
	DefaultThrottle     = 200 * time.Millisecond
	DefaultHTTPTimeout  = 30 * time.Second
)

type Config struct {
	Environment  string
	LogLevel     zerolog.Level
	HTTPTimeout  time.Duration
	BaseURL      string
	StationsFile string
	OutputFile   string
	Throttle     time.Duration
	S3Bucket     string
	S3Key        string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithThrottle allows setting the pause between station fetches
func WithThrottle(throttle time.Duration) Option {
	return func(c *Config) {
		c.Throttle = throttle
	}
}

// WithS3Bucket allows setting the publish bucket
func WithS3Bucket(bucket string) Option {
	return func(c *Config) {
		c.S3Bucket = bucket
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:  "production",
		LogLevel:     zerolog.InfoLevel,
		HTTPTimeout:  DefaultHTTPTimeout,
		BaseURL:      DefaultBaseURL,
		StationsFile: DefaultStationsFile,
		OutputFile:   DefaultOutputFile,
		Throttle:     DefaultThrottle,
		S3Key:        DefaultOutputFile,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up the global logger. Progress and errors go to
// stderr so the output artifact path stays the only thing on stdout.
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", DefaultHTTPTimeout)),
		WithThrottle(getDurationEnvOrDefault("FETCH_THROTTLE", DefaultThrottle)),
		WithS3Bucket(getEnvOrDefault("CACHE_S3_BUCKET", "")),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
