// Package config loads collector settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all collector settings, populated from environment variables.
type Config struct {
	// Upstream credentials. An empty value disables the adapter.
	KMAAPIKey         string
	KEPCOAPIKey       string
	NaverClientID     string
	NaverClientSecret string
	BizinfoAPIKey     string

	// Endpoint overrides; empty selects the public endpoint.
	KMABaseURL     string
	KEPCOBaseURL   string
	NaverBaseURL   string
	BizinfoBaseURL string

	RequestTimeout   time.Duration
	RegionDelay      time.Duration
	OutputDir        string
	CatalogPath      string
	ProfilePath      string
	RandomSeed       uint64
	WeatherCacheSize int

	KafkaBrokers []string
	KafkaTopic   string

	MetricsTextfile string
	HTTPAddr        string
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from environment variables, applying defaults
// where unset. Variables from ENV_FILE (default .env.local) are loaded first
// without overriding the real environment; a missing file is not an error.
func Load() (*Config, error) {
	if err := loadEnvFile(sharedcfg.EnvOrDefault("ENV_FILE", ".env.local")); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	requestTimeout, err := parsePositiveDuration("REQUEST_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parsePositiveDuration("REFRESH_INTERVAL", "24h")
	if err != nil {
		return nil, err
	}
	regionDelay, err := time.ParseDuration(sharedcfg.EnvOrDefault("REGION_DELAY", "100ms"))
	if err != nil || regionDelay < 0 {
		return nil, errors.New("invalid REGION_DELAY: must be a non-negative duration")
	}
	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("RANDOM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid RANDOM_SEED: must be an unsigned integer")
	}
	cacheSize, err := strconv.Atoi(sharedcfg.EnvOrDefault("WEATHER_CACHE_SIZE", "64"))
	if err != nil || cacheSize < 1 {
		return nil, errors.New("invalid WEATHER_CACHE_SIZE: must be a positive integer")
	}

	cfg := &Config{
		KMAAPIKey:         os.Getenv("KMA_API_KEY"),
		KEPCOAPIKey:       os.Getenv("KEPCO_API_KEY"),
		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		BizinfoAPIKey:     os.Getenv("BIZINFO_API_KEY"),

		KMABaseURL:     os.Getenv("KMA_BASE_URL"),
		KEPCOBaseURL:   os.Getenv("KEPCO_BASE_URL"),
		NaverBaseURL:   os.Getenv("NAVER_BASE_URL"),
		BizinfoBaseURL: os.Getenv("BIZINFO_BASE_URL"),

		RequestTimeout:   requestTimeout,
		RegionDelay:      regionDelay,
		OutputDir:        sharedcfg.EnvOrDefault("OUTPUT_DIR", "public/data"),
		CatalogPath:      os.Getenv("CATALOG_PATH"),
		ProfilePath:      os.Getenv("PROFILE_PATH"),
		RandomSeed:       seed,
		WeatherCacheSize: cacheSize,

		KafkaBrokers: sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "region-reports"),

		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		RefreshInterval: refreshInterval,
		ShutdownTimeout: shutdownTimeout,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	return cfg, nil
}

// KMAEnabled reports whether the weather adapter is configured.
func (c *Config) KMAEnabled() bool { return c.KMAAPIKey != "" }

// KEPCOEnabled reports whether the grid operator adapter is configured.
func (c *Config) KEPCOEnabled() bool { return c.KEPCOAPIKey != "" }

// NaverEnabled reports whether both news search credentials are set.
func (c *Config) NaverEnabled() bool { return c.NaverClientID != "" && c.NaverClientSecret != "" }

// BizinfoEnabled reports whether the announcement adapter is configured.
func (c *Config) BizinfoEnabled() bool { return c.BizinfoAPIKey != "" }

// KafkaEnabled reports whether report publishing is configured.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load ENV_FILE %s: %w", path, err)
	}
	return nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}
