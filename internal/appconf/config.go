// Package appconf holds process configuration: flags, environment, .env files and the
// optional YAML tuning file.
package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "RAILROUTE_"

// Config holds all the configuration settings for the application.
type Config struct {
	Port            int           `validate:"gte=0,lte=65535"`
	Env             Environment   `validate:"gte=0,lte=2"`
	GtfsURL         string
	DBPath          string
	RefreshInterval time.Duration `validate:"gte=0"`
	// RateLimit is the sustained number of requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64       `validate:"gte=0"`
	RateBurst int           `validate:"gte=0"`
	CacheSize int           `validate:"gte=0"`
	CacheTTL  time.Duration `validate:"gte=0"`
	// CompressionLevel is the gzip level of API responses; 0 turns compression off.
	CompressionLevel   int `validate:"gte=0,lte=9"`
	CompressionMinSize int `validate:"gte=0"`
	TuningPath         string
	LogLevel           string `validate:"omitempty,oneof=debug info warn warning error"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		Port:               4000,
		Env:                Development,
		RefreshInterval:    24 * time.Hour,
		RateLimit:          10,
		RateBurst:          20,
		CacheSize:          1024,
		CacheTTL:           10 * time.Minute,
		CompressionLevel:   6,
		CompressionMinSize: 1024,
		LogLevel:           "info",
	}
}

// LoadDotEnv loads .env style files into the process environment. Missing files are
// ignored; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from RAILROUTE_* variables found through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	get := func(key string) string {
		return strings.TrimSpace(getenv(EnvPrefix + key))
	}

	if v := get("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT: %q", EnvPrefix, v)
		}
		c.Port = port
	}
	if v := get("ENV"); v != "" {
		c.Env = EnvFlagToEnvironment(v)
	}
	if v := get("GTFS_URL"); v != "" {
		c.GtfsURL = v
	}
	if v := get("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := get("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sREFRESH_INTERVAL: %w", EnvPrefix, err)
		}
		c.RefreshInterval = d
	}
	if v := get("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sRATE_LIMIT: %q", EnvPrefix, v)
		}
		c.RateLimit = f
	}
	if v := get("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sRATE_BURST: %q", EnvPrefix, v)
		}
		c.RateBurst = n
	}
	if v := get("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCACHE_SIZE: %q", EnvPrefix, v)
		}
		c.CacheSize = n
	}
	if v := get("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sCACHE_TTL: %w", EnvPrefix, err)
		}
		c.CacheTTL = d
	}
	if v := get("COMPRESSION_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCOMPRESSION_LEVEL: %q", EnvPrefix, v)
		}
		c.CompressionLevel = n
	}
	if v := get("COMPRESSION_MIN_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCOMPRESSION_MIN_SIZE: %q", EnvPrefix, v)
		}
		c.CompressionMinSize = n
	}
	if v := get("TUNING"); v != "" {
		c.TuningPath = v
	}
	if v := get("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	return nil
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
