package main

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railroute.dev/internal/appconf"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseConfigLayers(t *testing.T) {
	getenv := envFrom(map[string]string{
		"RAILROUTE_GTFS_URL":   "https://example.org/sncf.zip",
		"RAILROUTE_PORT":       "8080",
		"RAILROUTE_RATE_LIMIT": "2.5",
	})

	cfg, err := parseConfig([]string{"-port", "9090", "-env", "production", "-cache-ttl", "1m", "-gzip-level", "0"}, getenv)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port, "flags override the environment")
	assert.Equal(t, "https://example.org/sncf.zip", cfg.GtfsURL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, appconf.Production, cfg.Env)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 0, cfg.CompressionLevel)
	assert.Equal(t, 1024, cfg.CompressionMinSize)
}

func TestParseConfigRequiresSource(t *testing.T) {
	_, err := parseConfig(nil, envFrom(nil))
	assert.Error(t, err)

	cfg, err := parseConfig([]string{"-db", "graph.db"}, envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, "graph.db", cfg.DBPath)
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	_, err := parseConfig([]string{"-gtfs-url", "feed.zip", "-port", "70000"}, envFrom(nil))
	assert.Error(t, err)

	_, err = parseConfig([]string{"-gtfs-url", "feed.zip", "-log-level", "loud"}, envFrom(nil))
	assert.Error(t, err)

	_, err = parseConfig([]string{"-gtfs-url", "feed.zip"}, envFrom(map[string]string{"RAILROUTE_PORT": "abc"}))
	assert.Error(t, err)

	_, err = parseConfig([]string{"-h"}, envFrom(nil))
	assert.ErrorIs(t, err, flag.ErrHelp)
}
