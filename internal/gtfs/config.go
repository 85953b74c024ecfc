package gtfs

import (
	"strings"
	"time"

	"railroute.dev/internal/appconf"
	"railroute.dev/internal/matcher"
	"railroute.dev/internal/resolver"
)

type Config struct {
	GtfsURL         string
	DBPath          string
	RefreshInterval time.Duration
	Env             appconf.Environment
	Verbose         bool
	Weights         matcher.Weights
	Options         resolver.Options
}

func (config Config) isLocalFile() bool {
	return config.GtfsURL != "" && !strings.HasPrefix(config.GtfsURL, "http://") && !strings.HasPrefix(config.GtfsURL, "https://")
}
