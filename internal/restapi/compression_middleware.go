package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"railroute.dev/internal/appconf"
)

// compressibleTypes are the payloads the API produces: JSON envelopes and the
// Prometheus text exposition.
var compressibleTypes = []string{"application/json", "text/plain"}

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the minimum response size in bytes to compress
	MinSize int
	// Level is the gzip level, 1-9. 0 disables compression.
	Level int
}

// CompressionConfigFrom takes the compression settings of the process configuration.
func CompressionConfigFrom(config appconf.Config) CompressionConfig {
	return CompressionConfig{
		MinSize: config.CompressionMinSize,
		Level:   config.CompressionLevel,
	}
}

// NewCompressionMiddleware creates a gzip middleware limited to the API's content types.
// A zero level yields a pass-through middleware.
func NewCompressionMiddleware(config CompressionConfig) (func(http.Handler) http.Handler, error) {
	if config.Level == 0 {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(config.MinSize),
		gzhttp.CompressionLevel(config.Level),
		gzhttp.ContentTypes(compressibleTypes),
	)
	if err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler { return wrapper(next) }, nil
}

// compression wraps next with the configured gzip middleware. An invalid configuration
// is logged and serves uncompressed.
func (api *RestAPI) compression(next http.Handler) http.Handler {
	middleware, err := NewCompressionMiddleware(CompressionConfigFrom(api.Config))
	if err != nil {
		api.Logger.Error("invalid compression settings, serving uncompressed", "error", err)
		return next
	}
	return middleware(next)
}
