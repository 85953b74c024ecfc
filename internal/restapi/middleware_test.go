package restapi

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railroute.dev/internal/appconf"
)

func compressedWith(t *testing.T, config CompressionConfig, next http.Handler) http.Handler {
	t.Helper()
	middleware, err := NewCompressionMiddleware(config)
	require.NoError(t, err)
	return middleware(next)
}

func TestCompressionMiddleware(t *testing.T) {
	largeResponse := strings.Repeat(`{"station": "Strasbourg Ville"}`, 200)
	jsonHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(largeResponse))
	})
	defaults := CompressionConfigFrom(appconf.Defaults())

	t.Run("compresses when gzip is accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		compressedWith(t, defaults, jsonHandler).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(bytes.NewReader(recorder.Body.Bytes()))
		require.NoError(t, err)
		defer reader.Close() // nolint:errcheck

		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, largeResponse, string(decompressed))
		assert.Less(t, recorder.Body.Len(), len(largeResponse))
	})

	t.Run("passes through otherwise", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		recorder := httptest.NewRecorder()

		compressedWith(t, defaults, jsonHandler).ServeHTTP(recorder, req)

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, largeResponse, recorder.Body.String())
	})

	t.Run("skips other content types", func(t *testing.T) {
		htmlHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(largeResponse))
		})
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		compressedWith(t, defaults, htmlHandler).ServeHTTP(recorder, req)

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
	})

	t.Run("level zero disables compression", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		compressedWith(t, CompressionConfig{MinSize: 0, Level: 0}, jsonHandler).ServeHTTP(recorder, req)

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, largeResponse, recorder.Body.String())
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		_, err := NewCompressionMiddleware(CompressionConfig{MinSize: 0, Level: 42})
		assert.Error(t, err)
	})
}

func TestAPICompressionFollowsConfig(t *testing.T) {
	for _, tt := range []struct {
		name     string
		level    int
		encoding string
	}{
		{"enabled", 6, "gzip"},
		{"disabled", 0, ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			api := createTestApiWithConfig(t, func(c *appconf.Config) {
				c.CompressionLevel = tt.level
				c.CompressionMinSize = 0
			})
			req := httptest.NewRequest("GET", "/api/stats.json", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			recorder := httptest.NewRecorder()

			api.Handler().ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.encoding, recorder.Header().Get("Content-Encoding"))
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	api := createTestApi(t)
	handler := api.Handler()

	req := httptest.NewRequest("GET", "/api/stats.json", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("OPTIONS", "/api/trip.json", nil)
	req.Header.Set("Origin", "https://map.example.org")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, recorder.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	api := createTestApi(t)
	handler := api.Handler()

	req := httptest.NewRequest("GET", "/api/stats.json", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	minted := recorder.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req = httptest.NewRequest("GET", "/api/stats.json", nil)
	req.Header.Set(RequestIDHeader, incoming)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	assert.Equal(t, incoming, recorder.Header().Get(RequestIDHeader))

	req = httptest.NewRequest("GET", "/api/stats.json", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	assert.NotEqual(t, "not a uuid", recorder.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddlewareBlocksOverBurst(t *testing.T) {
	middleware := NewRateLimitMiddleware(1, 2)
	defer middleware.Stop()

	rejected := 0
	middleware.onReject = func() { rejected++ }

	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/stats.json", nil))
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, rejected)

	// another client has its own bucket
	req := httptest.NewRequest("GET", "/api/stats.json", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRateLimitThroughAPI(t *testing.T) {
	api := createTestApiWithConfig(t, func(c *appconf.Config) {
		c.RateLimit = 0.5
		c.RateBurst = 1
	})

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/stats.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/stats.json")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("Retry-After"))
	assert.Equal(t, http.StatusTooManyRequests, model.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(api.Metrics.RateLimited))
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	middleware := NewRateLimitMiddleware(5, 5)
	defer middleware.Stop()

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	middleware.now = func() time.Time { return now }

	middleware.getLimiter("198.51.100.1")
	now = now.Add(9 * time.Minute)
	middleware.getLimiter("198.51.100.2")
	now = now.Add(2 * time.Minute)

	middleware.evictIdle()

	middleware.mu.Lock()
	defer middleware.mu.Unlock()
	assert.NotContains(t, middleware.limiters, "198.51.100.1")
	assert.Contains(t, middleware.limiters, "198.51.100.2")
}

func TestRateLimitStopIsIdempotent(t *testing.T) {
	middleware := NewRateLimitMiddleware(5, 5)
	middleware.Stop()
	middleware.Stop()
}
