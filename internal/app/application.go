package app

import (
	"log/slog"

	"railroute.dev/internal/appconf"
	"railroute.dev/internal/gtfs"
	"railroute.dev/internal/metrics"
)

// Application holds the dependencies for the HTTP handlers, helpers and middleware.
type Application struct {
	Config      appconf.Config
	GtfsConfig  gtfs.Config
	Logger      *slog.Logger
	GtfsManager *gtfs.Manager
	Metrics     *metrics.Collector
}

// WireMetrics keeps the graph gauges in step with the active snapshot.
func (app *Application) WireMetrics() {
	if app.Metrics == nil || app.GtfsManager == nil {
		return
	}

	s := app.GtfsManager.Snapshot()
	app.Metrics.SetGraph(s.Graph.StationCount(), s.Graph.EdgeCount(), s.BuiltAt)

	app.GtfsManager.OnSwap(func(s *gtfs.Snapshot) {
		app.Metrics.Rebuilds.Inc()
		app.Metrics.SetGraph(s.Graph.StationCount(), s.Graph.EdgeCount(), s.BuiltAt)
	})
}
