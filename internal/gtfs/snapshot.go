package gtfs

import (
	"log/slog"
	"time"

	"railroute.dev/internal/graph"
	"railroute.dev/internal/logging"
	"railroute.dev/internal/matcher"
	"railroute.dev/internal/resolver"
	"railroute.dev/internal/routedb"
	"railroute.dev/internal/routing"
	"railroute.dev/internal/stations"
	"railroute.dev/internal/timetable"
)

// Snapshot is one immutable, fully built engine state. Requests read it without locks;
// a rebuild produces a new Snapshot instead of changing this one.
type Snapshot struct {
	Source   string
	BuiltAt  time.Time
	Rows     []stations.Row
	Index    *stations.Index
	Graph    *graph.Graph
	Router   *routing.Router
	Resolver *resolver.Resolver
	Stats    graph.BuildStats
}

// BuildSnapshot compiles a loaded feed into a Snapshot.
func BuildSnapshot(feed *timetable.Feed, weights matcher.Weights, opts resolver.Options, logger *slog.Logger) *Snapshot {
	g, stats := graph.Build(feed.StopTimes, logger)
	s := assemble(feed.Source, feed.Stations, g, weights, opts, logger)
	s.Stats = stats
	return s
}

// snapshotFromStore rebuilds a Snapshot from persisted rows and edges, skipping the
// timetable compilation.
func snapshotFromStore(stored *routedb.Snapshot, weights matcher.Weights, opts resolver.Options, logger *slog.Logger) *Snapshot {
	g := graph.NewGraph(stored.Edges)
	s := assemble(stored.Source, stored.Stations, g, weights, opts, logger)
	s.BuiltAt = stored.BuiltAt
	s.Stats = graph.BuildStats{CompactEdges: g.EdgeCount()}
	return s
}

func assemble(source string, rows []stations.Row, g *graph.Graph, weights matcher.Weights, opts resolver.Options, logger *slog.Logger) *Snapshot {
	index := stations.NewIndex(rows)
	if skipped := index.Skipped(); skipped > 0 {
		logging.LogOperation(logger, "station_rows_skipped",
			slog.String("component", "station_index"),
			slog.Int("skipped", skipped))
	}

	router := routing.NewRouter(g)
	return &Snapshot{
		Source:   source,
		BuiltAt:  time.Now(),
		Rows:     rows,
		Index:    index,
		Graph:    g,
		Router:   router,
		Resolver: resolver.New(index, matcher.New(weights), router, opts, logger),
	}
}

func (s *Snapshot) stored() routedb.Snapshot {
	return routedb.Snapshot{
		Source:   s.Source,
		BuiltAt:  s.BuiltAt,
		Stations: s.Rows,
		Edges:    s.Graph.Edges(),
	}
}
