package gtfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"railroute.dev/internal/graph"
	"railroute.dev/internal/logging"
	"railroute.dev/internal/routedb"
	"railroute.dev/internal/timetable"
)

// ErrNoSource is returned when neither a GTFS source nor a stored snapshot is available.
var ErrNoSource = errors.New("no GTFS source configured and no stored snapshot")

// Manager owns the current engine Snapshot and replaces it on refresh.
type Manager struct {
	config       Config
	logger       *slog.Logger
	store        *routedb.Client
	current      atomic.Pointer[Snapshot]
	rebuildMu    sync.Mutex
	hooksMu      sync.Mutex
	onSwap       []func(*Snapshot)
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager loads the configured source, builds the first Snapshot and, for remote
// sources, starts the periodic refresh. Without a source it boots from the snapshot store.
func InitManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	manager := &Manager{
		config:       config,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}

	if config.DBPath != "" {
		dbConfig := routedb.NewConfig(config.DBPath, config.Env, config.Verbose)
		dbConfig.Logger = logger
		store, err := routedb.NewClient(dbConfig)
		if err != nil {
			return nil, fmt.Errorf("error opening snapshot store: %w", err)
		}
		manager.store = store
	}

	var snapshot *Snapshot
	var err error
	if config.GtfsURL != "" {
		snapshot, err = manager.buildFromSource(ctx)
	} else {
		snapshot, err = manager.bootFromStore(ctx)
	}
	if err != nil {
		if manager.store != nil {
			logging.SafeCloseWithLogging(manager.store, logger, "close_snapshot_store")
		}
		return nil, err
	}
	manager.current.Store(snapshot)

	if !config.isLocalFile() && config.GtfsURL != "" && config.RefreshInterval > 0 {
		manager.wg.Add(1)
		go manager.updateStaticGTFS()
	}

	return manager, nil
}

// NewManagerFromSnapshot wraps an already built Snapshot. It never refreshes.
func NewManagerFromSnapshot(snapshot *Snapshot, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	manager := &Manager{
		config:       Config{GtfsURL: snapshot.Source},
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
	manager.current.Store(snapshot)
	return manager
}

func (manager *Manager) buildFromSource(ctx context.Context) (*Snapshot, error) {
	started := time.Now()
	feed, err := timetable.Load(ctx, manager.config.GtfsURL)
	if err != nil {
		return nil, err
	}

	snapshot := BuildSnapshot(feed, manager.config.Weights, manager.config.Options, manager.logger)
	logging.LogOperation(manager.logger, "snapshot_built",
		slog.String("source", feed.Source),
		slog.Int("station_rows", snapshot.Index.RowCount()),
		slog.Int("edges", snapshot.Graph.EdgeCount()),
		slog.Duration("duration", time.Since(started)))

	if manager.store != nil {
		if err := manager.store.SaveSnapshot(ctx, snapshot.stored()); err != nil {
			// the in-memory snapshot is still usable
			logging.LogError(manager.logger, "failed to persist snapshot", err,
				slog.String("component", "snapshot_store"))
		}
	}
	return snapshot, nil
}

func (manager *Manager) bootFromStore(ctx context.Context) (*Snapshot, error) {
	if manager.store == nil {
		return nil, ErrNoSource
	}
	stored, err := manager.store.LoadSnapshot(ctx)
	if errors.Is(err, routedb.ErrNoSnapshot) {
		return nil, ErrNoSource
	}
	if err != nil {
		return nil, fmt.Errorf("error loading stored snapshot: %w", err)
	}

	snapshot := snapshotFromStore(stored, manager.config.Weights, manager.config.Options, manager.logger)
	logging.LogOperation(manager.logger, "snapshot_restored",
		slog.String("source", stored.Source),
		slog.Int("station_rows", snapshot.Index.RowCount()),
		slog.Int("edges", snapshot.Graph.EdgeCount()))
	return snapshot, nil
}

// Snapshot returns the current engine state. Callers keep using the value they got
// even if a rebuild swaps in a newer one meanwhile.
func (manager *Manager) Snapshot() *Snapshot {
	return manager.current.Load()
}

// OnSwap registers fn to run after every Snapshot replacement.
func (manager *Manager) OnSwap(fn func(*Snapshot)) {
	manager.hooksMu.Lock()
	defer manager.hooksMu.Unlock()
	manager.onSwap = append(manager.onSwap, fn)
}

// Rebuild reloads the configured source and atomically swaps in the new Snapshot.
// On failure the current Snapshot stays in place.
func (manager *Manager) Rebuild(ctx context.Context) (*Snapshot, error) {
	if manager.config.GtfsURL == "" {
		return nil, ErrNoSource
	}

	manager.rebuildMu.Lock()
	defer manager.rebuildMu.Unlock()

	snapshot, err := manager.buildFromSource(ctx)
	if err != nil {
		return nil, err
	}
	manager.swap(snapshot)
	return snapshot, nil
}

// Swap replaces the current Snapshot.
func (manager *Manager) Swap(snapshot *Snapshot) {
	manager.rebuildMu.Lock()
	defer manager.rebuildMu.Unlock()
	manager.swap(snapshot)
}

func (manager *Manager) swap(snapshot *Snapshot) {
	manager.current.Store(snapshot)

	manager.hooksMu.Lock()
	hooks := append([]func(*Snapshot){}, manager.onSwap...)
	manager.hooksMu.Unlock()

	for _, fn := range hooks {
		fn(snapshot)
	}
}

// Shutdown gracefully shuts down the manager and its background goroutines
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		if manager.store != nil {
			logging.SafeCloseWithLogging(manager.store, manager.logger, "close_snapshot_store")
		}
	})
}

// Statistics summarises the current Snapshot.
type Statistics struct {
	Source          string           `json:"source"`
	LocalFile       bool             `json:"localFile"`
	BuiltAt         time.Time        `json:"builtAt"`
	StationRows     int              `json:"stationRows"`
	StationNames    int              `json:"stationNames"`
	SkippedStations int              `json:"skippedStations"`
	GraphStations   int              `json:"graphStations"`
	Edges           int              `json:"edges"`
	Build           graph.BuildStats `json:"build"`
}

func (manager *Manager) Statistics() Statistics {
	s := manager.Snapshot()
	return Statistics{
		Source:          s.Source,
		LocalFile:       !timetable.IsRemote(s.Source),
		BuiltAt:         s.BuiltAt,
		StationRows:     s.Index.RowCount(),
		StationNames:    len(s.Index.Keys()),
		SkippedStations: s.Index.Skipped(),
		GraphStations:   s.Graph.StationCount(),
		Edges:           s.Graph.EdgeCount(),
		Build:           s.Stats,
	}
}

func (manager *Manager) PrintStatistics() {
	stats := manager.Statistics()
	fmt.Printf("Source: %s (Local File: %v)\n", stats.Source, stats.LocalFile)
	fmt.Printf("Last Updated: %s\n", stats.BuiltAt)
	fmt.Println("Station Rows: ", stats.StationRows)
	fmt.Println("Station Names: ", stats.StationNames)
	fmt.Println("Graph Stations: ", stats.GraphStations)
	fmt.Println("Edges Count: ", stats.Edges)
}
