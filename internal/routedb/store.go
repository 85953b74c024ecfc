package routedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"railroute.dev/internal/graph"
	"railroute.dev/internal/logging"
	"railroute.dev/internal/stations"
)

// ErrNoSnapshot is returned by LoadSnapshot when nothing was stored yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot is the persisted form of a compiled engine state.
type Snapshot struct {
	Source   string
	BuiltAt  time.Time
	Stations []stations.Row
	Edges    []graph.CompactEdge
}

// SaveSnapshot replaces the stored snapshot in a single transaction.
func (c *Client) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "save_snapshot")

	for _, table := range []string{"stations", "edges", "snapshot_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}

	if err := insertStations(ctx, tx, snap.Stations); err != nil {
		return err
	}
	if err := insertEdges(ctx, tx, snap.Edges); err != nil {
		return err
	}

	meta := map[string]string{
		"source":   snap.Source,
		"built_at": snap.BuiltAt.UTC().Format(time.RFC3339Nano),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO snapshot_meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("error writing snapshot metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func insertStations(ctx context.Context, tx *sql.Tx, rows []stations.Row) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO stations (seq, name, station_id, lon, lat) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, i, row.Name, row.ID, row.Lon, row.Lat); err != nil {
			return fmt.Errorf("error inserting station: %w", err)
		}
	}
	return nil
}

func insertEdges(ctx context.Context, tx *sql.Tx, edges []graph.CompactEdge) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO edges (origin, destination, weight, trip_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, e := range edges {
		if _, err := stmt.ExecContext(ctx, e.Origin, e.Destination, e.Weight, toNullString(e.TripID)); err != nil {
			return fmt.Errorf("error inserting edge %s->%s: %w", e.Origin, e.Destination, err)
		}
	}
	return nil
}

// LoadSnapshot reads back the stored snapshot.
func (c *Client) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	meta, err := c.loadMeta(ctx)
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, ErrNoSnapshot
	}

	snap := &Snapshot{Source: meta["source"]}
	if v, ok := meta["built_at"]; ok {
		builtAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("error parsing snapshot time: %w", err)
		}
		snap.BuiltAt = builtAt
	}

	if snap.Stations, err = c.LoadStations(ctx); err != nil {
		return nil, err
	}
	if snap.Edges, err = c.LoadEdges(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Client) loadMeta(ctx context.Context) (_ map[string]string, err error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT key, value FROM snapshot_meta")
	if err != nil {
		return nil, fmt.Errorf("error querying snapshot metadata: %w", err)
	}
	defer logging.HandleDeferredError(&err, rows.Close, c.logger, "close_meta_rows")

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("error scanning snapshot metadata: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// LoadStations returns the stored station table in its original order.
func (c *Client) LoadStations(ctx context.Context) (_ []stations.Row, err error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT name, station_id, lon, lat FROM stations ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	defer logging.HandleDeferredError(&err, rows.Close, c.logger, "close_station_rows")

	var out []stations.Row
	for rows.Next() {
		var row stations.Row
		if err := rows.Scan(&row.Name, &row.ID, &row.Lon, &row.Lat); err != nil {
			return nil, fmt.Errorf("error scanning station: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LoadEdges returns the stored compact edges sorted by origin then destination.
func (c *Client) LoadEdges(ctx context.Context) (_ []graph.CompactEdge, err error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT origin, destination, weight, trip_id FROM edges ORDER BY origin, destination")
	if err != nil {
		return nil, fmt.Errorf("error querying edges: %w", err)
	}
	defer logging.HandleDeferredError(&err, rows.Close, c.logger, "close_edge_rows")

	var out []graph.CompactEdge
	for rows.Next() {
		var e graph.CompactEdge
		var tripID sql.NullString
		if err := rows.Scan(&e.Origin, &e.Destination, &e.Weight, &tripID); err != nil {
			return nil, fmt.Errorf("error scanning edge: %w", err)
		}
		e.TripID = tripID.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// TableCounts returns the row count of every snapshot table.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"stations", "edges", "snapshot_meta"} {
		var n int
		if err := c.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("error counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}
