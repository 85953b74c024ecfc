// Package routedb persists compiled snapshots (station table and compact edges) in SQLite
// so a process can boot without re-parsing a GTFS feed.
package routedb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"railroute.dev/internal/appconf"
)

//go:embed schema.sql
var ddl string

const memoryPath = ":memory:"

// ErrFileDatabaseInTest is returned when a test run points at a database file.
var ErrFileDatabaseInTest = errors.New("test database must use in-memory storage")

// Client is the entry point to the snapshot store.
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database and applies the schema.
func NewClient(config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := createDB(config)
	if err != nil {
		return nil, err
	}
	if config.Verbose {
		logger.Info("snapshot store ready", slog.String("path", config.DBPath))
	}

	return &Client{config: config, DB: db, logger: logger}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func createDB(config Config) (*sql.DB, error) {
	path := strings.TrimSpace(config.DBPath)
	if path == "" {
		path = memoryPath
	}
	if config.Env == appconf.Test && path != memoryPath {
		return nil, fmt.Errorf("%w: %s", ErrFileDatabaseInTest, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if path == memoryPath {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}
	return db, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return nil
}
