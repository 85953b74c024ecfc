package gtfs

import (
	"context"
	"log/slog"
	"time"

	"railroute.dev/internal/logging"
)

const refreshTimeout = 60 * time.Second

// updateStaticGTFS rebuilds the Snapshot on a regular schedule. Only remote sources
// are refreshed.
func (manager *Manager) updateStaticGTFS() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			_, err := manager.Rebuild(ctx)
			cancel()

			if err != nil {
				// keep serving the previous snapshot
				logging.LogError(manager.logger, "error updating GTFS data", err,
					slog.String("source", manager.config.GtfsURL))
				continue
			}
			if manager.config.Verbose {
				manager.logger.Info("GTFS data updated successfully", slog.String("source", manager.config.GtfsURL))
			}
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down static GTFS updates")
			return
		}
	}
}
