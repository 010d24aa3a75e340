// Package slog decorates docindex services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingSnapshotService implements docindex.SnapshotService.
var _ docindex.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with logging.
type LoggingSnapshotService struct {
	next   docindex.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next docindex.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// CreateSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, snapshot *docindex.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create snapshot",
			"name", snapshot.Name,
			"id", snapshot.ID,
			"hash", snapshot.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, snapshot)
}

// FindSnapshotByID delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) FindSnapshotByID(ctx context.Context, id string) (snapshot *docindex.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshot",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshotByID(ctx, id)
}

// FindSnapshots delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter docindex.SnapshotFilter) (snapshots []*docindex.Snapshot, err error) {
	defer func(begin time.Time) {
		attrs := []any{"count", len(snapshots), "duration", time.Since(begin), "err", err}
		if filter.Name != nil {
			attrs = append(attrs, "name", *filter.Name)
		}
		s.logger.Debug("find snapshots", attrs...)
	}(time.Now())
	return s.next.FindSnapshots(ctx, filter)
}

// DeleteSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete snapshot",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, id)
}
