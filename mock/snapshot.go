package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of docindex.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn   func(ctx context.Context, s *docindex.Snapshot) error
	FindSnapshotByIDFn func(ctx context.Context, id string) (*docindex.Snapshot, error)
	FindSnapshotsFn    func(ctx context.Context, filter docindex.SnapshotFilter) ([]*docindex.Snapshot, error)
	DeleteSnapshotFn   func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *docindex.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*docindex.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter docindex.SnapshotFilter) ([]*docindex.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}

var _ docindex.NodeService = (*NodeService)(nil)

// NodeService is a mock implementation of docindex.NodeService.
type NodeService struct {
	FindNodesFn func(ctx context.Context, filter docindex.NodeFilter) ([]*docindex.NodeRecord, error)
}

func (s *NodeService) FindNodes(ctx context.Context, filter docindex.NodeFilter) ([]*docindex.NodeRecord, error) {
	return s.FindNodesFn(ctx, filter)
}
