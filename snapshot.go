package docindex

import (
	"context"
	"time"
)

// Snapshot is a named copy of an index kept in storage.
type Snapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`

	Index *Index `json:"-"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "snapshot name required")
	}
	if s.Index == nil {
		return Errorf(EINVALID, "snapshot index required")
	}
	return nil
}

// SnapshotService represents a service for managing snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot and sets its ID, hash and
	// creation time.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot by ID, including its index.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot and its nodes.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NodeRecord is a stored index node.
type NodeRecord struct {
	SnapshotID string `json:"snapshotId"`
	Language   string `json:"language"`
	Path       string `json:"path"`
	Parent     string `json:"parent"`
	Key        string `json:"key"`
	Title      string `json:"title"`
	Kind       Kind   `json:"kind"`
	Depth      int    `json:"depth"`
	Position   int    `json:"position"`
}

// NodeService searches stored nodes.
type NodeService interface {
	// FindNodes retrieves nodes matching the filter in traversal order.
	FindNodes(ctx context.Context, filter NodeFilter) ([]*NodeRecord, error)
}

// NodeFilter represents a filter for FindNodes.
type NodeFilter struct {
	SnapshotID *string `json:"snapshotId"`
	Language   *string `json:"language"`
	Kind       *Kind   `json:"kind"`

	// Title matches titles containing the value, case-insensitively.
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
