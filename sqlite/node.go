package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/docindex"
)

// Compile-time interface verification.
var _ docindex.NodeService = (*NodeService)(nil)

// NodeService implements docindex.NodeService using SQLite.
type NodeService struct {
	db *DB
}

// NewNodeService creates a new NodeService.
func NewNodeService(db *DB) *NodeService {
	return &NodeService{db: db}
}

// FindNodes retrieves stored nodes matching the filter in traversal order.
func (s *NodeService) FindNodes(ctx context.Context, filter docindex.NodeFilter) ([]*docindex.NodeRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT snapshot_id, language, path, parent, key, title, kind, depth, position FROM nodes WHERE 1=1")

	if filter.SnapshotID != nil {
		query.WriteString(" AND snapshot_id = ?")
		args = append(args, *filter.SnapshotID)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, filter.Kind.String())
	}
	if filter.Title != nil {
		query.WriteString(` AND title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(*filter.Title)+"%")
	}

	query.WriteString(" ORDER BY snapshot_id, seq ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*docindex.NodeRecord
	for rows.Next() {
		var n docindex.NodeRecord
		var kind string
		if err := rows.Scan(&n.SnapshotID, &n.Language, &n.Path, &n.Parent, &n.Key, &n.Title,
			&kind, &n.Depth, &n.Position); err != nil {
			return nil, err
		}
		if kind == docindex.KindSection.String() {
			n.Kind = docindex.KindSection
		}
		nodes = append(nodes, &n)
	}

	return nodes, rows.Err()
}
