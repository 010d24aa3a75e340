package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docindex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docindex.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements docindex.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// HashIndex computes an xxHash over the canonical traversal of idx and
// returns it as a hex string. Indexes that are equal in content and order
// hash equally.
func HashIndex(idx *docindex.Index) string {
	d := xxhash.New()
	write := func(fields ...string) {
		for _, f := range fields {
			_, _ = d.WriteString(f)
			_, _ = d.WriteString("\x00")
		}
		_, _ = d.WriteString("\n")
	}

	write("category", idx.Category())
	for _, code := range idx.Languages() {
		l, _ := idx.Language(code)
		write("language", code, l.Title(), l.Description())
		for e := range idx.Entries(code) {
			write(e.Node.Kind().String(), fmt.Sprint(e.Depth), e.Node.Key(), e.Node.Title())
		}
	}
	return hex.EncodeToString(d.Sum(nil))
}

// CreateSnapshot stores the snapshot and all of its nodes in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *docindex.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	snapshot.CreatedAt = time.Now().UTC()
	snapshot.ContentHash = HashIndex(snapshot.Index)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, source, category, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.Name, snapshot.Source, snapshot.Index.Category(), snapshot.ContentHash,
		snapshot.CreatedAt.Format(timeFormat)); err != nil {
		return err
	}

	if err := insertTree(ctx, tx, snapshot.ID, snapshot.Index); err != nil {
		return err
	}

	return tx.Commit()
}

func insertTree(ctx context.Context, tx *sql.Tx, snapshotID string, idx *docindex.Index) error {
	langStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO languages (snapshot_id, code, position, title, description)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer langStmt.Close()

	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (snapshot_id, language, seq, path, parent, key, title, kind, depth, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	seq := 0
	for i, code := range idx.Languages() {
		l, _ := idx.Language(code)
		if _, err := langStmt.ExecContext(ctx, snapshotID, code, i, l.Title(), l.Description()); err != nil {
			return err
		}

		for e := range idx.Entries(code) {
			if _, err := nodeStmt.ExecContext(ctx, snapshotID, code, seq, e.Path, e.Parent, e.Node.Key(),
				e.Node.Title(), e.Node.Kind().String(), e.Depth, e.Position); err != nil {
				return err
			}
			seq++
		}
	}
	return nil
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*docindex.Snapshot, error) {
	snapshots, err := s.FindSnapshots(ctx, docindex.SnapshotFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "snapshot not found")
	}
	return snapshots[0], nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter docindex.SnapshotFilter) ([]*docindex.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source, category, content_hash, created_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	type row struct {
		snapshot *docindex.Snapshot
		category string
	}
	var found []row
	for rows.Next() {
		var snapshot docindex.Snapshot
		var category, createdAt string

		if err := rows.Scan(&snapshot.ID, &snapshot.Name, &snapshot.Source, &category,
			&snapshot.ContentHash, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}

		if snapshot.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			rows.Close()
			return nil, err
		}
		found = append(found, row{snapshot: &snapshot, category: category})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The connection pool holds a single connection, so rows must be
	// released before the trees are loaded.
	rows.Close()

	snapshots := make([]*docindex.Snapshot, 0, len(found))
	for _, r := range found {
		idx, err := s.loadIndex(ctx, r.snapshot.ID, r.category)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot %s: %w", r.snapshot.ID, err)
		}
		r.snapshot.Index = idx
		snapshots = append(snapshots, r.snapshot)
	}

	return snapshots, nil
}

// DeleteSnapshot permanently removes a snapshot.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docindex.Errorf(docindex.ENOTFOUND, "snapshot not found")
	}

	return nil
}

// storedNode is a node rebuilt from its row.
type storedNode struct {
	key      string
	title    string
	section  bool
	children []*storedNode
}

// loadIndex rebuilds the declarative shape of a snapshot from its rows and
// parses it again, so a stored index passes the same validation as a file.
func (s *SnapshotService) loadIndex(ctx context.Context, snapshotID, category string) (*docindex.Index, error) {
	type language struct {
		code, title, description string
		roots                    []*storedNode
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, title, description FROM languages
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snapshotID)
	if err != nil {
		return nil, err
	}

	var langs []*language
	byCode := make(map[string]*language)
	for rows.Next() {
		l := &language{}
		if err := rows.Scan(&l.code, &l.title, &l.description); err != nil {
			rows.Close()
			return nil, err
		}
		langs = append(langs, l)
		byCode[l.code] = l
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `
		SELECT language, path, parent, key, title, kind FROM nodes
		WHERE snapshot_id = ?
		ORDER BY seq ASC
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPath := make(map[[2]string]*storedNode)
	for rows.Next() {
		var lang, path, parent, kind string
		n := &storedNode{}
		if err := rows.Scan(&lang, &path, &parent, &n.key, &n.title, &kind); err != nil {
			return nil, err
		}
		n.section = kind == docindex.KindSection.String()

		l, ok := byCode[lang]
		if !ok {
			return nil, fmt.Errorf("node %q references unknown language %q", path, lang)
		}
		if parent == "" {
			l.roots = append(l.roots, n)
		} else {
			p, ok := byPath[[2]string{lang, parent}]
			if !ok {
				return nil, fmt.Errorf("node %q references unknown parent %q", path, parent)
			}
			p.children = append(p.children, n)
		}
		byPath[[2]string{lang, path}] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	codes := make([]any, len(langs))
	for i, l := range langs {
		codes[i] = l.code
	}
	obj := docindex.Object{{Key: "languages", Value: codes}}
	if category != "" {
		obj = append(obj, docindex.Field{Key: "category", Value: category})
	}
	for _, l := range langs {
		obj = append(obj, docindex.Field{Key: l.code, Value: docindex.Object{
			{Key: "title", Value: l.title},
			{Key: "description", Value: l.description},
			{Key: "contents", Value: storedContents(l.roots)},
		}})
	}

	return docindex.Parse(obj)
}

func storedContents(nodes []*storedNode) docindex.Object {
	obj := docindex.Object{}
	for _, n := range nodes {
		node := docindex.Object{{Key: "title", Value: n.title}}
		if n.section {
			node = append(node, docindex.Field{Key: "contents", Value: storedContents(n.children)})
		}
		obj = append(obj, docindex.Field{Key: n.key, Value: node})
	}
	return obj
}
