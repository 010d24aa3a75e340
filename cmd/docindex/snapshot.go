package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/json"
	"github.com/fwojciec/docindex/sqlite"
)

// latestSnapshot returns the newest snapshot named name.
func latestSnapshot(deps *Dependencies, name string) (*docindex.Snapshot, error) {
	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, docindex.SnapshotFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "snapshot %q not found. Use 'docindex list' to see stored snapshots.", name)
	}
	return snapshots[0], nil
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	hash := sqlite.HashIndex(idx)
	existing, err := deps.Snapshots.FindSnapshots(deps.Ctx, docindex.SnapshotFilter{Name: &c.Name, Limit: 1})
	if err != nil {
		return printError(deps, err)
	}
	if len(existing) > 0 && existing[0].ContentHash == hash {
		fmt.Fprintf(deps.Stdout, "Snapshot %q is unchanged (%s), skipped\n", c.Name, existing[0].ID)
		return nil
	}

	source := c.File
	if !isRemote(source) {
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
	}

	snapshot := &docindex.Snapshot{
		Name:   c.Name,
		Source: source,
		Index:  idx,
	}
	if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
		return printError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Imported %q as %s\n", c.Name, snapshot.ID)
	return nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := docindex.SnapshotFilter{}
	if c.Name != "" {
		filter.Name = &c.Name
	}

	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		return printError(deps, err)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'docindex import' to store one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.CreatedAt.Local().Format(time.DateTime), s.ContentHash, s.Source)
	}
	return tw.Flush()
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	snapshot, err := latestSnapshot(deps, c.Name)
	if err != nil {
		return printError(deps, err)
	}
	idx := snapshot.Index

	if c.Raw {
		if err := json.NewCodec().Encode(deps.Stdout, idx); err != nil {
			return printError(deps, err)
		}
		return nil
	}

	langs := idx.Languages()
	if c.Lang != "" {
		if _, ok := idx.Language(c.Lang); !ok {
			return printError(deps, docindex.Errorf(docindex.ENOTFOUND, "language %q not found", c.Lang))
		}
		langs = []string{c.Lang}
	}

	fmt.Fprintf(deps.Stdout, "%s (%s, %s)\n", snapshot.Name, snapshot.ID, snapshot.CreatedAt.Local().Format(time.DateTime))
	for _, code := range langs {
		fmt.Fprintf(deps.Stdout, "\n[%s]\n", code)
		fmt.Fprint(deps.Stdout, docindex.FormatTree(idx, code))
	}
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter := docindex.NodeFilter{Title: &c.Query, Limit: c.Limit}
	if c.Lang != "" {
		filter.Language = &c.Lang
	}
	switch c.Kind {
	case "":
	case "leaf", "section":
		kind := docindex.KindLeaf
		if c.Kind == "section" {
			kind = docindex.KindSection
		}
		filter.Kind = &kind
	default:
		return printError(deps, docindex.Errorf(docindex.EINVALID, "unknown kind %q (want leaf or section)", c.Kind))
	}

	snapshot, err := latestSnapshot(deps, c.Name)
	if err != nil {
		return printError(deps, err)
	}
	filter.SnapshotID = &snapshot.ID

	nodes, err := deps.Nodes.FindNodes(deps.Ctx, filter)
	if err != nil {
		return printError(deps, err)
	}

	if len(nodes) == 0 {
		fmt.Fprintf(deps.Stdout, "No entries matching %q.\n", c.Query)
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, n := range nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.Language, n.Kind, n.Path, n.Title)
	}
	return tw.Flush()
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docindex.Errorf(docindex.EINVALID, "use --force to confirm deletion")
	}

	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, docindex.SnapshotFilter{Name: &c.Name})
	if err != nil {
		return printError(deps, err)
	}
	if len(snapshots) == 0 {
		return printError(deps, docindex.Errorf(docindex.ENOTFOUND, "snapshot %q not found. Use 'docindex list' to see stored snapshots.", c.Name))
	}

	for _, s := range snapshots {
		if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, s.ID); err != nil {
			return printError(deps, err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d snapshot(s) of %q\n", len(snapshots), c.Name)
	return nil
}
