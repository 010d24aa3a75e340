// Package docindex provides a CLI-based toolkit for documentation
// tables of contents. A manual is described by a declarative,
// language-partitioned index (index.json) whose nested entries are either
// pages (leaves) or sections. The toolkit parses and validates the index,
// walks and looks it up, renders menus and sitemaps, checks that pages and
// published URLs exist, and keeps named snapshots in a local database.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goldmark/, gemini/).
package docindex
