package main

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/json"
	"github.com/fwojciec/docindex/yaml"
)

// codec pairs the decoder and encoder of one format.
type codec interface {
	docindex.Decoder
	docindex.Encoder
}

// codecFor returns the codec for format, or for the extension of location
// when format is empty. JSON is the default.
func codecFor(format, location string) (codec, error) {
	if format == "" {
		format = formatOf(location)
	}

	switch format {
	case "json":
		return json.NewCodec(), nil
	case "yaml":
		return yaml.NewCodec(), nil
	}
	return nil, docindex.Errorf(docindex.EINVALID, "unknown format %q (want json or yaml)", format)
}

// formatOf returns the format implied by the extension of a file path or
// URL.
func formatOf(location string) string {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// loadIndex loads and parses the index at location.
func loadIndex(deps *Dependencies, location string) (*docindex.Index, error) {
	loader := deps.Files
	if isRemote(location) {
		loader = deps.Remote
	}
	data, err := loader.Load(deps.Ctx, location)
	if err != nil {
		return nil, err
	}

	c, err := codecFor("", location)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// writeIndex encodes idx to output, or to stdout when output is empty.
func writeIndex(deps *Dependencies, idx *docindex.Index, output, format string) error {
	c, err := codecFor(format, output)
	if err != nil {
		return err
	}
	return writeOutput(deps, output, func(w io.Writer) error {
		return c.Encode(w, idx)
	})
}

// writeOutput calls write with stdout, or with a file that replaces output
// only once write succeeds.
func writeOutput(deps *Dependencies, output string, write func(w io.Writer) error) error {
	if output == "" {
		return write(deps.Stdout)
	}

	f, err := fs.CreateFile(output)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Abort()
		return err
	}
	if err := f.Commit(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", output)
	return nil
}

// printError reports err on stderr and returns it.
func printError(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
	return err
}

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "%s: ok\n", c.File)
	for _, code := range idx.Languages() {
		s := idx.Stats(code)
		fmt.Fprintf(deps.Stdout, "  %s: %d sections, %d leaves, depth %d\n", code, s.Sections, s.Leaves, s.MaxDepth)
	}
	return nil
}

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	if c.Lang != "" {
		if _, ok := idx.Language(c.Lang); !ok {
			return printError(deps, docindex.Errorf(docindex.ENOTFOUND, "language %q not found", c.Lang))
		}
		fmt.Fprint(deps.Stdout, docindex.FormatTree(idx, c.Lang))
		return nil
	}

	for i, code := range idx.Languages() {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "[%s]\n", code)
		fmt.Fprint(deps.Stdout, docindex.FormatTree(idx, code))
	}
	return nil
}

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}

	n, ok := idx.Lookup(c.Lang, c.Path)
	if !ok {
		return printError(deps, docindex.Errorf(docindex.ENOTFOUND, "no entry at %q in language %q", c.Path, c.Lang))
	}

	fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", n.Kind(), n.Key(), n.Title())
	for key, child := range n.Contents().All() {
		fmt.Fprintf(deps.Stdout, "  %s\t%s\t%s\n", child.Kind(), key, child.Title())
	}
	return nil
}

// Run executes the format command.
func (c *FormatCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps, c.File)
	if err != nil {
		return printError(deps, err)
	}
	if err := writeIndex(deps, idx, c.Output, c.To); err != nil {
		return printError(deps, err)
	}
	return nil
}
