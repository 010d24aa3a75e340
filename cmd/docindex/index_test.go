package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docindex"
	main "github.com/fwojciec/docindex/cmd/docindex"
	"github.com/fwojciec/docindex/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stats per language", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		require.NoError(t, (&main.ValidateCmd{File: fixture}).Run(deps))

		assert.Equal(t, fixture+": ok\n"+
			"  en: 3 sections, 5 leaves, depth 3\n"+
			"  jp: 0 sections, 0 leaves, depth 0\n", stdout.String())
	})

	t.Run("accepts YAML", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "index.yaml", "languages: [en]\nen:\n  contents:\n    intro.wiki: {title: Intro}\n")
		deps, stdout, _ := newDeps()
		require.NoError(t, (&main.ValidateCmd{File: path}).Run(deps))
		assert.Contains(t, stdout.String(), "en: 0 sections, 1 leaves, depth 1")
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		err := (&main.ValidateCmd{File: filepath.Join(t.TempDir(), "none.json")}).Run(deps)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})

	t.Run("reports duplicate keys", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "index.json", `{"languages": ["en"], "en": {"contents": {"a": {"title": "A"}, "a": {"title": "B"}}}}`)
		deps, _, stderr := newDeps()
		err := (&main.ValidateCmd{File: path}).Run(deps)
		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "duplicate key")
	})
}

func TestTreeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints all languages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		require.NoError(t, (&main.TreeCmd{File: fixture}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "[en]\n00_quickstart/  Quickstart\n  00_quickstart/blog.wiki  The Blog Tutorial\n")
		assert.Contains(t, output, "\n[jp]\n")
	})

	t.Run("rejects undeclared language", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		err := (&main.TreeCmd{File: fixture, Lang: "fr"}).Run(deps)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	})
}

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints leaf", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		cmd := &main.LookupCmd{File: fixture, Lang: "en", Path: "00_quickstart/00_quickstart/blog.wiki"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "leaf\t00_quickstart/blog.wiki\tThe Blog Tutorial\n", stdout.String())
	})

	t.Run("prints section with children", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		cmd := &main.LookupCmd{File: fixture, Lang: "en", Path: "10_models"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "section\t10_models\tModels\n"+
			"  leaf\t10_models/00_overview.wiki\tModel Overview\n"+
			"  section\t10_models/10_datasources\tData Sources\n", stdout.String())
	})

	t.Run("reports missing path", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		cmd := &main.LookupCmd{File: fixture, Lang: "en", Path: "00_quickstart/blog.wiki"}
		err := cmd.Run(deps)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), `no entry at "00_quickstart/blog.wiki"`)
	})
}

func TestFormatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes YAML output file that parses back", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "index.yaml")
		deps, _, stderr := newDeps()
		require.NoError(t, (&main.FormatCmd{File: fixture, Output: output}).Run(deps))
		assert.Contains(t, stderr.String(), "Wrote "+output)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "languages: [en, jp]")

		idx, err := yaml.NewCodec().Decode(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "jp"}, idx.Languages())
		assert.Equal(t, 5, idx.Stats("en").Leaves)
	})

	t.Run("writes JSON to stdout", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		require.NoError(t, (&main.FormatCmd{File: fixture}).Run(deps))
		assert.Contains(t, stdout.String(), `"languages": ["en", "jp"]`)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		err := (&main.FormatCmd{File: fixture, To: "toml"}).Run(deps)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}
