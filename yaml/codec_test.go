package yaml_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/json"
	"github.com/fwojciec/docindex/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manual = `languages: [en, jp]
category: manual
en:
  title: Framework Manual
  description: ""
  contents:
    00_quickstart:
      title: Quickstart
      contents:
        00_quickstart/blog.wiki:
          title: The Blog Tutorial
    10_models/overview.wiki:
      title: Models
jp:
  title: ""
  description: ""
  contents: {}
`

func TestCodec_Decode(t *testing.T) {
	t.Parallel()

	t.Run("decodes manual preserving order", func(t *testing.T) {
		t.Parallel()

		idx, err := yaml.NewCodec().Decode([]byte(manual))
		require.NoError(t, err)

		assert.Equal(t, []string{"en", "jp"}, idx.Languages())

		var paths []string
		for path := range idx.Walk("en") {
			paths = append(paths, path)
		}
		assert.Equal(t, []string{"00_quickstart", "00_quickstart/00_quickstart/blog.wiki", "10_models/overview.wiki"}, paths)
	})

	t.Run("matches the JSON form", func(t *testing.T) {
		t.Parallel()

		fromYAML, err := yaml.NewCodec().Decode([]byte(manual))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, json.NewCodec().Encode(&buf, fromYAML))

		fromJSON, err := json.NewCodec().Decode(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, fromYAML, fromJSON)
	})

	t.Run("resolves anchors", func(t *testing.T) {
		t.Parallel()

		doc := "languages: [en]\nen:\n  contents:\n    a: &page\n      title: Shared\n    b: *page\n"

		idx, err := yaml.NewCodec().Decode([]byte(doc))
		require.NoError(t, err)

		n, ok := idx.Lookup("en", "b")
		require.True(t, ok)
		assert.Equal(t, "Shared", n.Title())
	})

	t.Run("rejects recursive anchors", func(t *testing.T) {
		t.Parallel()

		doc := "languages: [en]\nen: &x\n  title: a\n  contents:\n    s: {title: s, contents: *x}\n"

		_, err := yaml.NewCodec().Decode([]byte(doc))
		require.Error(t, err)
		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
		assert.Contains(t, docindex.ErrorMessage(err), "recursive alias")
	})

	t.Run("rejects documents that expand without bound", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("languages: [en]\n")
		sb.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
		for i := 1; i <= 8; i++ {
			fmt.Fprintf(&sb, "l%d: &l%d [", i, i)
			for j := 0; j < 10; j++ {
				if j > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "*l%d", i-1)
			}
			sb.WriteString("]\n")
		}
		sb.WriteString("en: {title: a}\n")

		_, err := yaml.NewCodec().Decode([]byte(sb.String()))
		require.Error(t, err)
		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
		assert.Contains(t, docindex.ErrorMessage(err), "more than")
	})

	t.Run("rejects duplicate keys", func(t *testing.T) {
		t.Parallel()

		doc := "languages: [en]\nen:\n  contents:\n    a:\n      title: A\n    a:\n      title: B\n"

		_, err := yaml.NewCodec().Decode([]byte(doc))
		require.Error(t, err)
		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
	})

	t.Run("rejects non-mapping documents", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{"", "- en\n", "just text\n", "languages: [en\n"} {
			_, err := yaml.NewCodec().Decode([]byte(doc))
			require.Error(t, err, "doc %q", doc)
			assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err), "doc %q", doc)
		}
	})
}

func TestCodec_Encode(t *testing.T) {
	t.Parallel()

	codec := yaml.NewCodec()
	idx, err := codec.Decode([]byte(manual))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, idx))

	again, err := codec.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, idx, again)
	assert.Contains(t, buf.String(), "languages: [en, jp]\n")
}
