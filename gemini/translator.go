// Package gemini translates index titles with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docindex"
	"google.golang.org/genai"
)

// Model is the Gemini model used for translation and token counting.
const Model = "gemini-2.5-flash"

// Defaults for batching titles into prompts.
const (
	DefaultBatchSize       = 200
	DefaultMaxPromptTokens = 8000
)

// Generator produces a text response for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientGenerator implements Generator with a Gemini client. Responses are
// constrained to a JSON array of strings.
type ClientGenerator struct {
	client *genai.Client
	model  string
}

// NewClientGenerator creates a generator for the given client and model.
func NewClientGenerator(client *genai.Client, model string) *ClientGenerator {
	if model == "" {
		model = Model
	}
	return &ClientGenerator{client: client, model: model}
}

// Generate sends prompt to Gemini and returns the response text.
func (g *ClientGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docindex.Errorf(docindex.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for translation calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You translate the titles of a software manual's table of contents. Keep product names, code identifiers and file names unchanged. Answer with a JSON array of strings only.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	}
}

// Ensure Translator implements docindex.Translator at compile time.
var _ docindex.Translator = (*Translator)(nil)

// Translator implements docindex.Translator by asking a Generator to
// translate titles in batches.
type Translator struct {
	gen    Generator
	tokens docindex.TokenCounter

	// BatchSize is the largest number of titles sent in one prompt.
	BatchSize int

	// MaxPromptTokens bounds the size of a prompt. Batches over the bound
	// are split. Ignored without a TokenCounter.
	MaxPromptTokens int
}

// NewTranslator creates a new Translator. tokens may be nil.
func NewTranslator(gen Generator, tokens docindex.TokenCounter) *Translator {
	return &Translator{
		gen:             gen,
		tokens:          tokens,
		BatchSize:       DefaultBatchSize,
		MaxPromptTokens: DefaultMaxPromptTokens,
	}
}

// item is one translatable title. An empty path stands for the language
// title or description.
type item struct {
	path string
	text string
}

// Translate returns idx with language to holding the tree of from with
// translated titles. Empty titles stay empty.
func (t *Translator) Translate(ctx context.Context, idx *docindex.Index, from, to string) (*docindex.Index, error) {
	src, ok := idx.Language(from)
	if !ok {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "language %q not found", from)
	}
	if to == "" || to == from {
		return nil, docindex.Errorf(docindex.EINVALID, "target language must differ from %q", from)
	}

	items := []item{{text: src.Title()}, {text: src.Description()}}
	for p, n := range idx.Walk(from) {
		items = append(items, item{path: p, text: n.Title()})
	}

	var pending []int
	for i, it := range items {
		if strings.TrimSpace(it.text) != "" {
			pending = append(pending, i)
		}
	}

	translated := make([]string, len(items))
	size := t.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	for start := 0; start < len(pending); start += size {
		batch := pending[start:min(start+size, len(pending))]
		if err := t.translateBatch(ctx, from, to, items, batch, translated); err != nil {
			return nil, err
		}
	}

	titles := make(map[string]string)
	for i, it := range items[2:] {
		titles[it.path] = translated[i+2]
	}
	return idx.Retitle(from, to, translated[0], translated[1], titles)
}

// translateBatch translates the items at the given positions, splitting the
// batch while its prompt exceeds the token bound.
func (t *Translator) translateBatch(ctx context.Context, from, to string, items []item, batch []int, out []string) error {
	texts := make([]string, len(batch))
	for i, pos := range batch {
		texts[i] = items[pos].text
	}
	prompt := BuildPrompt(from, to, texts)

	if t.tokens != nil && t.MaxPromptTokens > 0 {
		n, err := t.tokens.CountTokens(ctx, prompt)
		if err != nil {
			return err
		}
		if n > t.MaxPromptTokens {
			if len(batch) == 1 {
				return docindex.Errorf(docindex.EINVALID, "title at %q exceeds the prompt limit of %d tokens", items[batch[0]].path, t.MaxPromptTokens)
			}
			half := len(batch) / 2
			if err := t.translateBatch(ctx, from, to, items, batch[:half], out); err != nil {
				return err
			}
			return t.translateBatch(ctx, from, to, items, batch[half:], out)
		}
	}

	resp, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("translate titles: %w", err)
	}
	result, err := ParseTitles(resp, len(batch))
	if err != nil {
		return err
	}
	for i, pos := range batch {
		out[pos] = result[i]
	}
	return nil
}

// BuildPrompt builds the prompt asking for titles to be translated from one
// language to another.
func BuildPrompt(from, to string, titles []string) string {
	data, _ := json.Marshal(titles)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate each title in the JSON array below from language %q to language %q.\n", from, to)
	fmt.Fprintf(&sb, "Return a JSON array with exactly %d strings in the same order.\n\n", len(titles))
	sb.Write(data)
	return sb.String()
}

// ParseTitles decodes a response holding a JSON array of n strings. A
// surrounding markdown code fence is tolerated.
func ParseTitles(resp string, n int) ([]string, error) {
	text := strings.TrimSpace(resp)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var titles []string
	if err := json.Unmarshal([]byte(text), &titles); err != nil {
		return nil, docindex.Errorf(docindex.EINTERNAL, "translation response is not a JSON array of strings")
	}
	if len(titles) != n {
		return nil, docindex.Errorf(docindex.EINTERNAL, "translation response has %d titles, want %d", len(titles), n)
	}
	for i := range titles {
		titles[i] = strings.TrimSpace(titles[i])
	}
	return titles, nil
}
