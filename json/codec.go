// Package json reads and writes indexes in their JSON form, keeping the
// order of every mapping.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docindex"
)

// Ensure Codec implements docindex.Decoder and docindex.Encoder at compile time.
var (
	_ docindex.Decoder = (*Codec)(nil)
	_ docindex.Encoder = (*Codec)(nil)
)

// DefaultIndent is the indentation used by NewCodec.
const DefaultIndent = "  "

// Codec decodes and encodes JSON indexes.
type Codec struct {
	indent string
}

// Option configures a Codec.
type Option func(*Codec)

// WithIndent sets the indentation of encoded output.
// An empty indent produces compact single-line output.
func WithIndent(indent string) Option {
	return func(c *Codec) {
		c.indent = indent
	}
}

// NewCodec creates a new Codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{indent: DefaultIndent}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses data into an Index.
func (c *Codec) Decode(data []byte) (*docindex.Index, error) {
	obj, err := DecodeObject(data)
	if err != nil {
		return nil, err
	}
	return docindex.Parse(obj)
}

// DecodeObject reads a JSON object into an ordered docindex.Object.
// Duplicate keys are kept so that Parse can report them. Input that is not
// valid UTF-8 is rejected rather than decoded with replacement characters.
func DecodeObject(data []byte) (docindex.Object, error) {
	if !utf8.Valid(data) {
		return nil, docindex.Errorf(docindex.EMALFORMED, "index is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, docindex.Errorf(docindex.EMALFORMED, "index must be a JSON object")
	}

	obj, err := readObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, docindex.Errorf(docindex.EMALFORMED, "unexpected data after index at offset %d", dec.InputOffset())
	}
	return obj, nil
}

func readObject(dec *json.Decoder) (docindex.Object, error) {
	obj := docindex.Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxError(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, docindex.Errorf(docindex.EMALFORMED, "object key expected at offset %d", dec.InputOffset())
		}

		value, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, docindex.Field{Key: key, Value: value})
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, syntaxError(err)
	}
	return obj, nil
}

func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError(err)
	}

	switch tok {
	case json.Delim('{'):
		return readObject(dec)
	case json.Delim('['):
		arr := []any{}
		for dec.More() {
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, syntaxError(err)
		}
		return arr, nil
	}
	return tok, nil
}

func syntaxError(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return docindex.Errorf(docindex.EMALFORMED, "invalid JSON at offset %d: %s", se.Offset, se.Error())
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return docindex.Errorf(docindex.EMALFORMED, "invalid JSON: unexpected end of input")
	}
	return docindex.Errorf(docindex.EMALFORMED, "invalid JSON: %s", err)
}

// Encode writes idx as JSON, followed by a newline.
func (c *Codec) Encode(w io.Writer, idx *docindex.Index) error {
	var buf bytes.Buffer
	if err := c.writeValue(&buf, idx.Object(), 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (c *Codec) writeValue(buf *bytes.Buffer, v any, depth int) error {
	switch v := v.(type) {
	case docindex.Object:
		if len(v) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, f := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			c.newline(buf, depth+1)
			if err := writeScalar(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if c.indent != "" {
				buf.WriteByte(' ')
			}
			if err := c.writeValue(buf, f.Value, depth+1); err != nil {
				return err
			}
		}
		c.newline(buf, depth)
		buf.WriteByte('}')
	case []any:
		// Sequences only hold scalars in an index, so they stay on one line.
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := c.writeValue(buf, item, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, v)
	}
	return nil
}

func (c *Codec) newline(buf *bytes.Buffer, depth int) {
	if c.indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(c.indent, depth))
}

func writeScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %v: %w", v, err)
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
