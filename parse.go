package docindex

import (
	"fmt"
	"strings"
)

// Reserved top-level keys that cannot be used as language codes.
const (
	keyLanguages = "languages"
	keyCategory  = "category"
)

// Parse builds an Index from its declarative shape.
//
// Any structural problem yields an EMALFORMED error naming the offending
// location, and no partial index is returned. Top-level keys other than
// "languages", "category" and the declared language codes are ignored.
func Parse(obj Object) (*Index, error) {
	top, err := fields(obj, "index")
	if err != nil {
		return nil, err
	}

	codes, err := parseLanguages(top)
	if err != nil {
		return nil, err
	}

	idx := &Index{byCode: make(map[string]*Language, len(codes))}

	if v, ok := top[keyCategory]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, malformed("category", "must be a string")
		}
		idx.category = s
	}

	for _, code := range codes {
		v, ok := top[code]
		if !ok {
			return nil, malformed(code, "declared language has no section")
		}
		l, err := parseLanguage(code, v)
		if err != nil {
			return nil, err
		}
		idx.languages = append(idx.languages, l)
		idx.byCode[code] = l
	}

	return idx, nil
}

func parseLanguages(top map[string]any) ([]string, error) {
	v, ok := top[keyLanguages]
	if !ok {
		return nil, malformed(keyLanguages, "required")
	}

	var raw []any
	switch v := v.(type) {
	case []any:
		raw = v
	case []string:
		for _, s := range v {
			raw = append(raw, s)
		}
	default:
		return nil, malformed(keyLanguages, "must be a sequence")
	}
	if len(raw) == 0 {
		return nil, malformed(keyLanguages, "must not be empty")
	}

	codes := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		loc := fmt.Sprintf("%s[%d]", keyLanguages, i)
		code, ok := item.(string)
		if !ok || code == "" {
			return nil, malformed(loc, "must be a non-empty string")
		}
		if code == keyLanguages || code == keyCategory {
			return nil, malformed(loc, "language code %q is reserved", code)
		}
		if seen[code] {
			return nil, malformed(loc, "duplicate language %q", code)
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes, nil
}

func parseLanguage(code string, v any) (*Language, error) {
	obj, ok := v.(Object)
	if !ok {
		return nil, malformed(code, "language section must be a mapping")
	}
	m, err := fields(obj, code)
	if err != nil {
		return nil, err
	}

	l := &Language{code: code}
	for key, v := range m {
		loc := code + "." + key
		switch key {
		case "title":
			if l.title, ok = v.(string); !ok {
				return nil, malformed(loc, "must be a string")
			}
		case "description":
			if l.description, ok = v.(string); !ok {
				return nil, malformed(loc, "must be a string")
			}
		case "contents":
		default:
			return nil, malformed(loc, "unexpected attribute")
		}
	}

	l.contents = newContents()
	if v, ok := m["contents"]; ok {
		p := &treeParser{paths: make(map[string]bool)}
		if l.contents, err = p.contents(v, code+".contents", ""); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// treeParser parses the nested contents of one language. It tracks every
// composed path so that two nodes never resolve to the same lookup path.
type treeParser struct {
	paths map[string]bool
}

func (p *treeParser) contents(v any, loc, parent string) (*Contents, error) {
	obj, ok := v.(Object)
	if !ok {
		return nil, malformed(loc, "contents must be a mapping")
	}

	c := newContents()
	for _, f := range obj {
		nodeLoc := fmt.Sprintf("%s[%q]", loc, f.Key)
		if err := validateKey(f.Key); err != nil {
			return nil, malformed(nodeLoc, "%s", err)
		}

		path := joinPath(parent, f.Key)
		if _, dup := c.Get(f.Key); !dup && p.paths[path] {
			return nil, malformed(nodeLoc, "path %q is already used by another entry", path)
		}

		n, err := p.node(f.Key, f.Value, nodeLoc, path)
		if err != nil {
			return nil, err
		}
		if !c.add(n) {
			return nil, malformed(nodeLoc, "duplicate key")
		}
		p.paths[path] = true
	}
	return c, nil
}

func (p *treeParser) node(key string, v any, loc, path string) (*Node, error) {
	obj, ok := v.(Object)
	if !ok {
		return nil, malformed(loc, "entry must be a mapping")
	}
	m, err := fields(obj, loc)
	if err != nil {
		return nil, err
	}

	for k := range m {
		if k != "title" && k != "contents" {
			return nil, malformed(loc, "unexpected attribute %q", k)
		}
	}

	title, ok := m["title"].(string)
	if !ok {
		return nil, malformed(loc, "title must be a string")
	}

	n := &Node{key: key, title: title}
	if v, ok := m["contents"]; ok {
		if n.contents, err = p.contents(v, loc+".contents", path); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// fields indexes obj by key, rejecting duplicates.
func fields(obj Object, loc string) (map[string]any, error) {
	m := make(map[string]any, len(obj))
	for _, f := range obj {
		if _, ok := m[f.Key]; ok {
			return nil, malformed(loc, "duplicate key %q", f.Key)
		}
		m[f.Key] = f.Value
	}
	return m, nil
}

// validateKey rejects keys that cannot be composed into a lookup path.
func validateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("key must not be empty")
	case strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/"):
		return fmt.Errorf("key must not start or end with a slash")
	case strings.Contains(key, "//"):
		return fmt.Errorf("key must not contain an empty path segment")
	}
	return nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}

func malformed(loc, format string, args ...any) *Error {
	return Errorf(EMALFORMED, "%s: %s", loc, fmt.Sprintf(format, args...))
}
