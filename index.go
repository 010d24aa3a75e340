package docindex

// Index is a parsed, language-partitioned table of contents. An Index is
// built once by Parse and is read-only afterwards, so it may be shared
// between goroutines without synchronization.
type Index struct {
	category  string
	languages []*Language
	byCode    map[string]*Language
}

// Category returns the optional category of the manual.
func (idx *Index) Category() string { return idx.category }

// Languages returns the declared language codes in order.
func (idx *Index) Languages() []string {
	codes := make([]string, len(idx.languages))
	for i, l := range idx.languages {
		codes[i] = l.code
	}
	return codes
}

// Language returns the section for a declared language code.
func (idx *Index) Language(code string) (*Language, bool) {
	l, ok := idx.byCode[code]
	return l, ok
}

// Language is the table of contents for one language.
type Language struct {
	code        string
	title       string
	description string
	contents    *Contents
}

// Code returns the language code (e.g. "en").
func (l *Language) Code() string { return l.code }

// Title returns the manual title in this language, possibly empty.
func (l *Language) Title() string { return l.title }

// Description returns the manual description in this language, possibly empty.
func (l *Language) Description() string { return l.description }

// Contents returns the top-level entries. It is never nil.
func (l *Language) Contents() *Contents { return l.contents }

// Stats summarizes the shape of one language tree.
type Stats struct {
	Sections int `json:"sections"`
	Leaves   int `json:"leaves"`
	MaxDepth int `json:"maxDepth"`
}

// Stats counts sections and leaves of a language. Depth is 1 for
// top-level entries and 0 for an empty tree.
func (idx *Index) Stats(lang string) Stats {
	var s Stats
	for e := range idx.Entries(lang) {
		if e.Node.IsSection() {
			s.Sections++
		} else {
			s.Leaves++
		}
		s.MaxDepth = max(s.MaxDepth, e.Depth+1)
	}
	return s
}

// Object returns the declarative shape of the index. Parsing the result
// yields an Index equal to idx.
func (idx *Index) Object() Object {
	return idx.object(nil)
}

// Retitle returns a new Index in which language to mirrors the tree of
// language from, with titles replaced by titles[path] where present and
// non-empty. If to is not declared yet it is appended to the languages;
// otherwise its section is replaced.
func (idx *Index) Retitle(from, to, title, description string, titles map[string]string) (*Index, error) {
	src, ok := idx.Language(from)
	if !ok {
		return nil, Errorf(ENOTFOUND, "language %q not found", from)
	}
	if to == "" {
		return nil, Errorf(EINVALID, "target language required")
	}

	section := Object{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "contents", Value: contentsObject(src.contents, "", func(path string, n *Node) string {
			if t := titles[path]; t != "" {
				return t
			}
			return n.title
		})},
	}

	obj := idx.object(map[string]Object{to: section})
	if _, declared := idx.byCode[to]; !declared {
		langs, _ := obj.Get("languages")
		obj[0].Value = append(langs.([]any), to)
		obj = append(obj, Field{Key: to, Value: section})
	}
	return Parse(obj)
}

// object builds the declarative shape, substituting the sections in override.
func (idx *Index) object(override map[string]Object) Object {
	codes := make([]any, len(idx.languages))
	for i, l := range idx.languages {
		codes[i] = l.code
	}

	obj := Object{{Key: "languages", Value: codes}}
	if idx.category != "" {
		obj = append(obj, Field{Key: "category", Value: idx.category})
	}

	for _, l := range idx.languages {
		if section, ok := override[l.code]; ok {
			obj = append(obj, Field{Key: l.code, Value: section})
			continue
		}
		obj = append(obj, Field{Key: l.code, Value: Object{
			{Key: "title", Value: l.title},
			{Key: "description", Value: l.description},
			{Key: "contents", Value: contentsObject(l.contents, "", nil)},
		}})
	}
	return obj
}

// contentsObject converts c into its declarative shape. If title is not nil
// it supplies the title for each node given its path.
func contentsObject(c *Contents, parent string, title func(path string, n *Node) string) Object {
	obj := Object{}
	for key, n := range c.All() {
		path := joinPath(parent, key)

		t := n.title
		if title != nil {
			t = title(path, n)
		}

		node := Object{{Key: "title", Value: t}}
		if n.IsSection() {
			node = append(node, Field{Key: "contents", Value: contentsObject(n.contents, path, title)})
		}
		obj = append(obj, Field{Key: key, Value: node})
	}
	return obj
}
