package docindex

// Field is a single key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is an ordered mapping in the declarative shape of an index, as
// produced by the format decoders. Values are string, float64, bool, nil,
// []any or Object.
//
// Because an Object is a sequence of pairs it can carry duplicate keys;
// Parse rejects them.
type Object []Field

// Get returns the value of the first field named key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}
