// Package sad provides the insertion-ordered mapping that self-addressing
// data (SAD) is computed over.
//
// Key order is identity-bearing: the SAID digest is taken over serialized
// bytes, and two mappings with the same entries in different order produce
// different digests. Map therefore preserves insertion order through
// cloning, mutation, and every serialization kind, which a plain Go map
// cannot guarantee.
package sad

// Pair is a single key/value entry used to construct a Map literally.
type Pair struct {
	Key string
	Val any
}

// Map is an associative structure with unique string keys and stable
// insertion order. The zero value is not usable; use New or FromPairs.
type Map struct {
	keys []string
	vals map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{vals: make(map[string]any)}
}

// FromPairs builds a Map whose iteration order is the order of pairs.
// A repeated key keeps its first position and takes the last value.
func FromPairs(pairs ...Pair) *Map {
	m := New()
	for _, p := range pairs {
		m.Set(p.Key, p.Val)
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.vals == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores val under key. A new key is appended at the end; an
// existing key keeps its position and only its value changes.
func (m *Map) Set(key string, val any) {
	if m.vals == nil {
		m.vals = make(map[string]any)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
}

// Clone returns a deep copy: nested *Map values and []any slices are
// copied recursively, scalar values are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys: append([]string(nil), m.keys...),
		vals: make(map[string]any, len(m.vals)),
	}
	for k, v := range m.vals {
		out.vals[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
