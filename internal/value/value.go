package value

// Map is a string-keyed map that preserves insertion order. Converted XML
// documents rely on it so that JSON output mirrors document order.
//
// Scalar values stored in a Map (or List) are nil, bool, int64, float64 or
// string; containers are *Map and List.
type Map struct {
	keys   []string
	values map[string]any
}

// List holds repeated same-named elements in document order.
type List = []any

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores v under key. An existing key keeps its original position.
func (m *Map) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key and returns whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is shared; callers must
// not mutate it.
func (m *Map) Keys() []string {
	return m.keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v any) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Merge copies every entry of other into m in other's order. Existing keys
// are overwritten in place, keeping their original position.
func (m *Map) Merge(other *Map) {
	if other == nil {
		return
	}
	other.Range(func(key string, v any) bool {
		m.Set(key, v)
		return true
	})
}
