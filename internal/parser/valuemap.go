package parser

// OrderedMap preserves YAML mapping insertion order (spec.md §3 invariant
// 4). Keys are arbitrary Values (YAML permits non-scalar keys), so lookup by
// scalar text is provided as a convenience alongside ordered iteration; a
// plain Go map cannot serve here since map iteration order is unspecified
// and its key type would have to be the (non-comparable) Value struct.
//
// No ordered-map library appears in any _examples/ go.mod, so this is
// hand-rolled rather than imported; see DESIGN.md.
type OrderedMap struct {
	keys   []*Value
	values []*Value
	index  map[string]int
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[string]int)}
}

// Set appends a key/value pair, preserving first-seen order; setting an
// existing scalar key again overwrites its value in place.
func (m *OrderedMap) Set(key, value *Value) {
	if text, ok := key.scalarText(); ok {
		if i, exists := m.index[text]; exists {
			m.values[i] = value
			return
		}
		m.index[text] = len(m.keys)
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Get looks up a value by its scalar key's text form.
func (m *OrderedMap) Get(keyText string) (*Value, bool) {
	i, ok := m.index[keyText]
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []*Value {
	return m.keys
}

// Values returns the values in insertion order, aligned with Keys.
func (m *OrderedMap) Values() []*Value {
	return m.values
}

// MapEntry is one key/value pair of an OrderedMap.
type MapEntry struct {
	Key   *Value
	Value *Value
}

// Entries returns the map's key/value pairs in insertion order.
func (m *OrderedMap) Entries() []MapEntry {
	entries := make([]MapEntry, len(m.keys))
	for i := range m.keys {
		entries[i] = MapEntry{Key: m.keys[i], Value: m.values[i]}
	}
	return entries
}
