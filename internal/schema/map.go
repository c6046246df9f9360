package schema

import (
	"bytes"
	"encoding/json"
)

// Map is a string-keyed schema map that preserves insertion order when
// marshaled. JSON Schema consumers key on source order for `properties`
// and `$defs`, which plain Go maps cannot provide.
type Map struct {
	keys []string
	vals map[string]*Schema
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]*Schema)}
}

// Set inserts or replaces a key. Insertion order is kept; replacing keeps
// the original position.
func (m *Map) Set(key string, s *Schema) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = s
}

// Get returns the schema for key.
func (m *Map) Get(key string) (*Schema, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.vals[key]
	return s, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.vals[key]
	return ok
}

// Delete removes a key, preserving the order of the rest.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. Do not modify the returned
// slice.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// MarshalJSON writes entries in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
