package executor

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is the object shape executeSelectionSet builds: response
// keys in the exact order their selections were first collected (spec
// §8, invariant 2). encoding/json sorts a plain map's keys, so the
// response value has to carry its own order and marshal itself.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

func newOrderedMap(capacity int) *OrderedMap {
	return &OrderedMap{values: make(map[string]interface{}, capacity)}
}

// Set records value under key, appending key to the order only the
// first time it is seen.
func (m *OrderedMap) Set(key string, value interface{}) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the response keys in first-insertion order.
func (m *OrderedMap) Keys() []string { return m.keys }

// ToMap flattens m (and any nested *OrderedMap reachable through it)
// into plain map[string]interface{}/[]interface{} values. Order is
// lost; this exists for callers that want to inspect a result without
// caring about key order, such as tests.
func (m *OrderedMap) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(m.keys))
	for _, k := range m.keys {
		out[k] = flatten(m.values[k])
	}
	return out
}

func flatten(v interface{}) interface{} {
	switch v := v.(type) {
	case *OrderedMap:
		return v.ToMap()
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = flatten(item)
		}
		return out
	default:
		return v
	}
}

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
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
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
