package document

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Object is an ordered mapping of string keys to document values.
// Keys keep the order in which they were first set.
type Object struct {
	keys   []string
	values map[string]any
}

// Entry is a single key/value pair of an object.
type Entry struct {
	Key   string
	Value any
}

// NewObject creates an object from entries, in order.
// A repeated key keeps its first position and takes the last value.
func NewObject(entries ...Entry) *Object {
	o := &Object{values: make(map[string]any, len(entries))}
	for _, e := range entries {
		o.Set(e.Key, e.Value)
	}
	return o
}

// Set stores value under key.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in order. The returned slice must not be modified.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Entries returns the key/value pairs in order.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	entries := make([]Entry, len(o.keys))
	for i, k := range o.keys {
		entries[i] = Entry{Key: k, Value: o.values[k]}
	}
	return entries
}

// MarshalJSON encodes the object with its keys in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Entries returns the ordered key/value pairs of v when v is an object.
// Plain Go maps have no order; their entries are returned sorted by key so
// that the result is deterministic.
func Entries(v any) ([]Entry, bool) {
	switch m := v.(type) {
	case *Object:
		if m == nil {
			return nil, false
		}
		return m.Entries(), true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: m[k]}
		}
		return entries, true
	default:
		return nil, false
	}
}

// IsObject reports whether v is an object value.
func IsObject(v any) bool {
	switch m := v.(type) {
	case *Object:
		return m != nil
	case map[string]any:
		return true
	default:
		return false
	}
}

// field looks up key in an object value.
func field(v any, key string) (any, bool) {
	switch m := v.(type) {
	case *Object:
		return m.Get(key)
	case map[string]any:
		val, ok := m[key]
		return val, ok
	default:
		return nil, false
	}
}
