package treeconv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Map is the tree's ordered string-keyed map node. Keys keep their insertion
// order, which is what lets serialize reproduce record field order and lets a
// JSON encode/decode cycle leave trees unchanged.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap returns an empty ordered map node.
func NewMap() *Map {
	return &Map{vals: make(map[string]any)}
}

// Set inserts or replaces the value for k. A replaced key keeps its original
// position. Returns m for chaining.
func (m *Map) Set(k string, v any) *Map {
	if m.vals == nil {
		m.vals = make(map[string]any)
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
	return m
}

// Get returns the value for k and whether it is present.
func (m *Map) Get(k string) (any, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map) Has(k string) bool {
	_, ok := m.vals[k]
	return ok
}

// Delete removes k and reports whether it was present.
func (m *Map) Delete(k string) bool {
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	for i, kk := range m.keys {
		if kk == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(k string, v any) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// Equal reports deep equality including key order. go-cmp honors this method.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if !nodeEqual(m.vals[k], other.vals[k]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b any) bool {
	am, aok := a.(*Map)
	bm, bok := b.(*Map)
	if aok || bok {
		return aok && bok && am.Equal(bm)
	}
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok || bok {
		if !aok || !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !nodeEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

func (m *Map) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("!%v", err)
	}
	return string(b)
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

// UnmarshalJSON decodes a JSON object preserving key order. Numbers decode as
// json.Number.
func (m *Map) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("treeconv: expected JSON object, got %v", tok)
	}
	m.keys = nil
	m.vals = make(map[string]any)
	return decodeObjectInto(dec, m)
}

func decodeObjectInto(dec *json.Decoder, m *Map) error {
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		k, ok := kt.(string)
		if !ok {
			return fmt.Errorf("treeconv: expected object key, got %v", kt)
		}
		v, err := decodeTreeValue(dec)
		if err != nil {
			return err
		}
		m.Set(k, v)
	}
	_, err := dec.Token() // consume '}'
	return err
}

// decodeTreeValue builds the next value from the decoder's token stream,
// producing *Map for objects and []any for arrays.
func decodeTreeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			if err := decodeObjectInto(dec, m); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			out := []any{}
			for dec.More() {
				v, err := decodeTreeValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return out, nil
		default:
			return nil, fmt.Errorf("treeconv: unexpected delimiter %v", t)
		}
	default:
		return tok, nil // string, json.Number, bool, nil
	}
}

// mapEntries provides a uniform ordered view over the two map-shaped nodes the
// parser accepts: *Map (insertion order) and map[string]any (sorted keys, the
// repository's determinism rule for unordered input).
func mapEntries(node any) (keys []string, get func(string) (any, bool), ok bool) {
	switch m := node.(type) {
	case *Map:
		return m.Keys(), m.Get, true
	case map[string]any:
		ks := make([]string, 0, len(m))
		for k := range m {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		return ks, func(k string) (any, bool) { v, ok := m[k]; return v, ok }, true
	default:
		return nil, nil, false
	}
}
