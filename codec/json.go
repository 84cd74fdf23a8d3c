// Package codec reads and writes conversion trees as JSON, YAML and
// zstd-compressed blobs. Decoding preserves object key order and keeps
// numbers as json.Number so the engine's int/float distinction survives the
// wire.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/treeconv"
)

// DecodeTree parses a single JSON document into a tree node: objects become
// *treeconv.Map with source key order, arrays []any, numbers json.Number.
func DecodeTree(data []byte) (any, error) {
	return DecodeTreeReader(bytes.NewReader(data))
}

// DecodeTreeReader is DecodeTree over a stream.
func DecodeTreeReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

// EncodeTree renders a tree node as compact JSON. *treeconv.Map marshals in
// insertion order.
func EncodeTree(node any) ([]byte, error) {
	return j.Marshal(node)
}

// EncodeTreeIndent is EncodeTree with indentation.
func EncodeTreeIndent(node any, prefix, indent string) ([]byte, error) {
	return j.MarshalIndent(node, prefix, indent)
}

func valueFromToken(dec *j.Decoder, tok j.Token) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("codec: unexpected delimiter %q", v.String())
	case j.Number:
		return json.Number(v), nil
	case string:
		return v, nil
	case bool:
		return v, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("codec: unexpected JSON token %T", tok)
}

func decodeObject(dec *j.Decoder) (*treeconv.Map, error) {
	m := treeconv.NewMap()
	for dec.More() {
		ktok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := ktok.(string)
		if !ok {
			return nil, fmt.Errorf("codec: object key is %T, want string", ktok)
		}
		vtok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := valueFromToken(dec, vtok)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return m, nil
}

func decodeArray(dec *j.Decoder) ([]any, error) {
	out := make([]any, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := valueFromToken(dec, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return out, nil
}
