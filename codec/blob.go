package codec

import (
	"github.com/klauspost/compress/zstd"
)

// EncodeBlob renders a tree node as compact JSON and compresses it with zstd.
// The result is suitable for cache entries and snapshot storage.
func EncodeBlob(node any) ([]byte, error) {
	raw, err := EncodeTree(node)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// DecodeBlob reverses EncodeBlob.
func DecodeBlob(blob []byte) (any, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	return DecodeTree(raw)
}
