package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/treeconv"
	"github.com/reoring/treeconv/codec"
)

func TestBlob_RoundTrip(t *testing.T) {
	orig := treeconv.NewMap().
		Set("id", json.Number("7")).
		Set("tags", []any{"a", "b"}).
		Set("meta", treeconv.NewMap().Set("ok", true))

	blob, err := codec.EncodeBlob(orig)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	back, err := codec.DecodeBlob(blob)
	require.NoError(t, err)
	require.True(t, orig.Equal(back.(*treeconv.Map)), "blob round trip changed the tree")
}

func TestBlob_CompressesRepetitiveTrees(t *testing.T) {
	items := make([]any, 0, 512)
	for i := 0; i < 512; i++ {
		items = append(items, "the same string every time")
	}
	node := treeconv.NewMap().Set("items", items)

	raw, err := codec.EncodeTree(node)
	require.NoError(t, err)
	blob, err := codec.EncodeBlob(node)
	require.NoError(t, err)
	require.Less(t, len(blob), len(raw))
}

func TestDecodeBlob_RejectsGarbage(t *testing.T) {
	_, err := codec.DecodeBlob([]byte("definitely not zstd"))
	require.Error(t, err)
}
