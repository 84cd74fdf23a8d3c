package treeconv_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/treeconv"
	"github.com/reoring/treeconv/codec"
)

func TestRoundTrip_Record(t *testing.T) {
	reg := treeconv.New()
	pt := personType()
	reg.MustBind(pt)

	orig := person{ID: 7, Name: "ana", Friends: []string{"bo", "cy"}}

	node := mustSerialize(t, reg, orig)
	back := mustParse(t, reg, pt, node, true)
	if diff := cmp.Diff(orig, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_RecordThroughJSON(t *testing.T) {
	reg := treeconv.New()
	pt := personType()
	reg.MustBind(pt)

	orig := person{ID: 7, Name: "ana", Friends: []string{"bo", "cy"}}
	node := mustSerialize(t, reg, orig)

	raw, err := codec.EncodeTree(node)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != `{"id":7,"name":"ana","friends":["bo","cy"]}` {
		t.Fatalf("unexpected JSON: %s", raw)
	}

	node2, err := codec.DecodeTree(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	back := mustParse(t, reg, pt, node2, true)
	if diff := cmp.Diff(orig, back); diff != "" {
		t.Fatalf("wire round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Enum(t *testing.T) {
	reg := treeconv.New()
	st := suitType()
	pt := priorityType()
	reg.MustBind(st, pt)

	for _, v := range []suit{"h", "s"} {
		node := mustSerialize(t, reg, v)
		if back := mustParse(t, reg, st, node, true); back != v {
			t.Fatalf("suit %v round trip: got %#v", v, back)
		}
	}
	for _, v := range []priority{1, 2} {
		node := mustSerialize(t, reg, v)
		if back := mustParse(t, reg, pt, node, true); back != v {
			t.Fatalf("priority %v round trip: got %#v", v, back)
		}
	}
}

func TestRoundTrip_Dict(t *testing.T) {
	reg := treeconv.New()
	orig := map[string]int{"a": 1, "b": 2}

	node := mustSerialize(t, reg, orig)
	back := mustParse(t, reg, treeconv.Dict(treeconv.String, treeconv.Int), node, true)
	m := back.(map[any]any)
	if len(m) != 2 || m["a"] != int64(1) || m["b"] != int64(2) {
		t.Fatalf("got %#v", m)
	}
}

func TestRoundTrip_BytesAndTime(t *testing.T) {
	reg := treeconv.New()
	tt := treeconv.Tuple(treeconv.Bytes, treeconv.Time)

	node := mustSerialize(t, reg, []any{[]byte("ab"), mustParse(t, reg, treeconv.Time, "2020-01-02T03:04:05Z", true)})
	back := mustParse(t, reg, tt, node, true)
	items := back.([]any)
	if string(items[0].([]byte)) != "ab" {
		t.Fatalf("bytes: got %#v", items[0])
	}
}

// Context cancellation is accepted but conversion work is synchronous and
// in-memory; operations never block on it.
func TestRoundTrip_CancelledContextStillConverts(t *testing.T) {
	reg := treeconv.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := treeconv.Parse(ctx, reg, treeconv.Bool, true, true)
	if err != nil || got != true {
		t.Fatalf("got %#v, %v", got, err)
	}
}
