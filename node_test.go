package treeconv_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/treeconv"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := treeconv.NewMap().Set("b", 1).Set("a", 2).Set("c", 3)
	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}

	// replacing keeps the original position
	m.Set("a", 20)
	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Fatalf("keys after replace (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("a"); v != 20 {
		t.Fatalf("got %v", v)
	}

	if !m.Delete("b") || m.Has("b") || m.Len() != 2 {
		t.Fatalf("delete failed: %v", m.Keys())
	}
	if m.Delete("nope") {
		t.Fatalf("deleting a missing key must report false")
	}
}

func TestMap_Range(t *testing.T) {
	m := treeconv.NewMap().Set("x", 1).Set("y", 2)
	var seen []string
	m.Range(func(k string, _ any) bool {
		seen = append(seen, k)
		return true
	})
	if diff := cmp.Diff([]string{"x", "y"}, seen); diff != "" {
		t.Fatalf("range order (-want +got):\n%s", diff)
	}
}

func TestMap_MarshalJSONKeepsOrder(t *testing.T) {
	m := treeconv.NewMap().Set("z", int64(1)).Set("a", []any{"x", nil})
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"z":1,"a":["x",null]}` {
		t.Fatalf("got %s", b)
	}
}

func TestMap_UnmarshalJSONKeepsOrderAndNumbers(t *testing.T) {
	var m treeconv.Map
	if err := json.Unmarshal([]byte(`{"z":1,"a":{"k":[1.5,true]}}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a"}, m.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	z, _ := m.Get("z")
	if z != json.Number("1") {
		t.Fatalf("numbers must stay json.Number, got %#v", z)
	}
	a, _ := m.Get("a")
	inner, ok := a.(*treeconv.Map)
	if !ok {
		t.Fatalf("nested object must be *Map, got %T", a)
	}
	k, _ := inner.Get("k")
	if diff := cmp.Diff([]any{json.Number("1.5"), true}, k); diff != "" {
		t.Fatalf("nested array (-want +got):\n%s", diff)
	}
}

func TestMap_EqualIsOrderSensitive(t *testing.T) {
	a := treeconv.NewMap().Set("x", int64(1)).Set("y", int64(2))
	b := treeconv.NewMap().Set("x", int64(1)).Set("y", int64(2))
	c := treeconv.NewMap().Set("y", int64(2)).Set("x", int64(1))

	if !a.Equal(b) {
		t.Fatalf("identical maps must be equal")
	}
	if a.Equal(c) {
		t.Fatalf("different key order must not be equal")
	}

	// nested nodes compare deeply
	d := treeconv.NewMap().Set("m", treeconv.NewMap().Set("k", []any{int64(1)}))
	e := treeconv.NewMap().Set("m", treeconv.NewMap().Set("k", []any{int64(1)}))
	if !d.Equal(e) {
		t.Fatalf("nested maps must compare deeply")
	}
}
