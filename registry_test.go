package treeconv_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/reoring/treeconv"
)

// stubHandler returns a fixed value from both directions.
type stubHandler struct{ out any }

func (h stubHandler) Serialize(_ context.Context, _ *treeconv.Registry, _ any) (any, error) {
	return h.out, nil
}
func (h stubHandler) Parse(_ context.Context, _ *treeconv.Registry, _ treeconv.Type, _ any, _ bool) (any, error) {
	return h.out, nil
}

func TestRegister_ExactLastWins(t *testing.T) {
	reg := treeconv.New()
	reg.Register(treeconv.Exact(treeconv.Bool), stubHandler{out: "override"})
	got, err := treeconv.Parse(context.Background(), reg, treeconv.Bool, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "override" {
		t.Fatalf("expected overriding handler to win, got %v", got)
	}
}

func TestResolve_OriginFallback(t *testing.T) {
	reg := treeconv.New()
	// list[int] has no exact registration; it must fall back to the list origin.
	got, err := treeconv.Parse(context.Background(), reg, treeconv.List(treeconv.Int), []any{json.Number("1")}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, ok := got.([]any)
	if !ok || len(items) != 1 || items[0] != int64(1) {
		t.Fatalf("expected [1] via origin fallback, got %#v", got)
	}
}

func TestResolve_ExactBeatsOrigin(t *testing.T) {
	reg := treeconv.New()
	reg.Register(treeconv.Exact(treeconv.List(treeconv.Int)), stubHandler{out: "exact"})
	got, err := treeconv.Parse(context.Background(), reg, treeconv.List(treeconv.Int), []any{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "exact" {
		t.Fatalf("expected the full-identity registration to win, got %v", got)
	}
	// other parameterizations still use the origin handler
	got, err = treeconv.Parse(context.Background(), reg, treeconv.List(treeconv.String), []any{"x"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items, ok := got.([]any); !ok || len(items) != 1 || items[0] != "x" {
		t.Fatalf("expected origin handler for list[string], got %#v", got)
	}
}

func TestRegister_PredicateOrderFirstWins(t *testing.T) {
	reg := treeconv.NewEmpty()
	et := treeconv.Enum[string]("Color", treeconv.Member[string]{Name: "Red", Value: "r"})
	reg.Register(treeconv.Predicate("first", treeconv.IsEnum), stubHandler{out: "first"})
	reg.Register(treeconv.Predicate("second", treeconv.IsEnum), stubHandler{out: "second"})
	got, err := treeconv.Parse(context.Background(), reg, et, "Red", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first" {
		t.Fatalf("expected earliest matching predicate to win, got %v", got)
	}

	// a later registration must not change the outcome
	reg.Register(treeconv.Predicate("third", treeconv.IsEnum), stubHandler{out: "third"})
	got, err = treeconv.Parse(context.Background(), reg, et, "Red", true)
	if err != nil || got != "first" {
		t.Fatalf("expected the first predicate to keep winning, got %v, %v", got, err)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	reg := treeconv.New()
	h0, ok := reg.Resolve(treeconv.List(treeconv.Int))
	if !ok {
		t.Fatalf("expected a handler")
	}
	for i := 0; i < 3; i++ {
		h, ok := reg.Resolve(treeconv.List(treeconv.Int))
		if !ok || h != h0 {
			t.Fatalf("resolution must be stable, got %v on call %d", h, i)
		}
	}
}

func TestDeregister_ExactStrictFailsLoosePasses(t *testing.T) {
	reg := treeconv.New()
	reg.Deregister(treeconv.Exact(treeconv.Bool))

	_, err := treeconv.Parse(context.Background(), reg, treeconv.Bool, true, true)
	if !treeconv.HasCode(err, treeconv.CodeNoHandler) {
		t.Fatalf("expected no_handler in strict mode, got %v", err)
	}

	got, err := treeconv.Parse(context.Background(), reg, treeconv.Bool, "whatever", false)
	if err != nil {
		t.Fatalf("unexpected error in loose mode: %v", err)
	}
	if got != "whatever" {
		t.Fatalf("expected loose passthrough, got %v", got)
	}
}

func TestDeregister_PredicateRemovesByName(t *testing.T) {
	reg := treeconv.New()
	reg.Deregister(treeconv.Predicate("is_enum", nil))
	et := treeconv.Enum[string]("Suit", treeconv.Member[string]{Name: "Hearts", Value: "h"})
	_, err := treeconv.Parse(context.Background(), reg, et, "Hearts", true)
	if !treeconv.HasCode(err, treeconv.CodeNoHandler) {
		t.Fatalf("expected no_handler after predicate removal, got %v", err)
	}
}

func TestBind_RejectsNonNominalDescriptors(t *testing.T) {
	reg := treeconv.New()
	err := reg.Bind(treeconv.Int)
	if !treeconv.HasCode(err, treeconv.CodeBadDescriptor) {
		t.Fatalf("expected bad_descriptor, got %v", err)
	}
}
