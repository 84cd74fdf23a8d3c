package treeconv

import (
	"context"
	"reflect"

	"github.com/reoring/treeconv/i18n"
)

// Handler converts one family of types between runtime values and tree nodes.
// Handlers own no state; they receive the registry so container handlers can
// recurse through Parse and Serialize.
type Handler interface {
	// Serialize converts v into a tree node.
	Serialize(ctx context.Context, reg *Registry, v any) (any, error)
	// Parse converts node into a value of the target descriptor t, honoring
	// the strict/loose failure policy.
	Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error)
}

// DispatchKey identifies a handler registration: either an exact Type or a
// named predicate over Types. The two variants are explicit; nothing depends
// on naming conventions.
type DispatchKey struct {
	exact *Type
	name  string
	pred  func(Type) bool
}

// Exact keys a registration to a descriptor's full identity (or, for an
// argument-less descriptor, to its origin — which covers every
// parameterization of that origin).
func Exact(t Type) DispatchKey { return DispatchKey{exact: &t} }

// Predicate keys a registration to a named boolean function over descriptors.
// Predicates are consulted in registration order after exact keys.
func Predicate(name string, fn func(Type) bool) DispatchKey {
	return DispatchKey{name: name, pred: fn}
}

type predicateEntry struct {
	name string
	fn   func(Type) bool
	h    Handler
}

// Registry maps dispatch keys to handlers and records Go-type bindings for
// enum and record descriptors.
//
// A Registry is not safe for concurrent mutation. Concurrent read-only
// resolution is safe while no writer is active; callers needing concurrent
// registration must supply their own synchronization or use per-goroutine
// instances.
type Registry struct {
	exact    map[string]Handler
	preds    []predicateEntry
	bindings map[reflect.Type]Type
}

// New returns a registry pre-populated with the built-in handler set.
func New() *Registry {
	r := NewEmpty()
	registerBuiltins(r)
	return r
}

// NewEmpty returns a registry with no handlers at all.
func NewEmpty() *Registry {
	return &Registry{
		exact:    make(map[string]Handler),
		bindings: make(map[reflect.Type]Type),
	}
}

// Register inserts or overwrites the mapping for key. Exact keys are unique
// (last registration wins); multiple predicate keys may coexist and keep
// their insertion order.
func (r *Registry) Register(key DispatchKey, h Handler) {
	if key.exact != nil {
		r.exact[key.exact.key()] = h
		return
	}
	if key.pred == nil {
		return
	}
	r.preds = append(r.preds, predicateEntry{name: key.name, fn: key.pred, h: h})
}

// Deregister removes the mapping for key if present; it never errors.
// Deregistering a predicate key removes every entry sharing its name.
func (r *Registry) Deregister(key DispatchKey) {
	if key.exact != nil {
		delete(r.exact, key.exact.key())
		return
	}
	if key.name == "" {
		return
	}
	kept := r.preds[:0]
	for _, pe := range r.preds {
		if pe.name != key.name {
			kept = append(kept, pe)
		}
	}
	r.preds = kept
}

// Resolve finds the handler for a descriptor. Resolution order: exact match on
// the full identity, exact match on the origin alone, then predicate keys in
// registration order matching either the full descriptor or its origin.
func (r *Registry) Resolve(t Type) (Handler, bool) {
	if h, ok := r.exact[t.key()]; ok {
		return h, true
	}
	if h, ok := r.exact[t.originKey()]; ok {
		return h, true
	}
	origin := t.Origin()
	for _, pe := range r.preds {
		if pe.fn(t) || pe.fn(origin) {
			return pe.h, true
		}
	}
	return nil, false
}

// resolveValue resolves a handler for a runtime value's introspected
// descriptor: exact identity then predicate scan. There is no origin fallback
// because runtime descriptors carry no type arguments to strip.
func (r *Registry) resolveValue(t Type) (Handler, bool) {
	if h, ok := r.exact[t.key()]; ok {
		return h, true
	}
	for _, pe := range r.preds {
		if pe.fn(t) {
			return pe.h, true
		}
	}
	return nil, false
}

// Bind records the reflect.Type -> descriptor association for enum and record
// descriptors so Serialize recognizes their Go values. Parse needs no binding;
// the descriptor is passed explicitly.
func (r *Registry) Bind(types ...Type) error {
	for _, t := range types {
		switch t.kind {
		case KindEnum:
			if t.enum == nil || t.enum.goType == nil {
				return Issues{{Path: "/", Code: CodeBadDescriptor, Message: i18n.T(CodeBadDescriptor, nil), Hint: "enum descriptor without a Go type"}}
			}
			r.bindings[t.enum.goType] = t
		case KindRecord:
			if t.record == nil || t.record.goType == nil {
				return Issues{{Path: "/", Code: CodeBadDescriptor, Message: i18n.T(CodeBadDescriptor, nil), Hint: "record descriptor without a Go type"}}
			}
			r.bindings[t.record.goType] = t
		default:
			return Issues{{Path: "/", Code: CodeBadDescriptor, Message: i18n.T(CodeBadDescriptor, nil), Hint: "only enum and record descriptors can be bound, got " + t.String()}}
		}
	}
	return nil
}

// MustBind is like Bind but panics on error.
func (r *Registry) MustBind(types ...Type) {
	if err := r.Bind(types...); err != nil {
		panic(err)
	}
}

// binding looks up the declared descriptor for a runtime Go type.
func (r *Registry) binding(rt reflect.Type) (Type, bool) {
	t, ok := r.bindings[rt]
	return t, ok
}
