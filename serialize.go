package treeconv

import (
	"context"
	"fmt"
	"reflect"

	"github.com/reoring/treeconv/i18n"
)

// Serialize converts an arbitrary Go value into a JSON-compatible tree node:
// nil, bool, int64/float64/json.Number, string, []any, or *Map. The handler
// for each encountered value is resolved by its runtime type; container
// handlers recurse back into Serialize per element.
//
// A value whose runtime type resolves no handler is a fatal conversion error;
// Serialize never passes a value through unconverted. Cyclic values are a
// contract violation and exhaust the stack.
func Serialize(ctx context.Context, reg *Registry, v any) (any, error) {
	for rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface; rv = reflect.ValueOf(v) {
		if rv.IsNil() {
			return nil, nil
		}
		v = rv.Elem().Interface()
	}
	t, ok := reg.typeOf(v)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeNoHandler, Message: i18n.T(CodeNoHandler, nil), Hint: fmt.Sprintf("unsupported runtime type %T", v)}}
	}
	h, ok := reg.resolveValue(t)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeNoHandler, Message: i18n.T(CodeNoHandler, nil), Hint: "no handler for runtime type " + t.String()}}
	}
	return h.Serialize(ctx, reg, v)
}
