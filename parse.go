package treeconv

import (
	"context"

	"github.com/reoring/treeconv/i18n"
)

// Parse converts a tree node into a value of the target descriptor t by
// resolving a handler through the registry and delegating to it.
//
// strict selects the failure policy for the whole recursive descent. With
// strict=true any unconvertible node anywhere aborts the operation with an
// error. With strict=false unconvertible leaves pass through unchanged while
// convertible siblings are still processed; in particular, a descriptor with
// no resolvable handler returns node as-is — that is the designed loose
// escape hatch, not an error path.
func Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	h, ok := reg.Resolve(t)
	if !ok {
		if strict {
			return nil, Issues{{Path: "/", Code: CodeNoHandler, Message: i18n.T(CodeNoHandler, nil), Hint: "no handler for " + t.String()}}
		}
		return node, nil
	}
	return h.Parse(ctx, reg, t, node, strict)
}
