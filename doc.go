// Package treeconv converts Go values to and from JSON-compatible trees
// through a registry of type-directed handlers.
//
// A Registry maps dispatch keys to handlers. Serialize introspects a runtime
// value, resolves a handler for its shape, and produces a tree of nil, bool,
// int64, float64, json.Number, string, []any and *Map nodes. Parse walks the
// other direction: given a target descriptor (Type) it converts a tree back
// into Go values, either strictly (unconvertible nodes abort with Issues) or
// loosely (unconvertible nodes pass through unchanged).
//
// Minimal usage:
//
//	reg := treeconv.New()
//	node, err := treeconv.Serialize(ctx, reg, []int{1, 2, 3})
//	val, err := treeconv.Parse(ctx, reg, treeconv.List(treeconv.Int), node, true)
//
// Named enum and record descriptors are declared with Enum and Record and
// bound on the registry so Serialize recognizes their Go types:
//
//	suit := treeconv.Enum[Suit]("Suit",
//		treeconv.Member[Suit]{Name: "Hearts", Value: "h"},
//		treeconv.Member[Suit]{Name: "Spades", Value: "s"},
//	)
//	reg.MustBind(suit)
//
// Conversion failures are reported as Issues, a slice of path-addressed
// entries; see AsIssues and HasCode.
package treeconv
