package treeconv

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/reoring/treeconv/i18n"
)

// registerBuiltins installs the default handler set: exact keys for
// primitives and container origins, predicate keys for enumerations and
// records.
func registerBuiltins(r *Registry) {
	r.Register(Exact(Any), anyHandler{})
	r.Register(Exact(Null), nullHandler{})
	r.Register(Exact(Bool), boolHandler{})
	r.Register(Exact(Int), intHandler{})
	r.Register(Exact(Float), floatHandler{})
	r.Register(Exact(String), stringHandler{})
	r.Register(Exact(Bytes), bytesHandler{})
	r.Register(Exact(Time), timeHandler{})
	r.Register(Exact(DateType), dateHandler{})
	r.Register(Exact(List()), listHandler{})
	r.Register(Exact(Set()), setHandler{})
	r.Register(Exact(Dict()), dictHandler{})
	r.Register(Exact(Tuple()), tupleHandler{})
	r.Register(Exact(Union()), unionHandler{})
	r.Register(Exact(Literal()), literalHandler{})
	r.Register(Predicate("is_enum", IsEnum), enumHandler{})
	r.Register(Predicate("is_record", IsRecord), recordHandler{})
}

func issue(path, code, hint string) Issues {
	return Issues{{Path: path, Code: code, Message: i18n.T(code, nil), Hint: hint}}
}

func firstCode(err error) string {
	if iss, ok := AsIssues(err); ok && len(iss) > 0 {
		return iss[0].Code
	}
	return CodeInvalidType
}

// ---- scalars ----

type anyHandler struct{}

func (anyHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) { return v, nil }
func (anyHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, _ bool) (any, error) {
	return node, nil
}

type nullHandler struct{}

func (nullHandler) Serialize(_ context.Context, _ *Registry, _ any) (any, error) { return nil, nil }
func (nullHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if node == nil {
		return nil, nil
	}
	if strict {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected null, got %T", node))
	}
	return node, nil
}

type boolHandler struct{}

func (boolHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected bool, got %T", v))
	}
	return rv.Bool(), nil
}

func (boolHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if b, ok := node.(bool); ok {
		return b, nil
	}
	if !strict {
		return node, nil
	}
	return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected bool, got %T", node))
}

type intHandler struct{}

func (intHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	if n, ok := v.(json.Number); ok {
		return n, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	}
	return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected integer, got %T", v))
}

func (intHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if n, ok := normalizeInt(node); ok {
		return n, nil
	}
	if !strict {
		return node, nil
	}
	return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected int, got %T (%v)", node, node))
}

type floatHandler struct{}

func (floatHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	if n, ok := v.(json.Number); ok {
		return n, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected float, got %T", v))
}

func (floatHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if f, ok := normalizeFloat(node); ok {
		return f, nil
	}
	if !strict {
		return node, nil
	}
	return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected float, got %T (%v)", node, node))
}

type stringHandler struct{}

func (stringHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	if _, ok := v.(json.Number); ok {
		return nil, issue("/", CodeInvalidType, "expected string, got json.Number")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected string, got %T", v))
	}
	return rv.String(), nil
}

func (stringHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if s, ok := node.(string); ok {
		return s, nil
	}
	if !strict {
		return node, nil
	}
	return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected string, got %T", node))
}

type bytesHandler struct{}

func (bytesHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	b, ok := toBytes(v)
	if !ok {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected bytes, got %T", v))
	}
	return hex.EncodeToString(b), nil
}

func (bytesHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if b, ok := node.([]byte); ok {
		return b, nil
	}
	if s, ok := node.(string); ok {
		b, err := hex.DecodeString(s)
		if err != nil {
			// Malformed hex fails in both modes; loose mode only forgives
			// wrong node kinds, not corrupt encodings.
			return nil, Issues{{Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil), Hint: "invalid hex string", Cause: err}}
		}
		return b, nil
	}
	if strict {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected hex string or bytes, got %T", node))
	}
	return node, nil
}

// ---- time ----

type timeHandler struct{}

func (timeHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected time.Time, got %T", v))
	}
	return formatRFC3339Canonical(t), nil
}

func (timeHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if t, ok := node.(time.Time); ok {
		return t, nil
	}
	if s, ok := node.(string); ok {
		t, err := parseRFC3339(s)
		if err != nil {
			return nil, Issues{{Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil), Hint: "invalid RFC3339 time", Cause: err}}
		}
		return t, nil
	}
	if strict {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected RFC3339 string or time.Time, got %T", node))
	}
	return node, nil
}

type dateHandler struct{}

func (dateHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	d, ok := v.(Date)
	if !ok {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected Date, got %T", v))
	}
	return d.String(), nil
}

func (dateHandler) Parse(_ context.Context, _ *Registry, _ Type, node any, strict bool) (any, error) {
	if d, ok := node.(Date); ok {
		return d, nil
	}
	if s, ok := node.(string); ok {
		d, err := ParseDate(s)
		if err != nil {
			return nil, Issues{{Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil), Hint: "invalid date string", Cause: err}}
		}
		return d, nil
	}
	if strict {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected date string or Date, got %T", node))
	}
	return node, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

// ---- containers ----

type listHandler struct{}

func (listHandler) Serialize(ctx context.Context, reg *Registry, v any) (any, error) {
	return serializeElements(ctx, reg, v)
}

func (listHandler) Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	items, ok := node.([]any)
	if !ok {
		if strict {
			return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected array for %s, got %T", t, node))
		}
		return node, nil
	}
	args := t.Args()
	if len(args) == 0 {
		out := make([]any, len(items))
		copy(out, items)
		return out, nil
	}
	if len(args) != 1 {
		return nil, issue("/", CodeBadDescriptor, t.String()+" takes exactly one type argument")
	}
	out := make([]any, 0, len(items))
	var iss Issues
	for i, item := range items {
		pv, err := Parse(ctx, reg, args[0], item, strict)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
			continue
		}
		out = append(out, pv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

type setHandler struct{}

func (setHandler) Serialize(ctx context.Context, reg *Registry, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected set (map[...]struct{}), got %T", v))
	}
	out := make([]any, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		sv, err := Serialize(ctx, reg, deref(it.Key()))
		if err != nil {
			return nil, rebaseIssues("/", err)
		}
		out = append(out, sv)
	}
	// Go map iteration is randomized; order elements canonically.
	sort.Slice(out, func(i, j int) bool { return sortKeyOf(out[i]) < sortKeyOf(out[j]) })
	return out, nil
}

func (setHandler) Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	items, ok := node.([]any)
	if !ok {
		if strict {
			return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected array for %s, got %T", t, node))
		}
		return node, nil
	}
	args := t.Args()
	if len(args) > 1 {
		return nil, issue("/", CodeBadDescriptor, t.String()+" takes exactly one type argument")
	}
	out := make(map[any]struct{}, len(items))
	var iss Issues
	for i, item := range items {
		pv := item
		if len(args) == 1 {
			var err error
			pv, err = Parse(ctx, reg, args[0], item, strict)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
				continue
			}
		}
		if !isComparable(pv) {
			iss = AppendIssues(iss, issue("/"+strconv.Itoa(i), CodeInvalidType, fmt.Sprintf("unhashable set element %T", pv))...)
			continue
		}
		out[pv] = struct{}{}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

type dictHandler struct{}

func (dictHandler) Serialize(ctx context.Context, reg *Registry, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected map, got %T", v))
	}
	type entry struct {
		key string
		val any
	}
	entries := make([]entry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		sk, err := Serialize(ctx, reg, deref(it.Key()))
		if err != nil {
			return nil, rebaseIssues("/", err)
		}
		ks, ok := mapKeyString(sk)
		if !ok {
			return nil, issue("/", CodeInvalidType, fmt.Sprintf("map key %T does not serialize to a scalar", it.Key().Interface()))
		}
		sv, err := Serialize(ctx, reg, deref(it.Value()))
		if err != nil {
			return nil, rebaseIssues("/"+ks, err)
		}
		entries = append(entries, entry{key: ks, val: sv})
	}
	// Go map iteration is randomized; emit keys in sorted order.
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	out := NewMap()
	for _, e := range entries {
		out.Set(e.key, e.val)
	}
	return out, nil
}

func (dictHandler) Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	keys, get, ok := mapEntries(node)
	if !ok {
		if strict {
			return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected object for %s, got %T", t, node))
		}
		return node, nil
	}
	args := t.Args()
	if len(args) == 0 {
		return node, nil
	}
	if len(args) != 2 {
		return nil, issue("/", CodeBadDescriptor, t.String()+" takes exactly two type arguments")
	}
	out := make(map[any]any, len(keys))
	var iss Issues
	for _, k := range keys {
		v, _ := get(k)
		pk, err := Parse(ctx, reg, args[0], k, strict)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
			continue
		}
		pv, err := Parse(ctx, reg, args[1], v, strict)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
			continue
		}
		if !isComparable(pk) {
			iss = AppendIssues(iss, issue("/"+k, CodeInvalidType, fmt.Sprintf("unhashable map key %T", pk))...)
			continue
		}
		out[pk] = pv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

type tupleHandler struct{}

func (tupleHandler) Serialize(ctx context.Context, reg *Registry, v any) (any, error) {
	return serializeElements(ctx, reg, v)
}

func (tupleHandler) Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	items, ok := node.([]any)
	if !ok {
		if strict {
			return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected array for %s, got %T", t, node))
		}
		return node, nil
	}
	args := t.Args()
	if len(args) == 0 {
		out := make([]any, len(items))
		copy(out, items)
		return out, nil
	}
	hasVariadic := args[len(args)-1].Kind() == KindVariadic
	// A fixed-arity tuple with fewer elements than declared positions is an
	// invariant violation, fatal regardless of strict/loose mode.
	if !hasVariadic && len(items) < len(args) {
		return nil, issue("/", CodeTupleArity, fmt.Sprintf("%s declares %d positions, got %d elements", t, len(args), len(items)))
	}
	if strict && len(items) != len(args) {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("%s expects %d elements, got %d", t, len(args), len(items)))
	}
	out := make([]any, 0, len(items))
	var iss Issues
	for i, item := range items {
		if i < len(args) && args[i].Kind() != KindVariadic {
			pv, err := Parse(ctx, reg, args[i], item, strict)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
				continue
			}
			out = append(out, pv)
			continue
		}
		// Variadic position or exhausted argument list: the element passes
		// through unconverted. The repeat marker is intentionally NOT
		// re-applied to remaining elements; callers depend on this.
		out = append(out, item)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// serializeElements converts any slice or array value element-wise.
func serializeElements(ctx context.Context, reg *Registry, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected slice or array, got %T", v))
	}
	out := make([]any, 0, rv.Len())
	var iss Issues
	for i := 0; i < rv.Len(); i++ {
		sv, err := Serialize(ctx, reg, deref(rv.Index(i)))
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
			continue
		}
		out = append(out, sv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// ---- union & literal ----

type unionHandler struct{}

func (unionHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) {
	// The union itself performs no transformation.
	return v, nil
}

func (unionHandler) Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	args := t.Args()
	if len(args) == 0 {
		return nil, issue("/", CodeBadDescriptor, t.String()+" needs at least one member type")
	}
	if node == nil {
		for _, a := range args {
			if a.Kind() == KindNull {
				return nil, nil
			}
		}
	}
	// Try each member in declared order; keep the per-candidate failures so
	// an exhausted union reports why every branch was rejected.
	var causes Issues
	for _, arg := range args {
		v, err := Parse(ctx, reg, arg, node, true)
		if err == nil {
			return v, nil
		}
		causes = AppendIssues(causes, Issue{
			Path:    "/",
			Code:    firstCode(err),
			Message: i18n.T(firstCode(err), nil),
			Hint:    "candidate " + arg.String(),
			Cause:   err,
		})
	}
	if strict {
		head := Issues{{Path: "/", Code: CodeUnionNoMatch, Message: i18n.T(CodeUnionNoMatch, nil), Hint: "no member of " + t.String() + " matched"}}
		return nil, AppendIssues(head, causes...)
	}
	return node, nil
}

type literalHandler struct{}

func (literalHandler) Serialize(_ context.Context, _ *Registry, v any) (any, error) { return v, nil }

func (literalHandler) Parse(_ context.Context, _ *Registry, t Type, node any, strict bool) (any, error) {
	consts := t.Consts()
	if len(consts) == 0 {
		return nil, issue("/", CodeBadDescriptor, t.String()+" needs at least one constant")
	}
	for _, c := range consts {
		if literalEqual(node, c) {
			return node, nil
		}
	}
	if strict {
		return nil, issue("/", CodeInvalidLiteral, fmt.Sprintf("%v is not one of %s", node, t))
	}
	return node, nil
}

// ---- enum & record ----

type enumHandler struct{}

func (enumHandler) Serialize(_ context.Context, reg *Registry, v any) (any, error) {
	rv := reflect.ValueOf(v)
	t, ok := reg.binding(rv.Type())
	if !ok || t.enum == nil {
		return nil, issue("/", CodeNoHandler, fmt.Sprintf("no enum binding for %T", v))
	}
	for _, m := range t.enum.members {
		if m.value == v {
			if m.numericOrBool() {
				return m.underlying(), nil
			}
			return m.name, nil
		}
	}
	return nil, issue("/", CodeInvalidEnum, fmt.Sprintf("%v is not a declared member of %s", v, t.Name()))
}

func (enumHandler) Parse(_ context.Context, _ *Registry, t Type, node any, strict bool) (any, error) {
	et := t.enum
	if et == nil || len(et.members) == 0 {
		return nil, issue("/", CodeBadDescriptor, t.String()+" has no members")
	}
	for _, m := range et.members {
		if s, ok := node.(string); ok && s == m.name {
			return m.value, nil
		}
		if literalEqual(node, m.underlying()) {
			return m.value, nil
		}
	}
	if strict {
		return nil, issue("/", CodeInvalidEnum, fmt.Sprintf("%v matches no member of %s", node, t.Name()))
	}
	return node, nil
}

type recordHandler struct{}

func (recordHandler) Serialize(ctx context.Context, reg *Registry, v any) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	t, ok := reg.binding(rv.Type())
	if !ok || t.record == nil {
		return nil, issue("/", CodeNoHandler, fmt.Sprintf("no record binding for %T", v))
	}
	out := NewMap()
	var iss Issues
	for _, f := range t.record.fields {
		sv, err := Serialize(ctx, reg, rv.Field(f.index).Interface())
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+f.name, err)...)
			continue
		}
		out.Set(f.name, sv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (recordHandler) Parse(ctx context.Context, reg *Registry, t Type, node any, strict bool) (any, error) {
	rec := t.record
	if rec == nil {
		return nil, issue("/", CodeBadDescriptor, t.String()+" has no field schema")
	}
	_, get, ok := mapEntries(node)
	if !ok {
		if strict {
			return nil, issue("/", CodeInvalidType, fmt.Sprintf("expected object for %s, got %T", t, node))
		}
		return node, nil
	}
	rv := reflect.New(rec.goType).Elem()
	var iss Issues
	for _, f := range rec.fields {
		val, present := get(f.name)
		if !present {
			// Absent fields keep the struct's zero value.
			continue
		}
		pv, err := Parse(ctx, reg, f.typ, val, strict)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+f.name, err)...)
			continue
		}
		if i2 := assignField(rv.Field(f.index), pv, "/"+f.name); len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return rv.Interface(), nil
}

// ---- shared coercion helpers ----

func normalizeInt(node any) (int64, bool) {
	switch n := node.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case json.Number:
		if !numberLooksIntegral(n) {
			return 0, false
		}
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func normalizeFloat(node any) (float64, bool) {
	switch n := node.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		// An integral literal is an int node, not a float node.
		if numberLooksIntegral(n) {
			return 0, false
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toBytes(v any) ([]byte, bool) {
	if b, ok := v.([]byte); ok {
		return b, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), true
		}
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			return out, true
		}
	}
	return nil, false
}

// canonScalar projects scalars onto canonical comparison forms: bool,
// float64 for every numeric shape, string for string kinds.
func canonScalar(v any) (any, bool) {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return n.String(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		return rv.String(), true
	}
	return nil, false
}

// literalEqual compares a tree node against a declared constant with numeric
// normalization (1 == 1.0); bools and strings never equal numbers.
func literalEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ca, aok := canonScalar(a)
	cb, bok := canonScalar(b)
	if aok && bok {
		return ca == cb
	}
	return reflect.DeepEqual(a, b)
}

// mapKeyString renders a serialized dict key as a tree map key, the way JSON
// encoders stringify non-string keys.
func mapKeyString(n any) (string, bool) {
	switch k := n.(type) {
	case string:
		return k, true
	case bool:
		return strconv.FormatBool(k), true
	case int64:
		return strconv.FormatInt(k, 10), true
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64), true
	case json.Number:
		return k.String(), true
	case nil:
		return "null", true
	}
	return "", false
}

func sortKeyOf(n any) string {
	if s, ok := mapKeyString(n); ok {
		return s
	}
	return fmt.Sprintf("%v", n)
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
