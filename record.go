package treeconv

import (
	"reflect"
	"strings"

	"github.com/reoring/treeconv/i18n"
)

// Field declares one record field: its external name plus declared Type.
// Field order is significant; serialize emits fields in declaration order.
type Field struct {
	Name string
	Type Type
}

type recordType struct {
	name   string
	goType reflect.Type
	fields []recordField
}

type recordField struct {
	name  string
	typ   Type
	index int // struct field index on goType
}

// Record declares a record descriptor bound to struct type T with an explicit
// ordered field schema. Every declared field must resolve to an exported
// struct field of T (by treeconv tag, json tag, or field name). Fields absent
// from parse input keep the struct's zero value.
func Record[T any](name string, fields ...Field) (Type, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return Type{}, Issues{{Path: "/", Code: CodeBadDescriptor, Message: i18n.T(CodeBadDescriptor, nil), Hint: "Record[T] requires struct T"}}
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := resolveStructKey(sf)
		if key == "-" || key == "" {
			continue
		}
		idxByName[key] = i
	}
	rec := &recordType{name: name, goType: rt}
	for _, f := range fields {
		i, ok := idxByName[f.Name]
		if !ok {
			return Type{}, Issues{{Path: "/" + f.Name, Code: CodeBadDescriptor, Message: i18n.T(CodeBadDescriptor, nil), Hint: "no struct field on " + rt.String() + " for record field " + f.Name}}
		}
		rec.fields = append(rec.fields, recordField{name: f.Name, typ: f.Type, index: i})
	}
	return Type{kind: KindRecord, name: name, record: rec}, nil
}

// MustRecord is like Record but panics on error.
func MustRecord[T any](name string, fields ...Field) Type {
	t, err := Record[T](name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// resolveStructKey applies the repository-wide rule to resolve a struct
// field's external key.
// Priority: treeconv:"name=..." > json tag name > field name; "-" disables the field.
func resolveStructKey(sf reflect.StructField) string {
	if tt := sf.Tag.Get("treeconv"); tt != "" {
		parts := strings.Split(tt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// assignField places a parsed value into a struct field, converting where the
// reflect types allow and recursing element-wise through slices and maps.
func assignField(fv reflect.Value, val any, path string) Issues {
	if val == nil {
		switch fv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			fv.Set(reflect.Zero(fv.Type()))
		default:
			// leave zero value for non-nillable fields
		}
		return nil
	}
	vv := reflect.ValueOf(val)
	if vv.Type().AssignableTo(fv.Type()) {
		fv.Set(vv)
		return nil
	}
	switch fv.Kind() {
	case reflect.Slice:
		if vv.Kind() != reflect.Slice && vv.Kind() != reflect.Array {
			break
		}
		out := reflect.MakeSlice(fv.Type(), vv.Len(), vv.Len())
		for i := 0; i < vv.Len(); i++ {
			ev := vv.Index(i)
			if ev.Kind() == reflect.Interface {
				ev = ev.Elem()
			}
			var elem any
			if ev.IsValid() {
				elem = ev.Interface()
			}
			if iss := assignField(out.Index(i), elem, path); len(iss) > 0 {
				return iss
			}
		}
		fv.Set(out)
		return nil
	case reflect.Map:
		if vv.Kind() != reflect.Map {
			break
		}
		out := reflect.MakeMapWithSize(fv.Type(), vv.Len())
		it := vv.MapRange()
		for it.Next() {
			kv := reflect.New(fv.Type().Key()).Elem()
			ev := reflect.New(fv.Type().Elem()).Elem()
			if iss := assignField(kv, deref(it.Key()), path); len(iss) > 0 {
				return iss
			}
			if iss := assignField(ev, deref(it.Value()), path); len(iss) > 0 {
				return iss
			}
			out.SetMapIndex(kv, ev)
		}
		fv.Set(out)
		return nil
	}
	// Convertible scalars (int64 -> int, float64 -> float32, ...). Integer to
	// string is reflect-convertible via rune conversion; that is never the
	// intent here, so it is excluded.
	if vv.Type().ConvertibleTo(fv.Type()) &&
		!(fv.Kind() == reflect.String && vv.Kind() != reflect.String) {
		fv.Set(vv.Convert(fv.Type()))
		return nil
	}
	return Issues{{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "cannot place " + vv.Type().String() + " into field of type " + fv.Type().String()}}
}

func deref(rv reflect.Value) any {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
