package treeconv

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// typeOf maps a runtime Go value onto a descriptor for serializer dispatch.
// It is the single contract point between the engine and the Go type system:
// registry bindings take priority so named enum/record types dispatch to
// their declared descriptors, then built-in shapes are recognized by kind.
// Runtime descriptors carry no type arguments; container handlers re-dispatch
// per element.
func (r *Registry) typeOf(v any) (Type, bool) {
	if v == nil {
		return Null, true
	}
	rv := reflect.ValueOf(v)
	if t, ok := r.binding(rv.Type()); ok {
		return t, true
	}
	switch vv := v.(type) {
	case bool:
		return Bool, true
	case string:
		return String, true
	case []byte:
		return Bytes, true
	case time.Time:
		return Time, true
	case Date:
		return DateType, true
	case json.Number:
		if numberLooksIntegral(vv) {
			return Int, true
		}
		return Float, true
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Bool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int, true
	case reflect.Float32, reflect.Float64:
		return Float, true
	case reflect.String:
		return String, true
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes, true
		}
		return List(), true
	case reflect.Map:
		// map[...]struct{} is the conventional Go set shape.
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			return Set(), true
		}
		return Dict(), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null, true
		}
		return r.typeOf(rv.Elem().Interface())
	}
	return Type{}, false
}

// numberLooksIntegral reports whether a JSON number literal has no fraction or
// exponent part.
func numberLooksIntegral(n json.Number) bool {
	return !strings.ContainsAny(n.String(), ".eE")
}
