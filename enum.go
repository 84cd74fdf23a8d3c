package treeconv

import "reflect"

// Member declares one enumeration member: a symbolic name plus its typed Go
// value.
type Member[T comparable] struct {
	Name  string
	Value T
}

type enumType struct {
	name    string
	goType  reflect.Type
	members []enumMember
}

type enumMember struct {
	name  string
	value any
}

// Enum declares an enumeration descriptor backed by the Go type T. The member
// list is the explicit schema: parse matches a member by symbolic name or by
// underlying value, and serialize emits the underlying value when it is
// numeric or boolean, the symbolic name otherwise.
//
//	type suit string
//	suitT := treeconv.Enum[suit]("Suit",
//		treeconv.Member[suit]{Name: "Hearts", Value: "h"},
//		treeconv.Member[suit]{Name: "Spades", Value: "s"},
//	)
func Enum[T comparable](name string, members ...Member[T]) Type {
	var zero T
	et := &enumType{name: name, goType: reflect.TypeOf(zero)}
	for _, m := range members {
		et.members = append(et.members, enumMember{name: m.Name, value: m.Value})
	}
	return Type{kind: KindEnum, name: name, enum: et}
}

// underlying projects a member's Go value onto the tree scalar used for
// serialization and value matching: numeric kinds normalize to int64/float64,
// bool stays bool, string kinds surface the raw string.
func (m enumMember) underlying() any {
	rv := reflect.ValueOf(m.value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	default:
		return m.value
	}
}

// numericOrBool reports whether the member's underlying value serializes as a
// number or boolean rather than as its symbolic name.
func (m enumMember) numericOrBool() bool {
	switch m.underlying().(type) {
	case bool, int64, float64:
		return true
	default:
		return false
	}
}
