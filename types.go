package treeconv

import (
	"fmt"
	"strings"
)

// Kind enumerates descriptor origins: the unparameterized base of a type.
type Kind int

const (
	KindInvalid Kind = iota
	KindAny
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindTime
	KindDate
	KindList
	KindSet
	KindDict
	KindTuple
	KindUnion
	KindLiteral
	KindEnum
	KindRecord
	// KindVariadic marks "the previous type argument repeats for all remaining
	// tuple positions". It is only meaningful as a trailing tuple argument.
	KindVariadic
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindDict:
		return "dict"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	case KindLiteral:
		return "literal"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindVariadic:
		return "..."
	default:
		return "invalid"
	}
}

// Type describes a conversion target: an origin Kind plus ordered type
// arguments. Descriptors are built explicitly (List, Dict, Union, Enum,
// Record, ...) because Go carries no runtime representation of generic
// type arguments.
type Type struct {
	kind   Kind
	name   string // enum/record type name
	args   []Type
	consts []any // literal constants
	enum   *enumType
	record *recordType
}

// Primitive and marker descriptors.
var (
	Any      = Type{kind: KindAny}
	Null     = Type{kind: KindNull}
	Bool     = Type{kind: KindBool}
	Int      = Type{kind: KindInt}
	Float    = Type{kind: KindFloat}
	String   = Type{kind: KindString}
	Bytes    = Type{kind: KindBytes}
	Time     = Type{kind: KindTime}
	DateType = Type{kind: KindDate}
	Variadic = Type{kind: KindVariadic}
)

// List describes a homogeneous list. With no argument, elements pass through
// unconverted.
func List(args ...Type) Type { return Type{kind: KindList, args: args} }

// Set describes a set; values on the Go side are map[any]struct{}.
func Set(args ...Type) Type { return Type{kind: KindSet, args: args} }

// Dict describes a string-keyed-on-the-wire mapping with independently
// converted keys and values. With no arguments, entries pass through.
func Dict(args ...Type) Type { return Type{kind: KindDict, args: args} }

// Tuple describes a fixed-size heterogeneous sequence. A trailing Variadic
// argument denotes a variable-length tail.
func Tuple(args ...Type) Type { return Type{kind: KindTuple, args: args} }

// Union describes a tagged-union target whose members are tried in declared
// order during parse.
func Union(args ...Type) Type { return Type{kind: KindUnion, args: args} }

// Optional is shorthand for Union(t, Null).
func Optional(t Type) Type { return Union(t, Null) }

// Literal describes a value constrained to one of the given constants.
func Literal(consts ...any) Type { return Type{kind: KindLiteral, consts: consts} }

// Kind returns the descriptor's origin kind.
func (t Type) Kind() Kind { return t.kind }

// Name returns the declared name for enum and record descriptors, "" otherwise.
func (t Type) Name() string { return t.name }

// Args returns the ordered type arguments. Callers must not mutate the result.
func (t Type) Args() []Type { return t.args }

// Consts returns the declared literal constants. Callers must not mutate the
// result.
func (t Type) Consts() []any { return t.consts }

// Origin returns the unparameterized base of t: the same descriptor with type
// arguments and literal constants stripped.
func (t Type) Origin() Type {
	o := t
	o.args = nil
	o.consts = nil
	return o
}

// Equal reports whether two descriptors share the same origin and positionally
// equal argument lists.
func (t Type) Equal(u Type) bool { return t.key() == u.key() }

func (t Type) String() string { return t.key() }

// key renders the full identity of t; it doubles as the exact dispatch key.
func (t Type) key() string {
	switch t.kind {
	case KindList, KindSet, KindDict, KindTuple, KindUnion:
		if len(t.args) == 0 {
			return t.kind.String()
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.key()
		}
		return t.kind.String() + "[" + strings.Join(parts, ",") + "]"
	case KindLiteral:
		if len(t.consts) == 0 {
			return "literal"
		}
		parts := make([]string, len(t.consts))
		for i, c := range t.consts {
			parts[i] = formatConst(c)
		}
		return "literal[" + strings.Join(parts, ",") + "]"
	case KindEnum:
		return "enum:" + t.name
	case KindRecord:
		return "record:" + t.name
	default:
		return t.kind.String()
	}
}

// originKey renders the origin-only identity, used for the generic fallback
// during resolution. Enum and record identities carry their name: each
// declared enum or record is its own origin.
func (t Type) originKey() string {
	switch t.kind {
	case KindEnum:
		return "enum:" + t.name
	case KindRecord:
		return "record:" + t.name
	default:
		return t.kind.String()
	}
}

func formatConst(c any) string {
	switch v := c.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsEnum reports whether t describes an enumeration. It is the predicate the
// built-in enum handler registers under.
func IsEnum(t Type) bool { return t.kind == KindEnum }

// IsRecord reports whether t describes a record. It is the predicate the
// built-in record handler registers under.
func IsRecord(t Type) bool { return t.kind == KindRecord }
