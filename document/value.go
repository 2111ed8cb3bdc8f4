package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is a tagged sum with variants Null, Bool, Int, Float, String, and
// Array (an ordered sequence of Value). There is no nested-object variant;
// structure is expressed via sections (§3).
//
// Values are immutable once constructed (I5); every constructor returns a
// fresh Value rather than mutating an existing one.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// NewBool returns a boolean Value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt returns an integer Value.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewFloat returns a floating-point Value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewString returns a string Value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewArray returns an Array Value wrapping the given elements in order.
// The slice is copied so later mutation of the caller's slice cannot violate
// Value immutability (I5).
func NewArray(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)

	return Value{kind: KindArray, arr: cp}
}

// Kind returns the variant tag held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the bool payload and whether v holds Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the int64 payload and whether v holds Int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float64 payload and whether v holds Float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string payload and whether v holds String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the element slice and whether v holds Array. The returned
// slice must not be mutated by the caller.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Equal reports structural equality between v and other, recursing into
// Array elements. This is the comparison P1-P5 use to assert round-trips.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders a debug representation of v; it is not the wire encoding
// (see llmcodec/humancodec for that).
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("<invalid Value kind %d>", v.kind)
	}
}
