// Package codec implements the TOON value model and the bidirectional
// codec between that model and TOON text: scalar rendering and scanning,
// the tabular array analyzer, key folding and path expansion, the line
// emitter, the line parser, and the streaming event bridge.
package codec

import "fmt"

// Kind tags the concrete shape a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the TOON data model: exactly one of null, bool, number (f64),
// string, array, or object. Values are immutable once constructed; the
// encoder, decoder, and analyzer never mutate a Value they are given.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  Object
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64. Non-finite inputs (NaN, +Inf, -Inf) are folded
// to null at construction time, matching the encoder's collapse rule so
// that no non-finite number ever lives inside a Value (spec invariant).
func Number(n float64) Value {
	if isNonFinite(n) {
		return Null()
	}
	return Value{kind: KindNumber, n: n}
}

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered sequence of values.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ArrayFrom wraps an existing slice without copying; callers must treat
// the slice as owned by the returned Value from this point on.
func ArrayFrom(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps an Object.
func ObjectValue(obj Object) Value {
	return Value{kind: KindObject, obj: obj}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the float64 payload; valid only when Kind() == KindNumber.
func (v Value) Number() float64 { return v.n }

// String returns the string payload; valid only when Kind() == KindString.
func (v Value) String() string { return v.s }

// Array returns the item slice; valid only when Kind() == KindArray. The
// returned slice must not be mutated by callers.
func (v Value) Array() []Value { return v.arr }

// Object returns the object payload; valid only when Kind() == KindObject.
func (v Value) Object() Object { return v.obj }

// IsScalar reports whether v is null, bool, number, or string.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Field is a single key/value entry in an ordered Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered, duplicate-free sequence of fields. Order is
// insertion order; equality of keys is byte-exact.
type Object struct {
	Fields []Field
}

// NewObject constructs an Object from the given fields, in order.
func NewObject(fields ...Field) Object {
	return Object{Fields: fields}
}

// IsEmpty reports whether the object has zero fields.
func (o Object) IsEmpty() bool { return len(o.Fields) == 0 }

// Get returns the value bound to key and whether it was present.
func (o Object) Get(key string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// WithField returns a new Object with field appended. It does not mutate o.
func (o Object) WithField(key string, v Value) Object {
	fields := make([]Field, len(o.Fields), len(o.Fields)+1)
	copy(fields, o.Fields)
	fields = append(fields, Field{Key: key, Value: v})
	return Object{Fields: fields}
}

func isNonFinite(n float64) bool {
	return n != n || n > maxFinite || n < -maxFinite
}

const maxFinite = 1.7976931348623157e+308

// Equal reports deep, order-sensitive equality between two values. Two
// objects are equal only if their fields match in the same order; this
// is stricter than JSON-value equality modulo key order, which is
// intentional for round-trip tests that also assert order preservation.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj.Fields) != len(b.obj.Fields) {
			return false
		}
		for i := range a.obj.Fields {
			fa, fb := a.obj.Fields[i], b.obj.Fields[i]
			if fa.Key != fb.Key || !Equal(fa.Value, fb.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) GoString() string {
	return fmt.Sprintf("codec.Value{kind:%s}", v.kind)
}
