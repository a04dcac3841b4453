package ptrvec

import (
	"fmt"
	"strconv"
	"unsafe"
)

// Kind identifies which field of a Value is set.
type Kind uint8

const (
	KindInvalid Kind = iota // zero Value
	KindInt                 // signed integer of any width
	KindFloat32             // single-precision float
	KindFloat64             // double-precision float
	KindChar                // single byte character
	KindString              // Go string
	KindPointer             // raw pointer, never dereferenced by Vec
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindPointer:
		return "pointer"
	default:
		return "invalid"
	}
}

// Value is a tagged scalar, string or raw pointer stored by value.
// The zero Value has KindInvalid.
type Value struct {
	kind Kind
	n    int64 // KindInt, KindChar
	f    float64
	s    string
	p    unsafe.Pointer
}

// Int wraps a signed integer of any width.
func Int(v int64) Value { return Value{kind: KindInt, n: v} }

// Float32 wraps a single-precision float. It is stored and returned without
// widening loss.
func Float32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }

// Float64 wraps a double-precision float.
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// Char wraps a single byte character.
func Char(v byte) Value { return Value{kind: KindChar, n: int64(v)} }

// String wraps a string. The Value shares the string's bytes.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Pointer wraps a raw pointer, typically into arena memory. The Vec never
// dereferences or frees it.
func Pointer(p unsafe.Pointer) Value { return Value{kind: KindPointer, p: p} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer held by v; ok is false unless v is KindInt.
func (v Value) AsInt() (int64, bool) { return v.n, v.kind == KindInt }

// AsFloat32 returns the float held by v; ok is false unless v is KindFloat32.
func (v Value) AsFloat32() (float32, bool) { return float32(v.f), v.kind == KindFloat32 }

// AsFloat64 returns the float held by v; ok is false unless v is KindFloat64.
func (v Value) AsFloat64() (float64, bool) { return v.f, v.kind == KindFloat64 }

// AsChar returns the byte held by v; ok is false unless v is KindChar.
func (v Value) AsChar() (byte, bool) { return byte(v.n), v.kind == KindChar }

// AsString returns the string held by v; ok is false unless v is KindString.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsPointer returns the pointer held by v; ok is false unless v is KindPointer.
func (v Value) AsPointer() (unsafe.Pointer, bool) { return v.p, v.kind == KindPointer }

// String formats v for debugging: numbers plainly, chars and strings
// quoted, pointers in hex.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindChar:
		return strconv.QuoteRune(rune(v.n))
	case KindString:
		return strconv.Quote(v.s)
	case KindPointer:
		return fmt.Sprintf("%p", v.p)
	default:
		return "<invalid>"
	}
}
