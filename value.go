package primconv

import (
	"math"
	"reflect"
)

type (
	IntegerValue interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
	}
	FloatValue interface {
		~float32 | ~float64
	}
	Number interface {
		IntegerValue | FloatValue
	}
)

// Value is a number tagged with its Kind. Integers keep their two's-complement
// bits sign- or zero-extended to 64 bits, floats keep math.Float64bits of the
// value. The zero Value is invalid.
type Value struct {
	kind Kind
	word uint64
}

func Int8Value(v int8) Value       { return Value{Int8, uint64(int64(v))} }
func Int16Value(v int16) Value     { return Value{Int16, uint64(int64(v))} }
func Int32Value(v int32) Value     { return Value{Int32, uint64(int64(v))} }
func Int64Value(v int64) Value     { return Value{Int64, uint64(v)} }
func Uint8Value(v uint8) Value     { return Value{Uint8, uint64(v)} }
func Uint16Value(v uint16) Value   { return Value{Uint16, uint64(v)} }
func Uint32Value(v uint32) Value   { return Value{Uint32, uint64(v)} }
func Uint64Value(v uint64) Value   { return Value{Uint64, v} }
func Float32Value(v float32) Value { return Value{Float32, math.Float64bits(float64(v))} }
func Float64Value(v float64) Value { return Value{Float64, math.Float64bits(v)} }
func ExtendedValue(v float64) Value {
	return Value{Extended, math.Float64bits(v)}
}

// KindOf returns the kind matching T, including named types such as
// `type Celsius float64`. int, uint and uintptr map to the 64-bit kinds.
func KindOf[T Number]() Kind {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64, reflect.Int:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	default:
		return KindInvalid
	}
}

func ValueOf[T Number](v T) Value {
	k := KindOf[T]()
	switch {
	case k.IsSigned():
		return Value{k, uint64(int64(v))}
	case k.IsUnsigned():
		return Value{k, uint64(v)}
	default:
		return Value{k, math.Float64bits(float64(v))}
	}
}

// As returns the value as T if T's kind is exactly v's kind.
func As[T Number](v Value) (T, bool) {
	var zero T
	if KindOf[T]() != v.kind || !v.kind.Valid() {
		return zero, false
	}
	switch {
	case v.kind.IsSigned():
		return T(int64(v.word)), true
	case v.kind.IsUnsigned():
		return T(v.word), true
	default:
		return T(math.Float64frombits(v.word)), true
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsValid() bool {
	return v.kind.Valid()
}

// Int returns the value as int64. Unsigned values above MaxInt64 wrap,
// floats are truncated toward zero with saturation.
func (v Value) Int() int64 {
	switch {
	case v.kind.IsSigned():
		return int64(v.word)
	case v.kind.IsUnsigned():
		return int64(v.word)
	case v.kind.IsFloat():
		return int64(floatToWord(math.Float64frombits(v.word), true))
	default:
		return 0
	}
}

func (v Value) Uint() uint64 {
	switch {
	case v.kind.IsInteger():
		return v.word
	case v.kind.IsFloat():
		return floatToWord(math.Float64frombits(v.word), false)
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch {
	case v.kind.IsSigned():
		return float64(int64(v.word))
	case v.kind.IsUnsigned():
		return float64(v.word)
	case v.kind.IsFloat():
		return math.Float64frombits(v.word)
	default:
		return 0
	}
}

func (v Value) String() string {
	if !v.kind.Valid() {
		return "<invalid>"
	}
	return string(Default.appendValue(nil, v))
}

// Convert casts v to kind the way a C cast would, spelled out explicitly:
//
//   - integer to integer keeps the low-order bits, sign-extending signed kinds;
//   - float to integer truncates toward zero; NaN becomes 0 and values outside
//     the 64-bit range saturate before the low-order bits are taken;
//   - anything to float rounds to nearest; float32 overflow becomes ±Inf.
func (v Value) Convert(kind Kind) (Value, error) {
	if !kind.Valid() {
		return Value{}, convErrf("convert", kind, "", ErrInvalidKind, "")
	}
	if !v.kind.Valid() {
		return Value{}, convErrf("convert", v.kind, "", ErrInvalidKind, "source value has no kind")
	}
	if kind == v.kind {
		return v, nil
	}
	switch {
	case kind.IsInteger():
		var w uint64
		if v.kind.IsFloat() {
			w = floatToWord(math.Float64frombits(v.word), kind.IsSigned())
		} else {
			w = v.word
		}
		return Value{kind, narrowWord(w, kind)}, nil
	default:
		return Value{kind, math.Float64bits(roundFloat(v.Float(), kind))}, nil
	}
}

// narrowWord truncates w to the width of kind, then sign- or zero-extends it
// back to 64 bits.
func narrowWord(w uint64, kind Kind) uint64 {
	switch kind {
	case Int8:
		return uint64(int64(int8(w)))
	case Int16:
		return uint64(int64(int16(w)))
	case Int32:
		return uint64(int64(int32(w)))
	case Uint8:
		return uint64(uint8(w))
	case Uint16:
		return uint64(uint16(w))
	case Uint32:
		return uint64(uint32(w))
	default:
		return w
	}
}

func floatToWord(f float64, signed bool) uint64 {
	const twoTo63 = 1 << 63
	const twoTo64 = 1 << 64
	switch {
	case math.IsNaN(f):
		return 0
	case f >= twoTo64:
		if signed {
			return math.MaxInt64
		}
		return math.MaxUint64
	case f >= twoTo63:
		if signed {
			return math.MaxInt64
		}
		return uint64(f)
	case f < -twoTo63:
		return 1 << 63 // math.MinInt64 as bits
	default:
		// negative values headed for unsigned kinds wrap, as with an
		// intermediate cast through long
		return uint64(int64(f))
	}
}

func roundFloat(f float64, kind Kind) float64 {
	if kind == Float32 {
		return float64(float32(f))
	}
	return f
}
