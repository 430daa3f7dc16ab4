package primconv

import (
	"math"
	"testing"
)

type celsius float64
type port uint16

func TestValueOf(t *testing.T) {
	eq(t, ValueOf(int8(-3)), Int8Value(-3))
	eq(t, ValueOf(uint16(9)), Uint16Value(9))
	eq(t, ValueOf(42), Int64Value(42))
	eq(t, ValueOf(uint(42)), Uint64Value(42))
	eq(t, ValueOf(float32(1.5)), Float32Value(1.5))
	eq(t, ValueOf(2.5), Float64Value(2.5))
	eq(t, ValueOf(celsius(36.6)), Float64Value(36.6))
	eq(t, ValueOf(port(8080)), Uint16Value(8080))

	eq(t, KindOf[celsius](), Float64)
	eq(t, KindOf[port](), Uint16)
	eq(t, KindOf[uintptr](), Uint64)
	eq(t, KindOf[int32](), Int32)
}

func TestAs(t *testing.T) {
	i, found := As[int16](Int16Value(-7))
	eq(t, found, true)
	eq(t, i, int16(-7))

	u, found := As[uint64](Uint64Value(math.MaxUint64))
	eq(t, found, true)
	eq(t, u, uint64(math.MaxUint64))

	f, found := As[float32](Float32Value(3.14))
	eq(t, found, true)
	eq(t, f, float32(3.14))

	p, found := As[port](Uint16Value(443))
	eq(t, found, true)
	eq(t, p, port(443))

	_, found = As[int32](Int16Value(7))
	eq(t, found, false)
	_, found = As[float64](Value{})
	eq(t, found, false)
}

func TestValueAccessors(t *testing.T) {
	v := Int8Value(-1)
	eq(t, v.Kind(), Int8)
	eq(t, v.IsValid(), true)
	eq(t, v.Int(), int64(-1))
	eq(t, v.Uint(), uint64(math.MaxUint64))
	eq(t, v.Float(), -1.0)

	v = Uint32Value(math.MaxUint32)
	eq(t, v.Int(), int64(math.MaxUint32))
	eq(t, v.Float(), float64(math.MaxUint32))

	v = Float64Value(-2.75)
	eq(t, v.Int(), int64(-2))
	eq(t, v.Float(), -2.75)

	eq(t, Value{}.IsValid(), false)
	eq(t, Value{}.Int(), int64(0))
	eq(t, Value{}.Uint(), uint64(0))
	eq(t, Value{}.Float(), 0.0)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
		want Value
	}{
		{Int32Value(97), Int8, Int8Value(97)},
		{Int32Value(-1), Uint8, Uint8Value(255)},
		{Int32Value(0x12345678), Int16, Int16Value(0x5678)},
		{Int32Value(0x1234ABCD), Int16, Int16Value(-0x5433)}, // 0xABCD
		{Uint64Value(math.MaxUint64), Int32, Int32Value(-1)},
		{Int8Value(-128), Uint64, Uint64Value(math.MaxUint64 - 127)},
		{Int8Value(-5), Int64, Int64Value(-5)},
		{Uint8Value(200), Int8, Int8Value(-56)},

		{Float64Value(2.99), Int8, Int8Value(2)},
		{Float64Value(-2.99), Int8, Int8Value(-2)},
		{Float64Value(300.7), Uint8, Uint8Value(44)},
		{Float64Value(-1), Uint16, Uint16Value(math.MaxUint16)},
		{Float64Value(math.NaN()), Int32, Int32Value(0)},
		{Float64Value(1e30), Int64, Int64Value(math.MaxInt64)},
		{Float64Value(-1e30), Int64, Int64Value(math.MinInt64)},
		{Float64Value(1e30), Uint64, Uint64Value(math.MaxUint64)},
		{Float64Value(1e19), Uint64, Uint64Value(10000000000000000000)},
		{Float64Value(math.Inf(1)), Uint8, Uint8Value(255)},

		{Int32Value(-7), Float64, Float64Value(-7)},
		{Uint64Value(1 << 40), Float32, Float32Value(1 << 40)},
		{Float64Value(0.1), Float32, Float32Value(0.1)},
		{Float64Value(1e300), Float32, Float32Value(float32(math.Inf(1)))},
		{Float32Value(0.5), Extended, ExtendedValue(0.5)},
	}
	for _, tt := range tests {
		got, err := tt.v.Convert(tt.kind)
		if err != nil {
			t.Fatalf("** %v.Convert(%v) failed: %v", tt.v, tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("** %v (%v).Convert(%v) = %v, wanted %v", tt.v, tt.v.Kind(), tt.kind, got, tt.want)
		}
	}

	_, err := Int8Value(1).Convert(KindInvalid)
	isErr(t, err, ErrInvalidKind)
	_, err = Value{}.Convert(Int8)
	isErr(t, err, ErrInvalidKind)
}
