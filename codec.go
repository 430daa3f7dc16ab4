package primconv

import (
	"bytes"
	"encoding"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ encoding.BinaryMarshaler   = Value{}
	_ encoding.BinaryUnmarshaler = (*Value)(nil)
	_ encoding.TextMarshaler     = Value{}
	_ encoding.TextUnmarshaler   = (*Value)(nil)
	_ msgpack.CustomEncoder      = Value{}
	_ msgpack.CustomDecoder      = (*Value)(nil)
)

// wireSize is the number of payload bytes after the kind byte.
func (k Kind) wireSize() int {
	if k == Extended {
		return 8
	}
	return k.Size()
}

// AppendBinary appends the kind byte followed by the value in its native
// width, big-endian. Float32 is stored as IEEE single bits, Float64 and
// Extended as IEEE double bits.
func (v Value) AppendBinary(buf []byte) []byte {
	if !v.kind.Valid() {
		panic(fmt.Errorf("cannot encode %v", v.kind))
	}
	buf = appendUint8(buf, byte(v.kind))
	switch v.kind {
	case Int8, Uint8:
		return appendUint8(buf, uint8(v.word))
	case Int16, Uint16:
		return appendUint16(buf, uint16(v.word))
	case Int32, Uint32:
		return appendUint32(buf, uint32(v.word))
	case Float32:
		return appendUint32(buf, math.Float32bits(float32(math.Float64frombits(v.word))))
	default:
		return appendUint64(buf, v.word)
	}
}

// DecodeBinary decodes one value from the front of data and returns the
// remaining bytes.
func DecodeBinary(data []byte) (Value, []byte, error) {
	d := makeByteDecoder(data)
	kb, err := d.Byte()
	if err != nil {
		return Value{}, nil, err
	}
	kind := Kind(kb)
	if !kind.Valid() {
		return Value{}, nil, dataErrf(data, 0, ErrInvalidKind, "invalid value: bad kind %d", kb)
	}
	w, err := d.FixedUint(kind.wireSize())
	if err != nil {
		return Value{}, nil, err
	}
	switch kind {
	case Float32:
		w = math.Float64bits(float64(math.Float32frombits(uint32(w))))
	default:
		w = narrowWord(w, kind)
	}
	return Value{kind, w}, d.Buf, nil
}

func (v Value) MarshalBinary() ([]byte, error) {
	if !v.kind.Valid() {
		return nil, convErrf("marshal", v.kind, "", ErrInvalidKind, "")
	}
	return v.AppendBinary(make([]byte, 0, 1+v.kind.wireSize())), nil
}

func (v *Value) UnmarshalBinary(data []byte) error {
	r, rest, err := DecodeBinary(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return dataErrf(data, len(data)-len(rest), nil, "invalid value: %d trailing bytes", len(rest))
	}
	*v = r
	return nil
}

var textConverter = New(Options{Precision: -1})

// MarshalText produces "kind:number", using the shortest float text that
// parses back to the same value.
func (v Value) MarshalText() ([]byte, error) {
	if !v.kind.Valid() {
		return nil, convErrf("marshal", v.kind, "", ErrInvalidKind, "")
	}
	buf := append([]byte(v.kind.String()), ':')
	return textConverter.appendValue(buf, v), nil
}

func (v *Value) UnmarshalText(text []byte) error {
	i := bytes.IndexByte(text, ':')
	if i < 0 {
		return convErrf("unmarshal", KindInvalid, string(text), ErrMalformedInput, "missing kind prefix")
	}
	kind, err := ParseKind(string(text[:i]))
	if err != nil {
		return err
	}
	r, err := textConverter.ParseText(string(text[i+1:]), kind)
	if err != nil {
		return err
	}
	*v = r
	return nil
}

// EncodeMsgpack writes a two-element array: kind name, then the number.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !v.kind.Valid() {
		return convErrf("marshal", v.kind, "", ErrInvalidKind, "")
	}
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(v.kind.String()); err != nil {
		return err
	}
	switch {
	case v.kind.IsSigned():
		return enc.EncodeInt(int64(v.word))
	case v.kind.IsUnsigned():
		return enc.EncodeUint(v.word)
	case v.kind == Float32:
		return enc.EncodeFloat32(float32(math.Float64frombits(v.word)))
	default:
		return enc.EncodeFloat64(math.Float64frombits(v.word))
	}
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("primconv: msgpack value: got array of %d, wanted 2", n)
	}
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}
	kind, err := ParseKind(name)
	if err != nil {
		return err
	}

	var r Value
	switch {
	case kind.IsSigned():
		i, err := dec.DecodeInt64()
		if err != nil {
			return err
		}
		r = Int64Value(i)
		if narrowWord(r.word, kind) != r.word {
			return convErrf("unmarshal", kind, fmt.Sprint(i), ErrOutOfRange, "")
		}
	case kind.IsUnsigned():
		u, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		r = Uint64Value(u)
		if narrowWord(u, kind) != u {
			return convErrf("unmarshal", kind, fmt.Sprint(u), ErrOutOfRange, "")
		}
	default:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return err
		}
		r = Float64Value(f)
		if kind == Float32 && float64(float32(f)) != f && !math.IsNaN(f) {
			return convErrf("unmarshal", kind, fmt.Sprint(f), ErrOutOfRange, "")
		}
	}
	r.kind = kind
	*v = r
	return nil
}
