package primconv

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Extended // extended precision; Go has no native type, so held as float64

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid: "invalid",
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Uint8:       "uint8",
	Uint16:      "uint16",
	Uint32:      "uint32",
	Uint64:      "uint64",
	Float32:     "float32",
	Float64:     "float64",
	Extended:    "extended",
}

// cNames maps the C spellings to kinds, assuming an LP64 platform.
var cNames = map[string]Kind{
	"char":               Int8,
	"signed char":        Int8,
	"unsigned char":      Uint8,
	"short":              Int16,
	"unsigned short":     Uint16,
	"int":                Int32,
	"unsigned int":       Uint32,
	"unsigned":           Uint32,
	"long":               Int64,
	"unsigned long":      Uint64,
	"long long":          Int64,
	"unsigned long long": Uint64,
	"float":              Float32,
	"double":             Float64,
	"long double":        Extended,
}

func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// CName returns the conventional C spelling of the kind on LP64 platforms.
func (k Kind) CName() string {
	switch k {
	case Int8:
		return "char"
	case Int16:
		return "short"
	case Int32:
		return "int"
	case Int64:
		return "long"
	case Uint8:
		return "unsigned char"
	case Uint16:
		return "unsigned short"
	case Uint32:
		return "unsigned int"
	case Uint64:
		return "unsigned long"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Extended:
		return "long double"
	default:
		return ""
	}
}

// Size returns the number of bytes a C compiler on amd64 reserves for the
// kind. Extended reports 16 even though values are held at float64 precision.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Extended:
		return 16
	default:
		return 0
	}
}

// BitSize is the width used when parsing and range-checking.
func (k Kind) BitSize() int {
	if k == Extended {
		return 64
	}
	return k.Size() * 8
}

func (k Kind) IsSigned() bool {
	return k >= Int8 && k <= Int64
}

func (k Kind) IsUnsigned() bool {
	return k >= Uint8 && k <= Uint64
}

func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k Kind) IsFloat() bool {
	return k >= Float32 && k <= Extended
}

func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind accepts both Go names ("int8", "float64", "extended") and C type
// names ("unsigned short", "long double"). Matching ignores case and
// collapses runs of spaces.
func ParseKind(name string) (Kind, error) {
	s := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	if k, ok := cNames[s]; ok {
		return k, nil
	}
	return KindInvalid, convErrf("parse kind", KindInvalid, name, ErrInvalidKind, "")
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, convErrf("marshal kind", k, "", ErrInvalidKind, "")
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
