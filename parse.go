package primconv

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseText parses text as a number of the given kind. Surrounding
// whitespace is ignored and a leading sign is allowed. Text without digits or
// with anything after the number is ErrMalformedInput; there is no silent
// zero result.
func (c *Converter) ParseText(text string, kind Kind) (Value, error) {
	if !kind.Valid() {
		return Value{}, convErrf("parse", kind, text, ErrInvalidKind, "")
	}
	s := strings.TrimFunc(text, unicode.IsSpace)
	if s == "" {
		return Value{}, convErrf("parse", kind, text, ErrMalformedInput, "no digits")
	}
	switch {
	case kind.IsSigned():
		return c.parseSigned(text, s, kind)
	case kind.IsUnsigned():
		return c.parseUnsigned(text, s, kind)
	default:
		return c.parseFloat(text, s, kind)
	}
}

func (c *Converter) parseSigned(text, s string, kind Kind) (Value, error) {
	bits := kind.BitSize()
	if c.narrowing == NarrowWrap {
		bits = 64
	}
	v, err := strconv.ParseInt(s, c.base, bits)
	if err != nil {
		return Value{}, numErr(text, kind, err)
	}
	return Value{kind, narrowWord(uint64(v), kind)}, nil
}

func (c *Converter) parseUnsigned(text, s string, kind Kind) (Value, error) {
	neg := false
	digits := s
	switch s[0] {
	case '+':
		digits = s[1:]
	case '-':
		neg, digits = true, s[1:]
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return Value{}, convErrf("parse", kind, text, ErrMalformedInput, "no digits")
	}

	if c.narrowing == NarrowWrap {
		u, err := strconv.ParseUint(digits, c.base, 64)
		if err != nil {
			return Value{}, numErr(text, kind, err)
		}
		if neg {
			// strtoul accepts a minus sign and negates in unsigned arithmetic
			u = -u
		}
		return Value{kind, narrowWord(u, kind)}, nil
	}

	u, err := strconv.ParseUint(digits, c.base, kind.BitSize())
	if err != nil {
		return Value{}, numErr(text, kind, err)
	}
	if neg && u != 0 {
		return Value{}, convErrf("parse", kind, text, ErrOutOfRange, "negative value for unsigned kind")
	}
	return Value{kind, u}, nil
}

func (c *Converter) parseFloat(text, s string, kind Kind) (Value, error) {
	bits := kind.BitSize()
	if c.narrowing == NarrowWrap {
		bits = 64
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return Value{}, numErr(text, kind, err)
	}
	return Value{kind, math.Float64bits(roundFloat(f, kind))}, nil
}

func numErr(text string, kind Kind, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return convErrf("parse", kind, text, ErrOutOfRange, "")
	}
	return convErrf("parse", kind, text, ErrMalformedInput, "")
}
