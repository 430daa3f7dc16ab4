package primconv

import (
	"math"
	"strconv"
)

// FormatValue converts v to kind (see Value.Convert) and formats it. maxLen
// is the capacity of the caller's buffer including a terminator, so at most
// maxLen-1 bytes of text are returned. The second result is the length of the
// complete text, which exceeds maxLen-1 when the text was cut short.
func (c *Converter) FormatValue(v Value, kind Kind, maxLen int) (string, int, error) {
	var scratch [32]byte
	buf, err := c.AppendValue(scratch[:0], v, kind)
	if err != nil {
		return "", 0, err
	}
	n := len(buf)
	if maxLen <= 0 {
		return "", n, nil
	}
	if n > maxLen-1 {
		buf = buf[:maxLen-1]
	}
	return string(buf), n, nil
}

// PutValue writes the text of v as kind into dst, snprintf style: at most
// len(dst)-1 bytes followed by a NUL byte. It returns the length the full text
// needs, excluding the NUL. dst is left untouched on error or when empty.
func (c *Converter) PutValue(dst []byte, v Value, kind Kind) (int, error) {
	var scratch [32]byte
	buf, err := c.AppendValue(scratch[:0], v, kind)
	if err != nil {
		return 0, err
	}
	if len(dst) == 0 {
		return len(buf), nil
	}
	n := putRaw(dst[:len(dst)-1], buf)
	dst[n] = 0
	return len(buf), nil
}

// AppendValue appends the complete text of v as kind to buf.
func (c *Converter) AppendValue(buf []byte, v Value, kind Kind) ([]byte, error) {
	if !kind.Valid() {
		return buf, convErrf("format", kind, "", ErrInvalidKind, "")
	}
	cv, err := v.Convert(kind)
	if err != nil {
		return buf, err
	}
	return c.appendValue(buf, cv), nil
}

func (c *Converter) appendValue(buf []byte, v Value) []byte {
	switch {
	case v.kind.IsSigned():
		return strconv.AppendInt(buf, int64(v.word), 10)
	case v.kind.IsUnsigned():
		return strconv.AppendUint(buf, v.word, 10)
	default:
		bits := 64
		if v.kind == Float32 {
			bits = 32
		}
		return strconv.AppendFloat(buf, math.Float64frombits(v.word), 'f', c.prec, bits)
	}
}

// Truncated reports whether a text of the given needed length was cut short
// by a buffer of capacity maxLen (terminator included).
func Truncated(needed, maxLen int) bool {
	return needed > maxLen-1
}
