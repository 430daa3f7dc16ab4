package primconv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKind    = errors.New("invalid kind")
	ErrOutOfRange     = errors.New("value out of range")
	ErrMalformedInput = errors.New("malformed input")
)

// ConversionError describes a failed parse, format or conversion. Err is
// always one of the sentinel errors above, so callers match with errors.Is.
type ConversionError struct {
	Op    string
	Kind  Kind
	Input string
	Msg   string
	Err   error
}

func convErrf(op string, kind Kind, input string, err error, format string, args ...any) error {
	var msg string
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &ConversionError{Op: op, Kind: kind, Input: input, Msg: msg, Err: err}
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Error() string {
	var buf strings.Builder
	buf.WriteString("primconv: ")
	buf.WriteString(e.Op)
	if e.Input != "" {
		buf.WriteByte(' ')
		buf.WriteString(fmt.Sprintf("%q", e.Input))
	}
	if e.Kind != KindInvalid {
		buf.WriteString(" as ")
		buf.WriteString(e.Kind.String())
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s at %d: %v: (%d) %x", e.Msg, e.Off, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s at %d: (%d) %x", e.Msg, e.Off, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s at %d: %v: (%d) %x...%x", e.Msg, e.Off, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s at %d: (%d) %x...%x", e.Msg, e.Off, n, p, s)
		}
	}
}
