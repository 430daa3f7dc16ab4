package primconv

import "fmt"

type Narrowing int

const (
	// NarrowStrict parses at the width of the target kind, so anything the
	// kind cannot hold is ErrOutOfRange.
	NarrowStrict Narrowing = iota

	// NarrowWrap parses at 64-bit width and then keeps the low-order bits,
	// which is what strtol followed by a cast does. Only values beyond 64
	// bits are ErrOutOfRange.
	NarrowWrap
)

func (n Narrowing) String() string {
	switch n {
	case NarrowStrict:
		return "strict"
	case NarrowWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

func (n Narrowing) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Narrowing) UnmarshalText(text []byte) error {
	switch string(text) {
	case "strict", "":
		*n = NarrowStrict
	case "wrap":
		*n = NarrowWrap
	default:
		return fmt.Errorf("primconv: unknown narrowing %q", text)
	}
	return nil
}

const DefaultPrecision = 2

type Options struct {
	// Precision is the number of fractional digits used for float kinds.
	// Zero means DefaultPrecision, negative means the shortest text that
	// parses back to the same value.
	Precision int

	Narrowing Narrowing

	// BasePrefixes enables 0x, 0o, 0b and leading-zero octal integer
	// literals (and digit-separating underscores). Decimal only otherwise.
	BasePrefixes bool
}

// Converter parses and formats values. It holds no mutable state and is safe
// for concurrent use.
type Converter struct {
	prec      int
	narrowing Narrowing
	base      int
}

var Default = New(Options{})

func New(opt Options) *Converter {
	c := &Converter{
		prec:      opt.Precision,
		narrowing: opt.Narrowing,
		base:      10,
	}
	if c.prec == 0 {
		c.prec = DefaultPrecision
	} else if c.prec < 0 {
		c.prec = -1
	}
	if opt.BasePrefixes {
		c.base = 0
	}
	return c
}

func (c *Converter) Precision() int {
	return c.prec
}

func (c *Converter) Narrowing() Narrowing {
	return c.narrowing
}

func ParseText(text string, kind Kind) (Value, error) {
	return Default.ParseText(text, kind)
}

func FormatValue(v Value, kind Kind, maxLen int) (string, int, error) {
	return Default.FormatValue(v, kind, maxLen)
}

func PutValue(dst []byte, v Value, kind Kind) (int, error) {
	return Default.PutValue(dst, v, kind)
}

func AppendValue(buf []byte, v Value, kind Kind) ([]byte, error) {
	return Default.AppendValue(buf, v, kind)
}
