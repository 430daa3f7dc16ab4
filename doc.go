/*
Package primconv converts between text and numbers of a caller-chosen
primitive kind, and back.

A Kind names one of a closed set of numeric representations: signed and
unsigned integers of 8, 16, 32 and 64 bits, plus single, double and extended
precision floats. A Value is a number tagged with its Kind; it replaces the
untyped destination pointer of the classic C pattern.

We implement:

1. ParseText, turning a token into a Value of the requested kind.

2. FormatValue, PutValue and AppendValue, turning a Value into text of the
requested kind. FormatValue and PutValue follow the snprintf contract: output
is cut to the caller's capacity, and the full length is reported.

3. Value.Convert, the explicit version of a C cast between kinds.

4. Binary, text and MessagePack encodings of a Value.

# Policies

**Whitespace.** Leading and trailing whitespace is ignored when parsing.

**Bases.** Decimal only, unless Options.BasePrefixes is set, in which case
0x, 0o, 0b and leading-zero octal literals are accepted.

**Malformed input.** Text without digits, or with trailing garbage, is
ErrMalformedInput. We never fall back to a silent zero.

**Range.** By default (NarrowStrict) a literal that the target kind cannot hold
is ErrOutOfRange, and so is a negative literal for an unsigned kind. NarrowWrap
mimics strtol plus a cast: parse at 64 bits, keep the low-order bits.

**Formatting.** Integers in base 10; unsigned kinds never print a sign. Floats
in fixed-point notation with two fractional digits unless Options.Precision
says otherwise. Formatting a value as another kind converts it first, so -5
formatted as Uint32 is 4294967291.

**Extended.** Go has no extended precision type. Extended values are parsed,
held and formatted at float64 precision; Kind.Size still reports 16 bytes,
matching C long double on amd64.

## Binary encoding

**Value**: kind (1 byte), then the number in the kind's native width,
big-endian. Float32 uses IEEE single bits; Float64 and Extended use IEEE double
bits (8 bytes).

**MessagePack**: array of two, kind name and the number.

**Text**: "kind:number", e.g. "uint16:1234", with shortest round-trip float
digits.
*/
package primconv
