package valuestore

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/andreyvit/primconv"
)

func checksummed(data []byte) []byte {
	return binary.BigEndian.AppendUint64(slices.Clone(data), xxhash.Sum64(data))
}

func TestRecord(t *testing.T) {
	for _, v := range []primconv.Value{
		primconv.Int8Value(-128),
		primconv.Uint32Value(4294967291),
		primconv.Float32Value(3.14),
		primconv.ExtendedValue(-1e300),
	} {
		rec := encodeRecord([]byte("prefix"), v)
		back, err := decodeRecord(rec[len("prefix"):])
		ok(t, err)
		eq(t, back, v)
	}
}

func TestRecordErrors(t *testing.T) {
	_, err := decodeRecord([]byte{1, 2, 3})
	if !errors.Is(err, ErrCorrupted) {
		t.Fatalf("** got %v, wanted ErrCorrupted", err)
	}

	rec := encodeRecord(nil, primconv.Int64Value(42))
	rec[len(rec)-1] ^= 0xFF
	_, err = decodeRecord(rec)
	if !errors.Is(err, ErrCorrupted) {
		t.Fatalf("** got %v, wanted ErrCorrupted", err)
	}

	// intact checksum over a payload that is not a valid value
	rec = encodeRecord(nil, primconv.Int64Value(42))
	bad := append([]byte{0x01}, rec[1:9]...) // int8 kind with 8 payload bytes
	_, err = decodeRecord(checksummed(bad))
	var de *primconv.DataError
	if !errors.As(err, &de) || errors.Is(err, ErrCorrupted) {
		t.Fatalf("** got %v, wanted a non-checksum *primconv.DataError", err)
	}
}
