package valuestore

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"

	"github.com/andreyvit/primconv"
)

var ErrCorrupted = errors.New("corrupted record")

const checksumSize = 8

// record = value (primconv binary encoding) checksum:64
//
// The checksum is a big-endian xxhash64 of the encoded value.
func encodeRecord(buf []byte, v primconv.Value) []byte {
	start := len(buf)
	buf = v.AppendBinary(buf)
	return binary.BigEndian.AppendUint64(buf, xxhash.Sum64(buf[start:]))
}

func decodeRecord(raw []byte) (primconv.Value, error) {
	if len(raw) < 1+checksumSize {
		return primconv.Value{}, &primconv.DataError{Data: raw, Off: 0, Err: ErrCorrupted, Msg: "record too short"}
	}
	n := len(raw) - checksumSize
	data, sum := raw[:n], binary.BigEndian.Uint64(raw[n:])
	if actual := xxhash.Sum64(data); actual != sum {
		return primconv.Value{}, &primconv.DataError{Data: raw, Off: n, Err: ErrCorrupted, Msg: "checksum mismatch"}
	}
	var v primconv.Value
	if err := v.UnmarshalBinary(data); err != nil {
		return primconv.Value{}, err
	}
	return v, nil
}
