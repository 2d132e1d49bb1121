package record

import (
	"encoding/binary"
	"fmt"
)

// byteOrder fixes the endianness used for every inter-rank message (spec
// §6: "fixed endianness per platform; implementation must not mix
// endian"). Big-endian is chosen once, here, and never varied.
var byteOrder = binary.BigEndian

// WireSize returns the encoded size in bytes of one record whose payload
// is payloadSize bytes long: one 64-bit key followed by the payload.
func WireSize(payloadSize int) int {
	return 8 + payloadSize
}

// Encode appends the wire representation of seq (message tag 0's body, per
// spec §6) to dst and returns the extended slice. Every record in seq must
// carry a payload of exactly payloadSize bytes.
func Encode(dst []byte, seq []Record, payloadSize int) ([]byte, error) {
	for i, r := range seq {
		if len(r.Payload) != payloadSize {
			return nil, fmt.Errorf("record %d: payload length %d, want %d", i, len(r.Payload), payloadSize)
		}
		var keyBuf [8]byte
		byteOrder.PutUint64(keyBuf[:], r.Key)
		dst = append(dst, keyBuf[:]...)
		dst = append(dst, r.Payload...)
	}
	return dst, nil
}

// Decode reads n fixed-payloadSize records from src, each prefixed by its
// 64-bit key, returning the decoded records and the number of bytes
// consumed. It is the receiving half of the wire protocol in spec §6.
func Decode(src []byte, n, payloadSize int) ([]Record, int, error) {
	stride := WireSize(payloadSize)
	need := stride * n
	if len(src) < need {
		return nil, 0, fmt.Errorf("short buffer: need %d bytes for %d records, have %d", need, n, len(src))
	}
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		off := i * stride
		key := byteOrder.Uint64(src[off : off+8])
		payload := make([]byte, payloadSize)
		copy(payload, src[off+8:off+stride])
		out[i] = Record{Key: key, Payload: payload}
	}
	return out, need, nil
}
