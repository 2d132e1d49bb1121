package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	g := NewDefaultGenerator()
	seq := g.Generate(10, 8)

	buf, err := Encode(nil, seq, 8)
	require.NoError(t, err)
	require.Len(t, buf, WireSize(8)*10)

	decoded, n, err := Decode(buf, 10, 8)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, seq, decoded)
}

func TestEncode_RejectsWrongPayloadLength(t *testing.T) {
	seq := []Record{{Key: 1, Payload: []byte("short")}}
	_, err := Encode(nil, seq, 8)
	require.Error(t, err)
}

func TestDecode_RejectsShortBuffer(t *testing.T) {
	_, _, err := Decode(make([]byte, 4), 1, 8)
	require.Error(t, err)
}

func TestEncode_AppendsToExistingBuffer(t *testing.T) {
	seq := []Record{{Key: 7, Payload: []byte{1, 2}}}
	prefix := []byte{0xAA}
	buf, err := Encode(prefix, seq, 2)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), buf[0])

	decoded, _, err := Decode(buf[1:], 1, 2)
	require.NoError(t, err)
	require.Equal(t, seq, decoded)
}
