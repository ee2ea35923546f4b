package rle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressRepeatCounter(t *testing.T) {
	// counter 0xFD (253) => repeat = 257-253 = 4 copies of the next byte.
	decoded := Decompress([]byte{0xFD, 0x00})
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, decoded)
}

func TestDecompressLiteralCounter(t *testing.T) {
	decoded := Decompress([]byte{0x02, 0x11, 0x22, 0x33})
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, decoded)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(500)
		data := make([]byte, n)
		for i := range data {
			// Bias toward repeats so both code paths of Compress are exercised.
			if i > 0 && rng.Intn(3) == 0 {
				data[i] = data[i-1]
			} else {
				data[i] = byte(rng.Intn(256))
			}
		}

		compressed := Compress(data)
		decoded := Decompress(compressed)
		require.Equal(t, data, decoded, "round trip mismatch for trial %d", trial)
	}
}

func TestDecompressN(t *testing.T) {
	compressed := []byte{0x02, 0x11, 0x22, 0x33, 0xFD, 0x00}
	decoded, consumed := DecompressN(compressed, 7)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x00, 0x00, 0x00, 0x00}, decoded)
	assert.Equal(t, len(compressed), consumed)
}
