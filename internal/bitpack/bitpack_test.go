package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smashforge/ssbh/internal/pool"
)

func TestWriteReadBitsRoundTrip(t *testing.T) {
	buf := pool.NewByteBuffer(64)
	w := NewWriter(buf)

	values := []struct {
		v    uint64
		bits int
	}{
		{0, 1},
		{1, 1},
		{5, 3},
		{255, 8},
		{0x3FF, 10},
		{1 << 20, 21},
		{0, 0},
	}

	for _, tc := range values {
		w.WriteBits(tc.v, tc.bits)
	}
	w.Flush()

	r := NewReader(buf.Bytes())
	for _, tc := range values {
		got, ok := r.ReadBits(tc.bits)
		require.True(t, ok)

		want := tc.v
		if tc.bits > 0 && tc.bits < 64 {
			want &= (uint64(1) << uint(tc.bits)) - 1
		}
		require.Equal(t, want, got)
	}
}

func TestWriteBitsAcrossRegisterBoundary(t *testing.T) {
	buf := pool.NewByteBuffer(64)
	w := NewWriter(buf)

	// 5 values of 13 bits each = 65 bits, crossing the 64-bit register
	// boundary exactly once.
	values := []uint64{1, 2, 3, 4, 5}
	for _, v := range values {
		w.WriteBits(v, 13)
	}
	w.Flush()

	r := NewReader(buf.Bytes())
	for _, want := range values {
		got, ok := r.ReadBits(13)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestReadBitsExhausted(t *testing.T) {
	buf := pool.NewByteBuffer(8)
	w := NewWriter(buf)
	w.WriteBits(1, 4)
	w.Flush()

	r := NewReader(buf.Bytes())
	_, ok := r.ReadBits(4)
	require.True(t, ok)

	_, ok = r.ReadBits(8)
	require.False(t, ok, "only 4 padding bits remain in the single flushed byte")
}
