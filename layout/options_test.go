package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReaderOptionsWithStrictTrailingGarbage(t *testing.T) {
	opts, err := NewReaderOptions(WithStrictTrailingGarbage(true))
	require.NoError(t, err)
	require.True(t, opts.StrictTrailingGarbage)

	opts, err = NewReaderOptions()
	require.NoError(t, err)
	require.False(t, opts.StrictTrailingGarbage)
}

func TestNewWriterOptionsValidatesBufferSize(t *testing.T) {
	opts, err := NewWriterOptions(WithInitialBufferSize(4096))
	require.NoError(t, err)
	require.Equal(t, 4096, opts.InitialBufferSize)

	_, err = NewWriterOptions(WithInitialBufferSize(-1))
	require.Error(t, err)
}

func TestNewWriterWithOptionsUsesRequestedCapacity(t *testing.T) {
	w := NewWriterWithOptions(WriterOptions{InitialBufferSize: 256})
	defer w.Release()

	require.GreaterOrEqual(t, cap(w.Bytes()), 256)
}

func TestNewWriterWithOptionsZeroFallsBackToDefault(t *testing.T) {
	w := NewWriterWithOptions(WriterOptions{})
	defer w.Release()

	w.WriteU32(0xdeadbeef)
	require.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, w.Bytes())
}
