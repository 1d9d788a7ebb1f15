package layout

import (
	"fmt"

	"github.com/smashforge/ssbh/internal/options"
)

// ReaderOptions controls Reader-adjacent policy that is not itself part of
// the on-disk format: how strictly a caller wants malformed-but-parseable
// input treated. Grounded in the teacher's NumericEncoderConfig/
// TextEncoderConfig embedding pattern — a small config struct built up by
// functional options rather than threaded field-by-field through every
// read call.
type ReaderOptions struct {
	// StrictTrailingGarbage promotes a non-empty TrailingGarbage diagnostic
	// from a warning to a hard error. Off by default, since spec.md treats
	// trailing bytes as informational, not a parse failure.
	StrictTrailingGarbage bool
}

// ReaderOption configures a ReaderOptions value.
type ReaderOption = options.Option[*ReaderOptions]

// WithStrictTrailingGarbage sets ReaderOptions.StrictTrailingGarbage.
func WithStrictTrailingGarbage(strict bool) ReaderOption {
	return options.NoError(func(o *ReaderOptions) {
		o.StrictTrailingGarbage = strict
	})
}

// NewReaderOptions builds a ReaderOptions from zero or more ReaderOption
// values, applied in order.
func NewReaderOptions(opts ...ReaderOption) (ReaderOptions, error) {
	o := ReaderOptions{}
	if err := options.Apply(&o, opts...); err != nil {
		return ReaderOptions{}, err
	}

	return o, nil
}

// WriterOptions controls Writer construction details that do not affect the
// bytes produced, only how the writer allocates while producing them.
type WriterOptions struct {
	// InitialBufferSize overrides the pooled buffer's starting capacity.
	// Zero means use the package-level default pool (pool.BufferDefaultSize).
	// Callers writing a large Mesh or Anim record up front can avoid the
	// buffer's amortized growth steps by sizing this to the expected output.
	InitialBufferSize int
}

// WriterOption configures a WriterOptions value.
type WriterOption = options.Option[*WriterOptions]

// WithInitialBufferSize sets WriterOptions.InitialBufferSize.
func WithInitialBufferSize(n int) WriterOption {
	return options.New(func(o *WriterOptions) error {
		if n < 0 {
			return fmt.Errorf("ssbh: initial buffer size must be non-negative, got %d", n)
		}
		o.InitialBufferSize = n

		return nil
	})
}

// NewWriterOptions builds a WriterOptions from zero or more WriterOption
// values, applied in order.
func NewWriterOptions(opts ...WriterOption) (WriterOptions, error) {
	o := WriterOptions{}
	if err := options.Apply(&o, opts...); err != nil {
		return WriterOptions{}, err
	}

	return o, nil
}
