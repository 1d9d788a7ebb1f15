package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smashforge/ssbh/internal/options"
	"github.com/smashforge/ssbh/layout"
)

// These tests drive the generic Option/Func/New/NoError/Apply mechanism
// through layout.ReaderOptions and layout.WriterOptions — two real option
// targets built on this package — rather than a standalone fixture type.
// Package options itself has no domain shape to test against; its callers
// (layout, data) do, so the exercise happens here, from outside, to avoid
// an import cycle back into this package.

func TestApplyAppliesOptionsInOrder(t *testing.T) {
	o := layout.ReaderOptions{}

	opts := []options.Option[*layout.ReaderOptions]{
		layout.WithStrictTrailingGarbage(true),
		layout.WithStrictTrailingGarbage(false),
	}

	err := options.Apply(&o, opts...)
	require.NoError(t, err)
	require.False(t, o.StrictTrailingGarbage, "last option applied should win")
}

func TestApplyPropagatesErrorFromOption(t *testing.T) {
	o := layout.WriterOptions{}

	opts := []options.Option[*layout.WriterOptions]{
		layout.WithInitialBufferSize(256),
		layout.WithInitialBufferSize(-1), // invalid, should stop here
		layout.WithInitialBufferSize(9999),
	}

	err := options.Apply(&o, opts...)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-negative")
	require.Equal(t, 256, o.InitialBufferSize, "option before the failing one should still have applied")
}

func TestApplyWithEmptyOptionsIsNoop(t *testing.T) {
	o := layout.WriterOptions{}

	err := options.Apply(&o)
	require.NoError(t, err)
	require.Equal(t, 0, o.InitialBufferSize)
}

func TestNewWrapsAnErrorReturningFunc(t *testing.T) {
	o := layout.WriterOptions{}

	opt := options.New(func(wo *layout.WriterOptions) error {
		wo.InitialBufferSize = 4096
		return nil
	})

	require.NoError(t, options.Apply(&o, opt))
	require.Equal(t, 4096, o.InitialBufferSize)
}

func TestNoErrorWrapsAnInfallibleFunc(t *testing.T) {
	o := layout.ReaderOptions{}

	opt := options.NoError(func(ro *layout.ReaderOptions) {
		ro.StrictTrailingGarbage = true
	})

	require.NoError(t, options.Apply(&o, opt))
	require.True(t, o.StrictTrailingGarbage)
}

// TestOptionMechanismWorksAcrossDistinctTargetTypes exercises the same
// generic Apply/New/NoError trio against two unrelated target types in one
// test, the way the repo itself uses the mechanism for both ReaderOptions
// and WriterOptions.
func TestOptionMechanismWorksAcrossDistinctTargetTypes(t *testing.T) {
	ro, err := layout.NewReaderOptions(layout.WithStrictTrailingGarbage(true))
	require.NoError(t, err)
	require.True(t, ro.StrictTrailingGarbage)

	wo, err := layout.NewWriterOptions(layout.WithInitialBufferSize(128))
	require.NoError(t, err)
	require.Equal(t, 128, wo.InitialBufferSize)
}
