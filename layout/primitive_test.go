package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat16RoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 2.5, 65504, -65504, 1.0 / 3}

	for _, v := range values {
		bits := Float32ToFloat16(v)
		got := Float16ToFloat32(bits)
		require.InDelta(t, float64(v), float64(got), 1e-2, "value %v", v)
	}
}

func TestFloat16SpecialValues(t *testing.T) {
	require.Equal(t, float32(0), Float16ToFloat32(0x0000))
	require.True(t, math.Signbit(float64(Float16ToFloat32(0x8000))))

	inf := Float16ToFloat32(0x7C00)
	require.True(t, math.IsInf(float64(inf), 1))

	negInf := Float16ToFloat32(0xFC00)
	require.True(t, math.IsInf(float64(negInf), -1))

	nan := Float16ToFloat32(0x7E00)
	require.True(t, math.IsNaN(float64(nan)))
}

func TestFloat16Subnormal(t *testing.T) {
	// Smallest positive subnormal binary16: 2^-24.
	const bits = uint16(0x0001)
	got := Float16ToFloat32(bits)
	want := float32(math.Pow(2, -24))
	require.InDelta(t, float64(want), float64(got), 1e-10)

	roundTripped := Float32ToFloat16(got)
	require.Equal(t, bits, roundTripped)
}

func TestFloat16MaxFinite(t *testing.T) {
	const bits = uint16(0x7BFF) // max finite binary16
	got := Float16ToFloat32(bits)
	require.InDelta(t, 65504.0, float64(got), 1)
}
