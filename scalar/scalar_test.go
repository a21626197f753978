package scalar_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/scalar"
)

func TestIsFinite(t *testing.T) {
	require.True(t, scalar.IsFinite(0))
	require.True(t, scalar.IsFinite(-123.456))
	require.False(t, scalar.IsFinite(math.NaN()))
	require.False(t, scalar.IsFinite(math.Inf(1)))
	require.False(t, scalar.IsFinite(math.Inf(-1)))
}

func TestRecip(t *testing.T) {
	require.Equal(t, 0.5, scalar.Recip(2))
	require.False(t, scalar.IsFinite(scalar.Recip(0)))
}

func TestMaxMin(t *testing.T) {
	require.Equal(t, scalar.Real(3), scalar.Max(3, 1))
	require.Equal(t, scalar.Real(1), scalar.Min(3, 1))
}

func TestSqrtPow(t *testing.T) {
	require.InDelta(t, 3.0, scalar.Sqrt(9), 1e-12)
	require.InDelta(t, 8.0, scalar.Pow(2, 3), 1e-12)
}
