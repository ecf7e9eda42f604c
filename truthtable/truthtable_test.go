package truthtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityIsIdentity(t *testing.T) {
	tt, err := Identity(3)
	require.NoError(t, err)
	require.True(t, tt.IsIdentity())
	require.Equal(t, 8, tt.Len())
}

func TestApplyGateFlipsOnlyWhenControlsSet(t *testing.T) {
	tt, err := Identity(2)
	require.NoError(t, err)
	require.NoError(t, tt.ApplyGate(1, []int{0}))

	// row 0b01 (control set) should have its target bit (1) flipped: 1 -> 3
	require.Equal(t, 3, tt.At(1))
	// row 0b00 (control unset) is unchanged
	require.Equal(t, 0, tt.At(0))
}

func TestApplyGateTwiceIsIdentity(t *testing.T) {
	tt, err := Identity(3)
	require.NoError(t, err)
	require.NoError(t, tt.ApplyGate(2, []int{0, 1}))
	require.NoError(t, tt.ApplyGate(2, []int{0, 1}))
	require.True(t, tt.IsIdentity())
}

func TestApplyGateComposesSequentially(t *testing.T) {
	// CNOT(0->1) then CNOT(1->0): rows must reflect the state after the
	// first gate, not the original row index, when the second gate's
	// control is checked.
	tt, err := Identity(2)
	require.NoError(t, err)
	require.NoError(t, tt.ApplyGate(1, []int{0}))
	require.NoError(t, tt.ApplyGate(0, []int{1}))

	want := map[int]int{0: 0, 1: 2, 2: 3, 3: 1}
	for in, out := range want {
		require.Equal(t, out, tt.At(in), "input %d", in)
	}
}

func TestInverseRoundTrips(t *testing.T) {
	tt, err := Identity(2)
	require.NoError(t, err)
	require.NoError(t, tt.ApplyGate(1, []int{0}))

	inv := tt.Inverse()
	composed, err := tt.Compose(inv)
	require.NoError(t, err)
	require.True(t, composed.IsIdentity())
}

func TestPermuteIsInvolutionUnderSelfInversePermutation(t *testing.T) {
	tt, err := Identity(2)
	require.NoError(t, err)
	require.NoError(t, tt.ApplyGate(1, []int{0}))

	swap := []int{1, 0}
	once, err := tt.Permute(swap)
	require.NoError(t, err)
	twice, err := once.Permute(swap)
	require.NoError(t, err)
	require.True(t, tt.Equal(twice))
}

func TestRejectsWidthBeyondMax(t *testing.T) {
	_, err := Identity(MaxWidth + 1)
	require.Error(t, err)
}
