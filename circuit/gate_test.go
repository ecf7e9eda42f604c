package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInfersKindFromControlCount(t *testing.T) {
	g, err := NewGate(2, nil)
	require.NoError(t, err)
	require.Equal(t, NOT, g.Kind)

	g, err = NewGate(2, []int{0})
	require.NoError(t, err)
	require.Equal(t, CNOT, g.Kind)

	g, err = NewGate(2, []int{1, 0})
	require.NoError(t, err)
	require.Equal(t, CCNOT, g.Kind)
	require.Equal(t, []int{0, 1}, g.Controls, "controls must be canonicalized to sorted order")
}

func TestNewRejectsThreeControls(t *testing.T) {
	_, err := NewGate(0, []int{1, 2, 3})
	require.Error(t, err)
}

func TestValidateCatchesOutOfRangeAndRepeatedWires(t *testing.T) {
	require.Error(t, NewNOT(5).Validate(3))
	require.Error(t, NewCNOT(1, 1).Validate(3))
}

func TestEqualIgnoresControlOrderAtConstructionTime(t *testing.T) {
	a := NewCCNOT(0, 1, 2)
	b := NewCCNOT(1, 0, 2)
	require.True(t, a.Equal(b))
}
