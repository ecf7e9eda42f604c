package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommutePredicate(t *testing.T) {
	c, err := FromGates(3, []Gate{NewCNOT(0, 1), NewCNOT(0, 2)})
	require.NoError(t, err)
	ok, err := c.Commute(0)
	require.NoError(t, err)
	require.True(t, ok, "two CNOTs sharing a control but distinct targets commute")

	c2, err := FromGates(2, []Gate{NewCNOT(0, 1), NewNOT(1)})
	require.NoError(t, err)
	ok, err = c2.Commute(0)
	require.NoError(t, err)
	require.False(t, ok, "second gate's target is the first gate's target: they don't commute")
}

func TestSwapRejectsNonCommuting(t *testing.T) {
	c, err := FromGates(2, []Gate{NewCNOT(0, 1), NewNOT(1)})
	require.NoError(t, err)
	_, err = c.Swap(0)
	require.Error(t, err)
}

func TestSwapPreservesSimulation(t *testing.T) {
	c, err := FromGates(3, []Gate{NewCNOT(0, 1), NewCNOT(0, 2)})
	require.NoError(t, err)
	before, err := c.Simulate()
	require.NoError(t, err)

	swapped, err := c.Swap(0)
	require.NoError(t, err)
	after, err := swapped.Simulate()
	require.NoError(t, err)
	require.True(t, before.Equal(after))
}

func TestRotateAndReversePreserveIdentity(t *testing.T) {
	c, err := FromGates(2, []Gate{NewCNOT(0, 1), NewCNOT(0, 1)})
	require.NoError(t, err)
	tt, err := c.Simulate()
	require.NoError(t, err)
	require.True(t, tt.IsIdentity())

	for k := 0; k < c.Len(); k++ {
		rotated := c.Rotate(k)
		rtt, err := rotated.Simulate()
		require.NoError(t, err)
		require.True(t, rtt.IsIdentity())
	}

	rtt, err := c.Reverse().Simulate()
	require.NoError(t, err)
	require.True(t, rtt.IsIdentity())
}

func TestRelabelPreservesIdentity(t *testing.T) {
	c, err := FromGates(2, []Gate{NewCNOT(0, 1), NewCNOT(0, 1)})
	require.NoError(t, err)
	relabeled, err := c.Relabel([]int{1, 0})
	require.NoError(t, err)
	tt, err := relabeled.Simulate()
	require.NoError(t, err)
	require.True(t, tt.IsIdentity())
}

func TestFingerprintDistinguishesStructurallyDifferentCircuits(t *testing.T) {
	a, err := FromGates(2, []Gate{NewCNOT(0, 1)})
	require.NoError(t, err)
	b, err := FromGates(2, []Gate{NewCNOT(1, 0)})
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestInsertLineShiftsWiresAndLeavesAncillaUntouched(t *testing.T) {
	c, err := FromGates(2, []Gate{NewCNOT(0, 1)})
	require.NoError(t, err)
	widened, err := c.InsertLine(1)
	require.NoError(t, err)
	require.Equal(t, 3, widened.Width())
	require.Equal(t, 0, widened.Gate(0).Controls[0])
	require.Equal(t, 2, widened.Gate(0).Target)
}

func TestWidenToWithControlAddsControlToEveryGate(t *testing.T) {
	c, err := FromGates(1, []Gate{NewNOT(0)})
	require.NoError(t, err)
	widened, err := c.WidenToWithControl(1)
	require.NoError(t, err)
	require.Equal(t, CNOT, widened.Gate(0).Kind)
	require.Equal(t, []int{1}, widened.Gate(0).Controls)
}
