package synth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egementunca/ID-Circuit/circuit"
	"github.com/egementunca/ID-Circuit/errs"
	"github.com/egementunca/ID-Circuit/satsolver"
	"github.com/egementunca/ID-Circuit/truthtable"
)

func TestBuildLibrarySizes(t *testing.T) {
	for w := 2; w <= 4; w++ {
		lib := buildLibrary(w)
		wantNot := w
		wantCnot := w * (w - 1)
		wantCcnot := w * (w - 1) * (w - 2) / 2
		require.Len(t, lib, wantNot+wantCnot+wantCcnot)
	}
}

func TestSynthesizeCNOTPair(t *testing.T) {
	// Two CNOTs with the same control/target cancel: CNOT(0,1); CNOT(0,1) = I.
	// So realizing the identity with exactly 2 steps over width 2 must be SAT,
	// and with exactly 1 step must be UNSAT (no single generator is identity).
	id, err := truthtable.Identity(2)
	require.NoError(t, err)

	backend := satsolver.GopherSAT{}

	_, err = Synthesize(context.Background(), backend, 2, 1, id, Options{})
	require.ErrorIs(t, err, errs.ErrUnsat)

	c, err := Synthesize(context.Background(), backend, 2, 2, id, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	tt, err := c.Simulate()
	require.NoError(t, err)
	require.True(t, tt.IsIdentity())
}

func TestDisableEmptyLinesForcesEveryWireTouched(t *testing.T) {
	// Without the constraint, NOT(0); NOT(0) realizes the identity over width
	// 2 while never touching wire 1 at all, so DisableEmptyLines must rule
	// that family of solutions out.
	id, err := truthtable.Identity(2)
	require.NoError(t, err)
	backend := satsolver.GopherSAT{}

	c, err := Synthesize(context.Background(), backend, 2, 2, id, Options{DisableEmptyLines: true})
	require.NoError(t, err)

	touched := make([]bool, 2)
	for i := 0; i < c.Len(); i++ {
		g := c.Gate(i)
		touched[g.Target] = true
		for _, ctrl := range g.Controls {
			touched[ctrl] = true
		}
	}
	require.True(t, touched[0], "wire 0 must be touched")
	require.True(t, touched[1], "wire 1 must be touched")

	tt, err := c.Simulate()
	require.NoError(t, err)
	require.True(t, tt.IsIdentity())
}

func TestDisableFullControlLinesForbidsAnAlwaysControllingWire(t *testing.T) {
	// CNOT(0,1); CNOT(0,1) realizes the identity over width 2 with wire 0 as
	// a control on every step, so DisableFullControlLines must rule that
	// family of solutions out.
	id, err := truthtable.Identity(2)
	require.NoError(t, err)
	backend := satsolver.GopherSAT{}

	c, err := Synthesize(context.Background(), backend, 2, 2, id, Options{DisableFullControlLines: true})
	require.NoError(t, err)

	for wire := 0; wire < 2; wire++ {
		controlsEveryStep := true
		for i := 0; i < c.Len(); i++ {
			g := c.Gate(i)
			used := false
			for _, ctrl := range g.Controls {
				if ctrl == wire {
					used = true
				}
			}
			if !used {
				controlsEveryStep = false
				break
			}
		}
		require.False(t, controlsEveryStep, "wire %d must not control every step", wire)
	}

	tt, err := c.Simulate()
	require.NoError(t, err)
	require.True(t, tt.IsIdentity())
}

func TestSynthesizeExcludesPriorSolution(t *testing.T) {
	id, err := truthtable.Identity(2)
	require.NoError(t, err)
	backend := satsolver.GopherSAT{}

	first, err := Synthesize(context.Background(), backend, 2, 2, id, Options{})
	require.NoError(t, err)

	second, err := Synthesize(context.Background(), backend, 2, 2, id, Options{
		Exclude: [][]circuit.Gate{first.Gates()},
	})
	if err == nil {
		require.False(t, first.Equal(second))
	}
}
