package circuit

import (
	"fmt"
	"sort"

	"github.com/egementunca/ID-Circuit/errs"
)

// Kind tags a gate as a single-target NOT, a controlled-NOT, or a Toffoli
// (CCNOT). It is a closed set of three values, never an open hierarchy;
// Validate ties each kind to its control count (0, 1, 2).
type Kind uint8

const (
	NOT Kind = iota
	CNOT
	CCNOT
)

func (k Kind) String() string {
	switch k {
	case NOT:
		return "NOT"
	case CNOT:
		return "CNOT"
	case CCNOT:
		return "CCNOT"
	default:
		return "UNKNOWN"
	}
}

// Gate is {kind, target, controls}. Controls are always kept sorted; this is
// the gate's canonical form and fingerprinting assumes it.
type Gate struct {
	Kind     Kind
	Target   int
	Controls []int
}

// NewNOT builds a single-target NOT gate.
func NewNOT(target int) Gate {
	return Gate{Kind: NOT, Target: target}
}

// NewCNOT builds a controlled-NOT gate.
func NewCNOT(control, target int) Gate {
	return Gate{Kind: CNOT, Target: target, Controls: []int{control}}
}

// NewCCNOT builds a Toffoli gate. Controls are stored sorted.
func NewCCNOT(c1, c2, target int) Gate {
	controls := []int{c1, c2}
	sort.Ints(controls)
	return Gate{Kind: CCNOT, Target: target, Controls: controls}
}

// NewGate builds a gate from an explicit control set, normalizing it to
// sorted order and inferring Kind from len(controls). Any ingest path (SAT
// model decoding, storage deserialization) should go through this
// constructor so the canonical-controls invariant holds everywhere.
func NewGate(target int, controls []int) (Gate, error) {
	switch len(controls) {
	case 0:
		return NewNOT(target), nil
	case 1:
		return NewCNOT(controls[0], target), nil
	case 2:
		return NewCCNOT(controls[0], controls[1], target), nil
	default:
		return Gate{}, fmt.Errorf("%w: gate has %d controls, expected 0, 1, or 2", errs.ErrInvalidCircuit, len(controls))
	}
}

// Validate checks target/control bounds and that target is not also a
// control, for the given circuit width.
func (g Gate) Validate(width int) error {
	if g.Target < 0 || g.Target >= width {
		return fmt.Errorf("%w: target %d out of range for width %d", errs.ErrInvalidCircuit, g.Target, width)
	}
	wantLen := map[Kind]int{NOT: 0, CNOT: 1, CCNOT: 2}[g.Kind]
	if len(g.Controls) != wantLen {
		return fmt.Errorf("%w: kind %s has %d controls, want %d", errs.ErrInvalidCircuit, g.Kind, len(g.Controls), wantLen)
	}
	seen := map[int]bool{g.Target: true}
	for _, c := range g.Controls {
		if c < 0 || c >= width {
			return fmt.Errorf("%w: control %d out of range for width %d", errs.ErrInvalidCircuit, c, width)
		}
		if seen[c] {
			return fmt.Errorf("%w: wire %d repeated in target/controls", errs.ErrInvalidCircuit, c)
		}
		seen[c] = true
	}
	return nil
}

// Equal reports structural equality.
func (g Gate) Equal(other Gate) bool {
	if g.Kind != other.Kind || g.Target != other.Target || len(g.Controls) != len(other.Controls) {
		return false
	}
	for i := range g.Controls {
		if g.Controls[i] != other.Controls[i] {
			return false
		}
	}
	return true
}

// touches reports whether the gate reads or writes wire w.
func (g Gate) touches(w int) bool {
	if g.Target == w {
		return true
	}
	for _, c := range g.Controls {
		if c == w {
			return true
		}
	}
	return false
}

// relabel returns the gate obtained by mapping target and every control
// through sigma, a permutation of [0, width).
func (g Gate) relabel(sigma []int) Gate {
	controls := make([]int, len(g.Controls))
	for i, c := range g.Controls {
		controls[i] = sigma[c]
	}
	sort.Ints(controls)
	return Gate{Kind: g.Kind, Target: sigma[g.Target], Controls: controls}
}

// fire reports whether the gate's controls are all set in the bit-row of x
// (x's bits packed one-per-wire, same convention as truthtable rows), i.e.
// whether applying g at state x flips x's target bit.
func (g Gate) fire(x int) bool {
	for _, c := range g.Controls {
		if (x>>uint(c))&1 == 0 {
			return false
		}
	}
	return true
}
