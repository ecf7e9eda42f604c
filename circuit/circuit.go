// Package circuit implements the reversible-circuit algebra: an ordered gate
// sequence, its exact simulation, and the structural edits (slice, reverse,
// rotate, relabel, swap) the unroller drives its BFS with.
package circuit

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/egementunca/ID-Circuit/errs"
	"github.com/egementunca/ID-Circuit/truthtable"
)

// Circuit is (width, gates): an ordered, finite gate sequence over a fixed
// wire count. Circuits are never mutated in place; every structural edit
// (Push, Pop, Slice, Reverse, Rotate, Relabel, Swap) returns a new value.
type Circuit struct {
	width int
	gates []Gate
}

// New returns the empty circuit over width wires.
func New(width int) *Circuit {
	return &Circuit{width: width}
}

// FromGates builds a circuit from an explicit gate sequence, validating each
// gate against width.
func FromGates(width int, gates []Gate) (*Circuit, error) {
	c := &Circuit{width: width, gates: append([]Gate(nil), gates...)}
	for i, g := range c.gates {
		if err := g.Validate(width); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return c, nil
}

// Width returns the wire count.
func (c *Circuit) Width() int { return c.width }

// Len returns the gate count n.
func (c *Circuit) Len() int { return len(c.gates) }

// Gates exposes the gate sequence by value copy.
func (c *Circuit) Gates() []Gate {
	return append([]Gate(nil), c.gates...)
}

// Gate returns the gate at position i.
func (c *Circuit) Gate(i int) Gate { return c.gates[i] }

// Clone returns an independent copy.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{width: c.width, gates: c.Gates()}
}

// Push returns a new circuit with g appended.
func (c *Circuit) Push(g Gate) (*Circuit, error) {
	if err := g.Validate(c.width); err != nil {
		return nil, err
	}
	return &Circuit{width: c.width, gates: append(c.Gates(), g)}, nil
}

// Pop returns a new circuit with the last gate removed.
func (c *Circuit) Pop() (*Circuit, error) {
	if len(c.gates) == 0 {
		return nil, fmt.Errorf("%w: pop on empty circuit", errs.ErrInvalidCircuit)
	}
	return &Circuit{width: c.width, gates: c.Gates()[:len(c.gates)-1]}, nil
}

// Slice returns the subcircuit gates[i:j].
func (c *Circuit) Slice(i, j int) (*Circuit, error) {
	if i < 0 || j > len(c.gates) || i > j {
		return nil, fmt.Errorf("%w: slice [%d:%d] out of range for length %d", errs.ErrInvalidCircuit, i, j, len(c.gates))
	}
	gates := make([]Gate, j-i)
	copy(gates, c.gates[i:j])
	return &Circuit{width: c.width, gates: gates}, nil
}

// Concat returns self ++ other over the same width.
func (c *Circuit) Concat(other *Circuit) (*Circuit, error) {
	if c.width != other.width {
		return nil, fmt.Errorf("%w: width mismatch %d != %d", errs.ErrInvalidCircuit, c.width, other.width)
	}
	gates := make([]Gate, 0, len(c.gates)+len(other.gates))
	gates = append(gates, c.gates...)
	gates = append(gates, other.gates...)
	return &Circuit{width: c.width, gates: gates}, nil
}

// Reverse returns the circuit with gate order reversed. Because every
// generator gate is its own inverse, reversing an identity circuit yields
// another identity circuit (simulate(reverse(C)) = simulate(C)^-1).
func (c *Circuit) Reverse() *Circuit {
	n := len(c.gates)
	gates := make([]Gate, n)
	for i, g := range c.gates {
		gates[n-1-i] = g
	}
	return &Circuit{width: c.width, gates: gates}
}

// Rotate returns the cyclic shift of the gate sequence by k positions: gate
// at position i moves to position (i-k) mod n. Conjugating an identity
// circuit by any prefix preserves identity semantics, so rotation preserves
// identity-ness.
func (c *Circuit) Rotate(k int) *Circuit {
	n := len(c.gates)
	if n == 0 {
		return &Circuit{width: c.width}
	}
	k = ((k % n) + n) % n
	gates := make([]Gate, n)
	copy(gates, c.gates[k:])
	copy(gates[n-k:], c.gates[:k])
	return &Circuit{width: c.width, gates: gates}
}

// Relabel returns a new circuit in which every target and control is mapped
// through sigma, a permutation of [0, width).
func (c *Circuit) Relabel(sigma []int) (*Circuit, error) {
	if len(sigma) != c.width {
		return nil, fmt.Errorf("%w: permutation length %d != width %d", errs.ErrInvalidCircuit, len(sigma), c.width)
	}
	seen := make([]bool, c.width)
	for _, s := range sigma {
		if s < 0 || s >= c.width || seen[s] {
			return nil, fmt.Errorf("%w: %v is not a permutation of [0,%d)", errs.ErrInvalidCircuit, sigma, c.width)
		}
		seen[s] = true
	}
	gates := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		gates[i] = g.relabel(sigma)
	}
	return &Circuit{width: c.width, gates: gates}, nil
}

// Commute reports whether the gates at positions i and i+1 commute: neither
// writes a wire the other reads or writes. Per spec, target(g1) must not
// appear in controls(g2) ∪ {target(g2)}, and symmetrically for g2 against g1.
func (c *Circuit) Commute(i int) (bool, error) {
	if i < 0 || i+1 >= len(c.gates) {
		return false, fmt.Errorf("%w: position %d has no successor in length %d", errs.ErrInvalidCircuit, i, len(c.gates))
	}
	return commute(c.gates[i], c.gates[i+1]), nil
}

func commute(g1, g2 Gate) bool {
	return !g2.touches(g1.Target) && !g1.touches(g2.Target)
}

// Swap returns the circuit with the gates at positions i, i+1 exchanged, if
// they commute; otherwise ErrNonCommuting.
func (c *Circuit) Swap(i int) (*Circuit, error) {
	ok, err := c.Commute(i)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: positions %d,%d", errs.ErrNonCommuting, i, i+1)
	}
	gates := c.Gates()
	gates[i], gates[i+1] = gates[i+1], gates[i]
	return &Circuit{width: c.width, gates: gates}, nil
}

// CommutingPositions returns every index i < Len()-1 at which adjacent gates
// commute, in ascending order — the move set the unroller's swap step walks.
func (c *Circuit) CommutingPositions() []int {
	var positions []int
	for i := 0; i+1 < len(c.gates); i++ {
		if commute(c.gates[i], c.gates[i+1]) {
			positions = append(positions, i)
		}
	}
	return positions
}

// Simulate returns the permutation of {0,1}^w this circuit's gates realize,
// applied left-to-right.
func (c *Circuit) Simulate() (*truthtable.TruthTable, error) {
	tt, err := truthtable.Identity(c.width)
	if err != nil {
		return nil, err
	}
	for i, g := range c.gates {
		if err := g.Validate(c.width); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		if err := tt.ApplyGate(g.Target, g.Controls); err != nil {
			return nil, err
		}
	}
	return tt, nil
}

// Composition returns the unordered tally (#NOT, #CNOT, #CCNOT).
func (c *Circuit) Composition() (int, int, int) {
	var notN, cnotN, ccnotN int
	for _, g := range c.gates {
		switch g.Kind {
		case NOT:
			notN++
		case CNOT:
			cnotN++
		case CCNOT:
			ccnotN++
		}
	}
	return notN, cnotN, ccnotN
}

// Fingerprint returns the canonical byte-serialization of the ordered gate
// sequence: kind tag, target, sorted controls, per gate. Two circuits have
// equal fingerprints iff they are structurally identical.
func (c *Circuit) Fingerprint() []byte {
	var buf bytes.Buffer
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(c.width))
	binary.BigEndian.PutUint32(hdr[4:8], uint32(len(c.gates)))
	buf.Write(hdr[:])
	for _, g := range c.gates {
		buf.WriteByte(byte(g.Kind))
		var t [4]byte
		binary.BigEndian.PutUint32(t[:], uint32(g.Target))
		buf.Write(t[:])
		buf.WriteByte(byte(len(g.Controls)))
		for _, ctrl := range g.Controls {
			var cb [4]byte
			binary.BigEndian.PutUint32(cb[:], uint32(ctrl))
			buf.Write(cb[:])
		}
	}
	return buf.Bytes()
}

// Equal reports structural equality (same width, same gate sequence).
func (c *Circuit) Equal(other *Circuit) bool {
	if other == nil || c.width != other.width || len(c.gates) != len(other.gates) {
		return false
	}
	for i := range c.gates {
		if !c.gates[i].Equal(other.gates[i]) {
			return false
		}
	}
	return true
}

// InsertLine returns a new circuit over width+1 wires, with an ancilla wire
// inserted at lineID and every existing target/control shifted past it. The
// ancilla starts and stays untouched by any gate (an "empty line").
// Grounded on the Python original's Circuit.add_empty_line.
func (c *Circuit) InsertLine(lineID int) (*Circuit, error) {
	if lineID < 0 || lineID > c.width {
		return nil, fmt.Errorf("%w: line id %d out of range for width %d", errs.ErrInvalidCircuit, lineID, c.width)
	}
	gates := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		gates[i] = shiftGate(g, lineID)
	}
	return &Circuit{width: c.width + 1, gates: gates}, nil
}

// WidenToWithControl is InsertLine plus making the new ancilla wire an
// additional control on every existing gate ("full line"), grounded on the
// Python original's Circuit.add_full_line. Since a gate here carries at
// most two controls, this returns ErrInvalidCircuit if c already contains a
// CCNOT gate, which would need a third control.
func (c *Circuit) WidenToWithControl(lineID int) (*Circuit, error) {
	if lineID < 0 || lineID > c.width {
		return nil, fmt.Errorf("%w: line id %d out of range for width %d", errs.ErrInvalidCircuit, lineID, c.width)
	}
	gates := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		shifted := shiftGate(g, lineID)
		controls := append(append([]int(nil), shifted.Controls...), lineID)
		gate, err := NewGate(shifted.Target, controls)
		if err != nil {
			return nil, err
		}
		gates[i] = gate
	}
	return &Circuit{width: c.width + 1, gates: gates}, nil
}

func shiftGate(g Gate, lineID int) Gate {
	shift := func(w int) int {
		if w >= lineID {
			return w + 1
		}
		return w
	}
	controls := make([]int, len(g.Controls))
	for i, c := range g.Controls {
		controls[i] = shift(c)
	}
	return Gate{Kind: g.Kind, Target: shift(g.Target), Controls: controls}
}
