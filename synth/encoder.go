// Package synth builds the SAT encoding that answers "does a k-gate circuit
// over the NOT/CNOT/CCNOT library realize permutation pi?" and decodes a
// satisfying model back into a circuit.Circuit. It is grounded on the Python
// original's sat_revsynth.synthesizers.circuit_synthesizer, translated from
// per-gate free indicator variables into selector-gated transition
// constraints so an unselected candidate never contends for the same
// target-bit variable a selected one writes (see cnf.Builder.CondIff /
// CondXorEq).
package synth

import (
	"fmt"

	"github.com/egementunca/ID-Circuit/circuit"
	"github.com/egementunca/ID-Circuit/cnf"
	"github.com/egementunca/ID-Circuit/errs"
	"github.com/egementunca/ID-Circuit/satsolver"
	"github.com/egementunca/ID-Circuit/truthtable"
)

// Encoder builds the CNF for a fixed width, gate budget k, and target
// permutation. One Encoder is single-use: Build may only be called once.
type Encoder struct {
	width  int
	steps  int
	target *truthtable.TruthTable
	lib    []candidate

	excludeCircuits [][]circuit.Gate // exact k-gate solutions to rule out
	noEmptyLines     bool
	noFullLines      bool
}

// NewEncoder returns an encoder for realizing target with exactly steps
// gates over width wires.
func NewEncoder(width, steps int, target *truthtable.TruthTable) (*Encoder, error) {
	if target.Width() != width {
		return nil, fmt.Errorf("%w: target width %d != %d", errs.ErrInvalidCircuit, target.Width(), width)
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: negative step budget %d", errs.ErrInvalidCircuit, steps)
	}
	return &Encoder{
		width:  width,
		steps:  steps,
		target: target,
		lib:    buildLibrary(width),
	}, nil
}

// DisableEmptyLines forbids solutions in which some wire is never touched,
// as target or control, by any gate in the synthesized circuit — carried
// forward from the Python original's disable_empty_lines flag, off by
// default.
func (e *Encoder) DisableEmptyLines() { e.noEmptyLines = true }

// DisableFullControlLines forbids solutions in which some wire is used as a
// control on every single gate of the synthesized circuit — carried forward
// from disable_full_control_lines, off by default.
func (e *Encoder) DisableFullControlLines() { e.noFullLines = true }

// ExcludeCircuit rules out an exact k-gate solution already found, so a
// re-solve over the same (width, steps, target) yields a distinct circuit.
// Grounded on the Python original's CircuitSynthesizer.exclude_solution.
func (e *Encoder) ExcludeCircuit(gates []circuit.Gate) {
	e.excludeCircuits = append(e.excludeCircuits, append([]circuit.Gate(nil), gates...))
}

// built is the variable layout produced by Build, kept around so Decode can
// read a model back out without recomputing indices.
type built struct {
	b         *cnf.Builder
	width     int
	steps     int
	rows      int
	lib       []candidate
	state     [][][]int // [t][row][bit]
	selectors [][]int   // [t][libIndex]
	trueVar   int
}

// Build emits every clause and returns the satsolver.Problem to hand to a
// Backend, along with an opaque layout Decode needs.
func (e *Encoder) Build() (satsolver.Problem, *built, error) {
	rows := 1 << e.width
	b := cnf.NewBuilder()

	bt := &built{b: b, width: e.width, steps: e.steps, rows: rows, lib: e.lib}

	bt.trueVar = b.NewVar()
	b.Fix(bt.trueVar)

	bt.state = make([][][]int, e.steps+1)
	for t := 0; t <= e.steps; t++ {
		bt.state[t] = make([][]int, rows)
		for i := 0; i < rows; i++ {
			bt.state[t][i] = b.NewVars(e.width)
		}
	}
	for i := 0; i < rows; i++ {
		for bit := 0; bit < e.width; bit++ {
			b.FixBool(bt.state[0][i][bit], (i>>uint(bit))&1 == 1)
		}
	}
	for i := 0; i < rows; i++ {
		img := e.target.At(i)
		for bit := 0; bit < e.width; bit++ {
			b.FixBool(bt.state[e.steps][i][bit], (img>>uint(bit))&1 == 1)
		}
	}

	bt.selectors = make([][]int, e.steps)
	for t := 0; t < e.steps; t++ {
		sel := b.NewVars(len(e.lib))
		bt.selectors[t] = sel
		b.ExactlyOne(sel)
	}

	if e.noEmptyLines {
		e.constrainNoEmptyLines(bt)
	}
	if e.noFullLines {
		e.constrainNoFullLines(bt)
	}

	for t := 0; t < e.steps; t++ {
		for i := 0; i < rows; i++ {
			for v, cand := range e.lib {
				sel := bt.selectors[t][v]
				controlLit := bt.trueVar
				switch len(cand.controls) {
				case 0:
					controlLit = bt.trueVar
				case 1:
					controlLit = bt.state[t][i][cand.controls[0]]
				case 2:
					and := b.NewVar()
					b.And(and, bt.state[t][i][cand.controls[0]], bt.state[t][i][cand.controls[1]])
					controlLit = and
				}
				b.CondXorEq(sel, bt.state[t+1][i][cand.target], bt.state[t][i][cand.target], controlLit)
				for bit := 0; bit < e.width; bit++ {
					if bit == cand.target {
						continue
					}
					b.CondIff(sel, bt.state[t+1][i][bit], bt.state[t][i][bit])
				}
			}
		}
	}

	for _, prior := range e.excludeCircuits {
		e.excludeClause(bt, prior)
	}

	return satsolver.BuilderProblem(b.NumVars(), b.Clauses()), bt, nil
}

// excludeClause forbids the selector assignment that reproduces prior
// exactly: at least one step must pick a different library entry.
func (e *Encoder) excludeClause(bt *built, prior []circuit.Gate) {
	if len(prior) != e.steps {
		return
	}
	clause := make([]int, 0, e.steps)
	for t, g := range prior {
		idx := indexOf(e.lib, g)
		if idx < 0 {
			return
		}
		clause = append(clause, -bt.selectors[t][idx])
	}
	bt.b.AddClause(clause...)
}

func indexOf(lib []candidate, g circuit.Gate) int {
	for i, cand := range lib {
		if cand.target != g.Target || len(cand.controls) != len(g.Controls) {
			continue
		}
		match := true
		for j := range cand.controls {
			if cand.controls[j] != g.Controls[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// candidateTouches reports whether cand reads or writes wire, as either its
// target or one of its controls.
func candidateTouches(cand candidate, wire int) bool {
	if cand.target == wire {
		return true
	}
	for _, c := range cand.controls {
		if c == wire {
			return true
		}
	}
	return false
}

// candidateControls reports whether cand uses wire as a control.
func candidateControls(cand candidate, wire int) bool {
	for _, c := range cand.controls {
		if c == wire {
			return true
		}
	}
	return false
}

// constrainNoEmptyLines forces every wire to be touched (as target or
// control) by at least one selected gate across the whole solution, mirroring
// the Python original's disable_empty_lines: a per-wire "at least one of
// target[gid][lid], control[gid][lid] over all gates gid" clause, expressed
// here directly as one OR clause over every (step, candidate) pair touching
// the wire, since each step's selector choice already encodes which
// candidate is "active" at that step.
func (e *Encoder) constrainNoEmptyLines(bt *built) {
	for wire := 0; wire < e.width; wire++ {
		var lits []int
		for t := 0; t < e.steps; t++ {
			for v, cand := range e.lib {
				if candidateTouches(cand, wire) {
					lits = append(lits, bt.selectors[t][v])
				}
			}
		}
		bt.b.AddClause(lits...)
	}
}

// constrainNoFullLines forces every wire to be free of control duty on at
// least one step, mirroring the Python original's disable_full_control_lines:
// a per-wire "at least one gate does not use this wire as a control" clause.
// Per step exactly one candidate is selected, so "this step's gate doesn't
// control wire" is the OR of that step's selectors over candidates that
// don't use wire as a control; ORing that across every step gives the full
// per-wire clause.
func (e *Encoder) constrainNoFullLines(bt *built) {
	for wire := 0; wire < e.width; wire++ {
		var lits []int
		for t := 0; t < e.steps; t++ {
			for v, cand := range e.lib {
				if !candidateControls(cand, wire) {
					lits = append(lits, bt.selectors[t][v])
				}
			}
		}
		bt.b.AddClause(lits...)
	}
}

// Decode reads the selected gate library entry at every step out of a
// satisfying model and assembles the resulting circuit.
func Decode(bt *built, m satsolver.Model) (*circuit.Circuit, error) {
	c := circuit.New(bt.width)
	for t := 0; t < bt.steps; t++ {
		chosen := -1
		for v, sel := range bt.selectors[t] {
			if m.Value(sel) {
				chosen = v
				break
			}
		}
		if chosen < 0 {
			return nil, fmt.Errorf("%w: no selector set at step %d", errs.ErrSolverFailure, t)
		}
		g, err := bt.lib[chosen].toGate()
		if err != nil {
			return nil, err
		}
		c, err = c.Push(g)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}
