// Package truthtable implements the exact permutation model of a reversible
// circuit: a bijection over {0,1}^w represented as a dense array of 2^w
// integers, together with the single gate-application primitive every other
// engine in this module is built on.
package truthtable

import (
	"fmt"

	"github.com/egementunca/ID-Circuit/errs"
)

// MaxWidth bounds the practical ceiling for dense truth-table storage; wider
// tables overflow a convenient int-sized row count well before they'd be
// useful to the SAT encoder anyway.
const MaxWidth = 24

// TruthTable is a bijection T: [0, 2^w) -> [0, 2^w), stored as an array of
// 2^w row values. Row i holds the image of input assignment i.
type TruthTable struct {
	width int
	rows  []int
}

// Identity returns the identity permutation on w bits.
func Identity(width int) (*TruthTable, error) {
	if width < 0 || width > MaxWidth {
		return nil, fmt.Errorf("%w: width %d out of range", errs.ErrEncodingLimit, width)
	}
	size := 1 << width
	rows := make([]int, size)
	for i := range rows {
		rows[i] = i
	}
	return &TruthTable{width: width, rows: rows}, nil
}

// FromRows builds a truth table from an explicit row slice; it is the
// caller's responsibility to pass a permutation of [0, 2^w).
func FromRows(width int, rows []int) (*TruthTable, error) {
	if width < 0 || width > MaxWidth {
		return nil, fmt.Errorf("%w: width %d out of range", errs.ErrEncodingLimit, width)
	}
	if len(rows) != 1<<width {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", errs.ErrInvalidCircuit, 1<<width, len(rows))
	}
	cp := make([]int, len(rows))
	copy(cp, rows)
	return &TruthTable{width: width, rows: cp}, nil
}

// Width returns the number of bits this table ranges over.
func (t *TruthTable) Width() int { return t.width }

// Len returns 2^w, the number of rows.
func (t *TruthTable) Len() int { return len(t.rows) }

// Rows exposes the underlying permutation by value copy.
func (t *TruthTable) Rows() []int {
	cp := make([]int, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// At returns the image of input i.
func (t *TruthTable) At(i int) int { return t.rows[i] }

// Clone returns an independent copy.
func (t *TruthTable) Clone() *TruthTable {
	return &TruthTable{width: t.width, rows: t.Rows()}
}

// IsIdentity reports whether T[i] == i for every row.
func (t *TruthTable) IsIdentity() bool {
	for i, v := range t.rows {
		if v != i {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same width, same row values.
func (t *TruthTable) Equal(other *TruthTable) bool {
	if other == nil || t.width != other.width || len(t.rows) != len(other.rows) {
		return false
	}
	for i, v := range t.rows {
		if other.rows[i] != v {
			return false
		}
	}
	return true
}

// ApplyGate mutates the table in place: for every row i, if every control bit
// of the row's current image is 1, the target bit of that image is flipped.
// Checking against the current image (not the original row index) is what
// makes repeated ApplyGate calls compose gates in sequence rather than each
// independently re-deriving the first gate's effect. This is O(2^w), the
// bound the gate-application primitive is specified to run in.
func (t *TruthTable) ApplyGate(target int, controls []int) error {
	if target < 0 || target >= t.width {
		return fmt.Errorf("%w: target %d out of range for width %d", errs.ErrInvalidCircuit, target, t.width)
	}
	for _, c := range controls {
		if c < 0 || c >= t.width {
			return fmt.Errorf("%w: control %d out of range for width %d", errs.ErrInvalidCircuit, c, t.width)
		}
		if c == target {
			return fmt.Errorf("%w: control %d equals target", errs.ErrInvalidCircuit, c)
		}
	}
	bit := uint(target)
	for i, v := range t.rows {
		if allControlsSet(v, controls) {
			t.rows[i] = v ^ (1 << bit)
		}
	}
	return nil
}

func allControlsSet(row int, controls []int) bool {
	for _, c := range controls {
		if (row>>uint(c))&1 == 0 {
			return false
		}
	}
	return true
}

// Inverse returns T^-1 such that Inverse()[T[i]] == i for all i.
func (t *TruthTable) Inverse() *TruthTable {
	inv := make([]int, len(t.rows))
	for i, v := range t.rows {
		inv[v] = i
	}
	return &TruthTable{width: t.width, rows: inv}
}

// Compose returns the table obtained by applying t first, then other: the
// resulting row i maps to other.rows[t.rows[i]].
func (t *TruthTable) Compose(other *TruthTable) (*TruthTable, error) {
	if t.width != other.width {
		return nil, fmt.Errorf("%w: width mismatch %d != %d", errs.ErrInvalidCircuit, t.width, other.width)
	}
	rows := make([]int, len(t.rows))
	for i, v := range t.rows {
		rows[i] = other.rows[v]
	}
	return &TruthTable{width: t.width, rows: rows}, nil
}

// Permute conjugates the table by a wire relabeling: the returned table
// applies sigma to the bit-index of every input/output row, matching
// circuit.Circuit.Relabel's effect on simulated semantics.
func (t *TruthTable) Permute(sigma []int) (*TruthTable, error) {
	if len(sigma) != t.width {
		return nil, fmt.Errorf("%w: permutation length %d != width %d", errs.ErrInvalidCircuit, len(sigma), t.width)
	}
	remap := make([]int, len(t.rows))
	for i := range t.rows {
		remap[i] = relabelValue(i, sigma, t.width)
	}
	rows := make([]int, len(t.rows))
	for i, v := range t.rows {
		rows[remap[i]] = remap[v]
	}
	return &TruthTable{width: t.width, rows: rows}, nil
}

func relabelValue(value int, sigma []int, width int) int {
	out := 0
	for b := 0; b < width; b++ {
		if (value>>uint(b))&1 == 1 {
			out |= 1 << uint(sigma[b])
		}
	}
	return out
}
