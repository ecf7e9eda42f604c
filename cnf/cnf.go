// Package cnf implements a monotonic variable allocator and an append-only
// clause buffer over integer literals, plus the boolean-function helpers the
// synthesis encoding is built from. It mirrors the allocator/clause-buffer
// split of the Python original's sat_revsynth.sat.cnf.CNF, translated to
// plain integer literals instead of a name-indexed variable pool since Go
// callers address variables positionally.
package cnf

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder allocates fresh positive integer variables and accumulates
// clauses (disjunctions of signed integer literals).
type Builder struct {
	nextVar int
	clauses [][]int
}

// NewBuilder returns an empty builder; variable 0 is never issued so every
// literal's sign carries meaning.
func NewBuilder() *Builder {
	return &Builder{nextVar: 1}
}

// NewVar allocates and returns a fresh positive variable.
func (b *Builder) NewVar() int {
	v := b.nextVar
	b.nextVar++
	return v
}

// NewVars allocates n fresh variables.
func (b *Builder) NewVars(n int) []int {
	vars := make([]int, n)
	for i := range vars {
		vars[i] = b.NewVar()
	}
	return vars
}

// NumVars returns the count of variables allocated so far.
func (b *Builder) NumVars() int { return b.nextVar - 1 }

// AddClause appends a disjunction of literals.
func (b *Builder) AddClause(literals ...int) {
	clause := append([]int(nil), literals...)
	b.clauses = append(b.clauses, clause)
}

// Clauses exposes the accumulated clause buffer by value copy.
func (b *Builder) Clauses() [][]int {
	out := make([][]int, len(b.clauses))
	for i, c := range b.clauses {
		out[i] = append([]int(nil), c...)
	}
	return out
}

// Fix forces literal to be true (fixes a variable's value if literal > 0, or
// false if literal < 0).
func (b *Builder) Fix(literal int) {
	b.AddClause(literal)
}

// FixBool forces variable v to equal value.
func (b *Builder) FixBool(v int, value bool) {
	if value {
		b.Fix(v)
	} else {
		b.Fix(-v)
	}
}

// Iff forces a <-> b.
func (b *Builder) Iff(a, b2 int) {
	b.AddClause(-a, b2)
	b.AddClause(a, -b2)
}

// And forces out <-> (a AND b).
func (b *Builder) And(out, a, c int) {
	b.AddClause(-out, a)
	b.AddClause(-out, c)
	b.AddClause(out, -a, -c)
}

// AndN forces out <-> AND(terms...).
func (b *Builder) AndN(out int, terms []int) {
	clause := make([]int, 0, len(terms)+1)
	clause = append(clause, out)
	for _, t := range terms {
		b.AddClause(-out, t)
		clause = append(clause, -t)
	}
	b.AddClause(clause...)
}

// Or forces out <-> (a OR b).
func (b *Builder) Or(out, a, c int) {
	b.AddClause(out, -a)
	b.AddClause(out, -c)
	b.AddClause(-out, a, c)
}

// OrN forces out <-> OR(terms...).
func (b *Builder) OrN(out int, terms []int) {
	clause := make([]int, 0, len(terms)+1)
	clause = append(clause, -out)
	for _, t := range terms {
		b.AddClause(out, -t)
		clause = append(clause, t)
	}
	b.AddClause(clause...)
}

// Xor forces out <-> (a XOR b), encoded as two equivalences on each polarity.
func (b *Builder) Xor(out, a, c int) {
	b.AddClause(-out, a, c)
	b.AddClause(-out, -a, -c)
	b.AddClause(out, -a, c)
	b.AddClause(out, a, -c)
}

// Nand forces NOT (a AND b): at most one of a, b is true.
func (b *Builder) Nand(a, c int) {
	b.AddClause(-a, -c)
}

// CondIff forces cond -> (a <-> b), leaving a and b unconstrained when cond
// is false. Used to scope a transition constraint to the single selector
// variable it belongs to, per time step, in the synthesis encoding.
func (b *Builder) CondIff(cond, a, c int) {
	b.AddClause(-cond, -a, c)
	b.AddClause(-cond, a, -c)
}

// CondXorEq forces cond -> (out <-> (p XOR q)).
func (b *Builder) CondXorEq(cond, out, p, q int) {
	b.AddClause(-cond, -out, p, q)
	b.AddClause(-cond, -out, -p, -q)
	b.AddClause(-cond, out, -p, q)
	b.AddClause(-cond, out, p, -q)
}

// ExactlyOne forces exactly one of vars to be true, using the pairwise
// at-most-one encoding (quadratic in |vars|, appropriate for the small gate
// libraries this encoder allocates selectors over) plus an at-least-one
// clause.
func (b *Builder) ExactlyOne(vars []int) {
	b.AtLeastOne(vars)
	b.atMostOnePairwise(vars)
}

// AtLeastOne forces at least one of vars to be true.
func (b *Builder) AtLeastOne(vars []int) {
	b.AddClause(vars...)
}

func (b *Builder) atMostOnePairwise(vars []int) {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			b.AddClause(-vars[i], -vars[j])
		}
	}
}

// AtMostK forces at most k of vars to be true, using a sequential-counter
// encoding (linear in |vars|*k), matching the scale the synthesis encoding
// needs for small per-wire and global control budgets.
func (b *Builder) AtMostK(vars []int, k int) {
	n := len(vars)
	if k >= n {
		return
	}
	if k == 0 {
		for _, v := range vars {
			b.AddClause(-v)
		}
		return
	}
	// s[i][j] means "at least j+1 of vars[0..i] are true", j in [0,k).
	s := make([][]int, n)
	for i := range s {
		s[i] = b.NewVars(k)
	}
	b.AddClause(-vars[0], s[0][0])
	for j := 1; j < k; j++ {
		b.AddClause(-s[0][j])
	}
	for i := 1; i < n; i++ {
		b.AddClause(-vars[i], s[i][0])
		b.AddClause(-s[i-1][0], s[i][0])
		for j := 1; j < k; j++ {
			b.AddClause(-vars[i], -s[i-1][j-1], s[i][j])
			b.AddClause(-s[i-1][j], s[i][j])
		}
		b.AddClause(-vars[i], -s[i-1][k-1])
	}
}

// ToDIMACS renders the clause buffer in DIMACS CNF format for integration
// with external solver binaries.
func (b *Builder) ToDIMACS() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", b.NumVars(), len(b.clauses))
	for _, clause := range b.clauses {
		parts := make([]string, len(clause)+1)
		for i, lit := range clause {
			parts[i] = strconv.Itoa(lit)
		}
		parts[len(clause)] = "0"
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Interpret reads the truth value of variable v out of a satisfying model
// (a slice of signed literal ids, as returned by a DIMACS-speaking solver).
func Interpret(model []int, v int) bool {
	for _, lit := range model {
		if lit == v {
			return true
		}
		if lit == -v {
			return false
		}
	}
	return false
}
