package cnf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// satisfiable brute-forces every assignment of the variables appearing in
// clauses and reports whether at least one satisfies every clause.
func satisfiable(numVars int, clauses [][]int) bool {
	for assignment := 0; assignment < (1 << numVars); assignment++ {
		val := func(v int) bool { return (assignment>>uint(v-1))&1 == 1 }
		ok := true
		for _, clause := range clauses {
			clauseOK := false
			for _, lit := range clause {
				if lit > 0 && val(lit) {
					clauseOK = true
					break
				}
				if lit < 0 && !val(-lit) {
					clauseOK = true
					break
				}
			}
			if !clauseOK {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func evalUnderAssignment(numVars, assignment int, v int) bool {
	return (assignment>>uint(v-1))&1 == 1
}

func forcedEqual(t *testing.T, numVars int, clauses [][]int, fn func(vals func(int) bool) bool) {
	for assignment := 0; assignment < (1 << numVars); assignment++ {
		val := func(v int) bool { return evalUnderAssignment(numVars, assignment, v) }
		satisfiesClauses := true
		for _, clause := range clauses {
			clauseOK := false
			for _, lit := range clause {
				if lit > 0 && val(lit) {
					clauseOK = true
				}
				if lit < 0 && !val(-lit) {
					clauseOK = true
				}
			}
			if !clauseOK {
				satisfiesClauses = false
				break
			}
		}
		if satisfiesClauses {
			require.True(t, fn(val), "assignment %d satisfies clauses but violates the intended function", assignment)
		}
	}
}

func TestAndForcesConjunction(t *testing.T) {
	b := NewBuilder()
	out, a, c := b.NewVar(), b.NewVar(), b.NewVar()
	b.And(out, a, c)
	forcedEqual(t, b.NumVars(), b.Clauses(), func(v func(int) bool) bool {
		return v(out) == (v(a) && v(c))
	})
}

func TestXorForcesExclusiveOr(t *testing.T) {
	b := NewBuilder()
	out, a, c := b.NewVar(), b.NewVar(), b.NewVar()
	b.Xor(out, a, c)
	forcedEqual(t, b.NumVars(), b.Clauses(), func(v func(int) bool) bool {
		return v(out) == (v(a) != v(c))
	})
}

func TestCondIffLeavesUnconstrainedWhenConditionFalse(t *testing.T) {
	b := NewBuilder()
	cond, a, c := b.NewVar(), b.NewVar(), b.NewVar()
	b.CondIff(cond, a, c)
	b.Fix(-cond)
	b.Fix(a)
	b.Fix(-c)
	require.True(t, satisfiable(b.NumVars(), b.Clauses()), "cond=false must not force a == c")
}

func TestCondXorEqForcesRelationOnlyWhenTrue(t *testing.T) {
	b := NewBuilder()
	cond, out, p, q := b.NewVar(), b.NewVar(), b.NewVar(), b.NewVar()
	b.CondXorEq(cond, out, p, q)
	b.Fix(cond)
	forcedEqual(t, b.NumVars(), b.Clauses(), func(v func(int) bool) bool {
		return v(out) == (v(p) != v(q))
	})
}

func TestExactlyOneAllowsOnlySingleTrue(t *testing.T) {
	b := NewBuilder()
	vars := b.NewVars(3)
	b.ExactlyOne(vars)
	count := 0
	for assignment := 0; assignment < (1 << 3); assignment++ {
		val := func(v int) bool { return evalUnderAssignment(3, assignment, v) }
		satisfiesClauses := true
		for _, clause := range b.Clauses() {
			clauseOK := false
			for _, lit := range clause {
				if lit > 0 && val(lit) {
					clauseOK = true
				}
				if lit < 0 && !val(-lit) {
					clauseOK = true
				}
			}
			if !clauseOK {
				satisfiesClauses = false
				break
			}
		}
		if satisfiesClauses {
			count++
		}
	}
	require.Equal(t, 3, count, "exactly one of 3 booleans true has exactly 3 satisfying assignments")
}

func TestAtMostKBoundsTrueCount(t *testing.T) {
	b := NewBuilder()
	vars := b.NewVars(4)
	b.AtMostK(vars, 2)
	numVars := b.NumVars()
	clauses := b.Clauses()
	for assignment := 0; assignment < (1 << uint(numVars)); assignment++ {
		val := func(v int) bool { return evalUnderAssignment(numVars, assignment, v) }
		satisfiesClauses := true
		for _, clause := range clauses {
			clauseOK := false
			for _, lit := range clause {
				if (lit > 0 && val(lit)) || (lit < 0 && !val(-lit)) {
					clauseOK = true
					break
				}
			}
			if !clauseOK {
				satisfiesClauses = false
				break
			}
		}
		if !satisfiesClauses {
			continue
		}
		trueCount := 0
		for _, v := range vars {
			if val(v) {
				trueCount++
			}
		}
		require.LessOrEqual(t, trueCount, 2)
	}
}

func TestToDIMACSHeaderMatchesCounts(t *testing.T) {
	b := NewBuilder()
	a, c := b.NewVar(), b.NewVar()
	b.AddClause(a, -c)
	dimacs := b.ToDIMACS()
	require.Contains(t, dimacs, "p cnf 2 1")
}
