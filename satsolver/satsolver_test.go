package satsolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGopherSATSolvesSatisfiableProblem(t *testing.T) {
	// (a OR b) AND (-a OR -b): satisfiable, a != b.
	p := Problem{NumVars: 2, Clauses: [][]int{{1, 2}, {-1, -2}}}
	m, sat, err := GopherSAT{}.Solve(context.Background(), p)
	require.NoError(t, err)
	require.True(t, sat)
	require.NotEqual(t, m.Value(1), m.Value(2))
}

func TestGopherSATReportsUnsat(t *testing.T) {
	// a AND -a: unsatisfiable.
	p := Problem{NumVars: 1, Clauses: [][]int{{1}, {-1}}}
	_, sat, err := GopherSAT{}.Solve(context.Background(), p)
	require.NoError(t, err)
	require.False(t, sat)
}

func TestToDIMACSWritesHeaderAndClauses(t *testing.T) {
	p := Problem{NumVars: 2, Clauses: [][]int{{1, -2}}}
	dimacs := toDIMACS(p)
	require.Contains(t, dimacs, "p cnf 2 1")
	require.Contains(t, dimacs, "1 -2 0")
}

func TestParseDIMACSOutputSat(t *testing.T) {
	out := "SATISFIABLE\nv 1 -2 0\n"
	m, sat, err := parseDIMACSOutput(out, 2)
	require.NoError(t, err)
	require.True(t, sat)
	require.True(t, m.Value(1))
	require.False(t, m.Value(2))
}

func TestParseDIMACSOutputUnsat(t *testing.T) {
	_, sat, err := parseDIMACSOutput("UNSATISFIABLE\n", 2)
	require.NoError(t, err)
	require.False(t, sat)
}
