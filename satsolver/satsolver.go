// Package satsolver is the narrow interface to backend SAT solvers: submit a
// clause set over positive/negative integer literals, receive a satisfying
// model or an unsatisfiability verdict. The core never depends on a specific
// backend's types beyond this package's Problem/Model.
package satsolver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/egementunca/ID-Circuit/errs"
)

// Problem is a clause set over literals 1..NumVars.
type Problem struct {
	NumVars int
	Clauses [][]int
}

// Model is a satisfying assignment: Assignment[v] is the truth value of
// variable v (Assignment[0] is unused, variables are 1-indexed).
type Model struct {
	Assignment []bool
}

// Value returns the truth value of variable v, or false if v is out of
// range (never happens for variables the builder actually allocated).
func (m Model) Value(v int) bool {
	if v <= 0 || v >= len(m.Assignment) {
		return false
	}
	return m.Assignment[v]
}

// Backend is the interface every concrete SAT solver integration satisfies.
type Backend interface {
	Name() string
	Solve(ctx context.Context, p Problem) (Model, bool, error)
}

// BuilderProblem adapts a cnf.Builder-shaped clause set (NumVars + clauses)
// into a Problem; kept here rather than in package cnf so that cnf has no
// dependency on the solver layer.
func BuilderProblem(numVars int, clauses [][]int) Problem {
	return Problem{NumVars: numVars, Clauses: clauses}
}

// log is the package-level structured logger, following the same
// package-scoped zerolog.Logger idiom as revlog's other call sites.
var log = zerolog.Nop()

// SetLogger installs a configured logger; package factory's init calls it
// with revlog.Component("satsolver").
func SetLogger(l zerolog.Logger) { log = l }

// External invokes a named DIMACS-speaking solver binary as a subprocess,
// piping the problem in over stdin and parsing SATISFIABLE/UNSATISFIABLE plus
// a model line off stdout. Grounded on bench/sat.go's exec.Command pattern
// and the Python original's Solver._solve_external (subprocess + DIMACS
// pipe, exit-code-free output parsing since not every binary here follows
// picosat's convention of signaling via exit status).
type External struct {
	// BinaryName is one of "minisat", "glucose", "cadical".
	BinaryName string
	Args       []string
}

func (e *External) Name() string { return e.BinaryName }

func (e *External) Solve(ctx context.Context, p Problem) (Model, bool, error) {
	dimacs := toDIMACS(p)
	cmd := exec.CommandContext(ctx, e.BinaryName, e.Args...)
	cmd.Stdin = strings.NewReader(dimacs)
	var out bytes.Buffer
	cmd.Stdout = &out
	log.Debug().Str("solver", e.BinaryName).Int("vars", p.NumVars).Int("clauses", len(p.Clauses)).Msg("invoking external solver")
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return Model{}, false, errors.Wrapf(err, "%v: launching external solver %s", errs.ErrSolverFailure, e.BinaryName)
		}
	}
	return parseDIMACSOutput(out.String(), p.NumVars)
}

func toDIMACS(p Problem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", p.NumVars, len(p.Clauses))
	for _, clause := range p.Clauses {
		parts := make([]string, 0, len(clause)+1)
		for _, lit := range clause {
			parts = append(parts, strconv.Itoa(lit))
		}
		parts = append(parts, "0")
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func parseDIMACSOutput(out string, numVars int) (Model, bool, error) {
	lower := strings.ToLower(out)
	if strings.Contains(lower, "unsat") {
		return Model{}, false, nil
	}
	if !strings.Contains(lower, "sat") {
		return Model{}, false, errors.Wrapf(errs.ErrSolverFailure, "no SAT/UNSAT verdict in output")
	}
	assignment := make([]bool, numVars+1)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "v") && !strings.HasPrefix(line, "-") && !isDigitOrSign(line) {
			continue
		}
		line = strings.TrimPrefix(line, "v")
		for _, tok := range strings.Fields(line) {
			lit, err := strconv.Atoi(tok)
			if err != nil || lit == 0 {
				continue
			}
			abs := lit
			if abs < 0 {
				abs = -abs
			}
			if abs <= numVars {
				assignment[abs] = lit > 0
			}
		}
	}
	return Model{Assignment: assignment}, true, nil
}

func isDigitOrSign(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			if r != ' ' {
				return false
			}
		}
	}
	return true
}
