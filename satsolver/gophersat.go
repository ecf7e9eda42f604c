package satsolver

import (
	"context"

	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"

	"github.com/egementunca/ID-Circuit/errs"
)

// GopherSAT is the default, in-process backend, built on
// github.com/crillab/gophersat (solver.ParseSlice, solver.New, Solve, Model),
// grounded on other_examples/crillab-gophersat__doc.go.
type GopherSAT struct{}

func (GopherSAT) Name() string { return "gophersat" }

func (GopherSAT) Solve(ctx context.Context, p Problem) (Model, bool, error) {
	pb := solver.ParseSlice(p.Clauses)
	s := solver.New(pb)
	done := make(chan solver.Status, 1)
	go func() { done <- s.Solve() }()

	var status solver.Status
	select {
	case <-ctx.Done():
		return Model{}, false, errs.ErrCancelled
	case status = <-done:
	}

	switch status {
	case solver.Unsat:
		return Model{}, false, nil
	case solver.Sat:
		raw := s.Model()
		assignment := make([]bool, p.NumVars+1)
		for i, v := range raw {
			if i+1 <= p.NumVars {
				assignment[i+1] = v
			}
		}
		return Model{Assignment: assignment}, true, nil
	default:
		return Model{}, false, errors.Wrapf(errs.ErrSolverFailure, "unexpected solver status %v", status)
	}
}
