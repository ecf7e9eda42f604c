package synth

import (
	"context"

	"github.com/egementunca/ID-Circuit/circuit"
	"github.com/egementunca/ID-Circuit/errs"
	"github.com/egementunca/ID-Circuit/satsolver"
	"github.com/egementunca/ID-Circuit/truthtable"
	"github.com/pkg/errors"
)

// Options tunes a single synthesis call.
type Options struct {
	DisableEmptyLines       bool
	DisableFullControlLines bool
	Exclude                 [][]circuit.Gate
}

func (o Options) apply(e *Encoder) {
	if o.DisableEmptyLines {
		e.DisableEmptyLines()
	}
	if o.DisableFullControlLines {
		e.DisableFullControlLines()
	}
	for _, g := range o.Exclude {
		e.ExcludeCircuit(g)
	}
}

// Synthesize finds a circuit of exactly steps gates realizing target, using
// backend to solve the CNF. Returns errs.ErrUnsat if no such circuit exists.
func Synthesize(ctx context.Context, backend satsolver.Backend, width, steps int, target *truthtable.TruthTable, opts Options) (*circuit.Circuit, error) {
	enc, err := NewEncoder(width, steps, target)
	if err != nil {
		return nil, err
	}
	opts.apply(enc)

	problem, bt, err := enc.Build()
	if err != nil {
		return nil, err
	}
	model, sat, err := backend.Solve(ctx, problem)
	if err != nil {
		return nil, err
	}
	if !sat {
		return nil, errs.ErrUnsat
	}
	return Decode(bt, model)
}

// SynthesizeOptimal searches k = 0, 1, 2, ... up to maxSteps for the
// smallest gate count realizing target, returning the first satisfiable
// circuit found. Grounded on the Python original's OptimalSynthesizer,
// which performs the same incremental search rather than a single
// cardinality-minimizing encoding.
func SynthesizeOptimal(ctx context.Context, backend satsolver.Backend, width, maxSteps int, target *truthtable.TruthTable, opts Options) (*circuit.Circuit, error) {
	for k := 0; k <= maxSteps; k++ {
		select {
		case <-ctx.Done():
			return nil, errs.ErrCancelled
		default:
		}
		c, err := Synthesize(ctx, backend, width, k, target, opts)
		if err == nil {
			return c, nil
		}
		if errors.Is(err, errs.ErrUnsat) {
			continue
		}
		return nil, err
	}
	return nil, errors.Wrapf(errs.ErrUnsat, "no realization found within %d steps", maxSteps)
}
