// Package factory is the generator/orchestrator surface: it draws a random
// forward circuit, synthesizes its inverse under a gate budget, records the
// verified identity, unrolls its equivalence class, and folds the result
// into the catalog. Grounded on the teacher's
// session_manager.SessionManager, which owns the same shape of job — drive
// a multi-step protocol for one key (here, one dimension group) to
// completion and hand the result to a shared store.
package factory

import (
	"context"
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/egementunca/ID-Circuit/catalog"
	"github.com/egementunca/ID-Circuit/circuit"
	"github.com/egementunca/ID-Circuit/errs"
	"github.com/egementunca/ID-Circuit/revlog"
	"github.com/egementunca/ID-Circuit/satsolver"
	"github.com/egementunca/ID-Circuit/synth"
	"github.com/egementunca/ID-Circuit/truthtable"
	"github.com/egementunca/ID-Circuit/unroll"
)

func init() {
	satsolver.SetLogger(revlog.Component("satsolver"))
}

// Factory wires the core engines and the catalog together for one
// generation run.
type Factory struct {
	Backend satsolver.Backend
	Catalog *catalog.Catalog

	randMu sync.Mutex
	rand   *rand.Rand
}

// New returns a Factory over backend and cat, seeded deterministically from
// seed so runs are reproducible.
func New(backend satsolver.Backend, cat *catalog.Catalog, seed int64) *Factory {
	return &Factory{
		Backend: backend,
		Catalog: cat,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

// intn and shuffle serialize access to the shared *rand.Rand: math/rand's
// Rand is not safe for concurrent use, and Sweep drives randomForward from
// multiple worker goroutines.
func (f *Factory) intn(n int) int {
	f.randMu.Lock()
	defer f.randMu.Unlock()
	return f.rand.Intn(n)
}

func (f *Factory) shuffle(n int, swap func(i, j int)) {
	f.randMu.Lock()
	defer f.randMu.Unlock()
	f.rand.Shuffle(n, swap)
}

// GenerateResult reports the outcome of one GenerateSeed call.
type GenerateResult struct {
	CircuitID string
	WasNew    bool
	Circuit   *circuit.Circuit
}

// maxGenerateAttempts bounds the exclude-and-retry loop GenerateSeed runs
// when a drawn forward circuit's inverse collides with an already-cataloged
// fingerprint, mirroring the original's exclude_subcircuit-driven retry
// inside one dimension group's synthesis loop.
const maxGenerateAttempts = 8

// GenerateSeed draws a random forward circuit of length n/2 over width
// wires, asks the synthesizer for a circuit realizing its inverse within the
// remaining gate budget, concatenates the two into a verified identity, and
// records it in the catalog. If the resulting identity duplicates one
// already cataloged, the inverse's solution is excluded and synthesis
// retries up to maxGenerateAttempts times so repeated calls within one
// dimension group don't keep rediscovering the same circuit.
func (f *Factory) GenerateSeed(ctx context.Context, width, n int) (GenerateResult, error) {
	backLen := n - n/2
	var excluded [][]circuit.Gate

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		forward, err := f.randomForward(width, n/2)
		if err != nil {
			return GenerateResult{}, err
		}

		forwardTable, err := forward.Simulate()
		if err != nil {
			return GenerateResult{}, err
		}
		inverseTarget := forwardTable.Inverse()

		back, err := synth.Synthesize(ctx, f.Backend, width, backLen, inverseTarget, synth.Options{Exclude: excluded})
		if err != nil {
			return GenerateResult{}, errors.Wrapf(err, "synthesizing inverse of length %d", backLen)
		}

		full, err := forward.Concat(back)
		if err != nil {
			return GenerateResult{}, err
		}

		id, wasNew, err := f.Catalog.InsertIdentity(ctx, full)
		if err != nil {
			return GenerateResult{}, err
		}
		logger := revlog.Component("factory")
		logger.Info().Str("circuit_id", id).Int("width", width).Int("length", n).Bool("new", wasNew).Msg("generated seed")
		if wasNew {
			return GenerateResult{CircuitID: id, WasNew: wasNew, Circuit: full}, nil
		}
		excluded = append(excluded, back.Gates())
	}
	return GenerateResult{}, errors.Wrapf(errs.ErrDuplicateFingerprint, "no new identity found for (w=%d, n=%d) in %d attempts", width, n, maxGenerateAttempts)
}

// randomForward draws a uniformly random circuit of the given length over
// the full NOT/CNOT/CCNOT library for width wires, applying the seed
// generator's local diversity rule: no two consecutive gates are identical,
// and no two consecutive gates share a target, so a trivial g,g pair does
// not short-circuit the SAT phase that has to realize the inverse. The rule
// is best-effort: randomGate keeps its last draw after maxDiversityAttempts
// failed re-rolls, so at width 1 consecutive gates always repeat.
func (f *Factory) randomForward(width, length int) (*circuit.Circuit, error) {
	if width < 1 {
		return nil, errors.Wrapf(errs.ErrInvalidCircuit, "width %d must be positive", width)
	}
	c := circuit.New(width)
	var prev *circuit.Gate
	for i := 0; i < length; i++ {
		g, err := f.randomGate(width, prev)
		if err != nil {
			return nil, err
		}
		c, err = c.Push(g)
		if err != nil {
			return nil, err
		}
		prev = &g
	}
	return c, nil
}

// maxDiversityAttempts bounds the re-roll loop randomGate runs to satisfy
// the local diversity rule before giving up and returning its last draw —
// width 1 has only one possible gate, so a repeat is sometimes unavoidable.
const maxDiversityAttempts = 32

// randomGate draws a uniformly random gate over width wires, re-rolling
// against prev (the previously drawn gate in this forward circuit, if any)
// whenever the draw exactly repeats prev or shares its target.
func (f *Factory) randomGate(width int, prev *circuit.Gate) (circuit.Gate, error) {
	var g circuit.Gate
	var err error
	for attempt := 0; attempt < maxDiversityAttempts; attempt++ {
		g, err = f.drawGate(width)
		if err != nil {
			return circuit.Gate{}, err
		}
		if prev == nil || (!g.Equal(*prev) && g.Target != prev.Target) {
			return g, nil
		}
	}
	return g, err
}

func (f *Factory) drawGate(width int) (circuit.Gate, error) {
	target := f.intn(width)
	others := make([]int, 0, width-1)
	for w := 0; w < width; w++ {
		if w != target {
			others = append(others, w)
		}
	}
	maxControls := width - 1
	if maxControls > 2 {
		maxControls = 2
	}
	numControls := f.intn(maxControls + 1)
	f.shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	return circuit.NewGate(target, others[:numControls])
}

// UnrollAndFold unrolls the equivalence class of the representative backing
// repID and folds every newly discovered equivalent into the catalog.
func (f *Factory) UnrollAndFold(ctx context.Context, repID string, rep *circuit.Circuit, maxNodes int) (catalog.FoldStats, error) {
	results, err := unroll.Unroll(ctx, rep, unroll.Options{MaxNodes: maxNodes})
	if err != nil {
		return catalog.FoldStats{}, err
	}

	fullyUnrolled := maxNodes == 0 || len(results) < maxNodes
	equivalents := make([]*circuit.Circuit, 0, len(results))
	for _, r := range results {
		if r.Move == "root" {
			continue
		}
		equivalents = append(equivalents, r.Circuit)
	}

	stats, err := f.Catalog.FoldEquivalents(ctx, repID, equivalents, fullyUnrolled)
	if err != nil {
		return catalog.FoldStats{}, err
	}
	logger := revlog.Component("factory")
	logger.Info().Str("rep_id", repID).Int("equivalents", len(equivalents)).Bool("fully_unrolled", fullyUnrolled).Msg("unrolled and folded")
	return stats, nil
}

// Simulate exposes circuit simulation through the orchestrator surface, per
// spec's external-interface listing (simulate(Circuit) -> TruthTable).
func Simulate(c *circuit.Circuit) (*truthtable.TruthTable, error) {
	return c.Simulate()
}

// Dimension names one (width, length) cell of a sweep.
type Dimension struct {
	Width int
	N     int
}

// SweepResult reports one dimension's outcome.
type SweepResult struct {
	Dimension Dimension
	Generate  GenerateResult
	Fold      catalog.FoldStats
	Err       error
}

// Sweep runs GenerateSeed+UnrollAndFold over every dimension concurrently, a
// goroutine pool bounded by workers wide. Unlike the catalog's single
// logical writer per operation, dimensions share no mutable state beyond
// the catalog itself (each insert_identity/fold_equivalents call is already
// one transaction) and the Factory's random source (guarded by randMu), so
// no additional per-dimension lock is needed — only the concurrency bound. Grounded on the teacher's SessionManager, which serves
// many callers from one shared map by locking per access rather than
// holding a lock across a whole session's lifetime; here each dimension's
// work is a short-lived goroutine rather than a long-lived session.
func (f *Factory) Sweep(ctx context.Context, dims []Dimension, workers, maxUnrollNodes int) []SweepResult {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan Dimension)
	results := make([]SweepResult, len(dims))

	var wg sync.WaitGroup
	var mu sync.Mutex
	indexByDim := make(map[Dimension]int, len(dims))
	for i, d := range dims {
		indexByDim[d] = i
	}

	worker := func() {
		defer wg.Done()
		for d := range jobs {
			res := f.runOneDimension(ctx, d, maxUnrollNodes)
			mu.Lock()
			results[indexByDim[d]] = res
			mu.Unlock()
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}
	for _, d := range dims {
		jobs <- d
	}
	close(jobs)
	wg.Wait()
	return results
}

func (f *Factory) runOneDimension(ctx context.Context, d Dimension, maxUnrollNodes int) SweepResult {
	gen, err := f.GenerateSeed(ctx, d.Width, d.N)
	if err != nil {
		return SweepResult{Dimension: d, Err: err}
	}
	if !gen.WasNew {
		return SweepResult{Dimension: d, Generate: gen}
	}

	reps, err := f.Catalog.ListRepresentatives(ctx, d.Width, d.N)
	if err != nil {
		return SweepResult{Dimension: d, Generate: gen, Err: err}
	}
	var repID string
	for _, r := range reps {
		if r.CircuitID == gen.CircuitID {
			repID = r.ID
			break
		}
	}
	if repID == "" {
		return SweepResult{Dimension: d, Generate: gen}
	}

	fold, err := f.UnrollAndFold(ctx, repID, gen.Circuit, maxUnrollNodes)
	return SweepResult{Dimension: d, Generate: gen, Fold: fold, Err: err}
}
