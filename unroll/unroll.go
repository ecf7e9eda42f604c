// Package unroll implements the equivalence-class BFS: starting from one
// identity circuit, explore every circuit reachable by commutation swaps,
// cyclic rotation, reversal, and wire relabeling, up to a node budget L.
// Grounded on the teacher's session/session.go state-machine style (a
// frontier processed breadth-first with an explicit visited set) and on the
// Python original's sat_revsynth.circuit_search breadth-first unroller.
package unroll

import (
	"context"
	"sort"

	"github.com/egementunca/ID-Circuit/circuit"
	"github.com/egementunca/ID-Circuit/errs"
)

// Result is one member of an equivalence class: the circuit itself and the
// move, relative to some prior member, that produced it. Root has Move ==
// "root".
type Result struct {
	Circuit *circuit.Circuit
	Move    string
}

// Options bounds the BFS.
type Options struct {
	// MaxNodes caps the number of distinct circuits explored. Zero means
	// unbounded (only safe for small width/gate-count classes).
	MaxNodes int
}

// Unroll explores the full equivalence class reachable from seed under
// commutation-swap, rotation, reversal, and relabeling moves, in
// breadth-first order, deduplicating by fingerprint. It returns
// errs.ErrInvalidCircuit if seed fails validation, and errs.ErrCancelled if
// ctx is cancelled before the frontier empties (bounded or not).
func Unroll(ctx context.Context, seed *circuit.Circuit, opts Options) ([]Result, error) {
	if seed == nil {
		return nil, errs.ErrInvalidCircuit
	}
	if _, err := seed.Simulate(); err != nil {
		return nil, err
	}

	type node struct {
		c    *circuit.Circuit
		move string
	}

	visited := map[string]bool{}
	key := func(c *circuit.Circuit) string { return string(c.Fingerprint()) }

	start := node{c: seed, move: "root"}
	visited[key(seed)] = true
	frontier := []node{start}
	var out []Result
	out = append(out, Result{Circuit: seed, Move: start.move})

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return nil, errs.ErrCancelled
		default:
		}
		if opts.MaxNodes > 0 && len(visited) >= opts.MaxNodes {
			break
		}

		cur := frontier[0]
		frontier = frontier[1:]

		for _, next := range neighbors(cur.c) {
			k := key(next.c)
			if visited[k] {
				continue
			}
			visited[k] = true
			frontier = append(frontier, node{c: next.c, move: next.move})
			out = append(out, Result{Circuit: next.c, Move: next.move})
			if opts.MaxNodes > 0 && len(visited) >= opts.MaxNodes {
				break
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return string(out[i].Circuit.Fingerprint()) < string(out[j].Circuit.Fingerprint())
	})
	return out, nil
}

type neighbor struct {
	c    *circuit.Circuit
	move string
}

// neighbors returns every circuit one move away from c: each commuting
// adjacent swap, each nontrivial rotation, the reversal, and each nontrivial
// wire relabeling.
func neighbors(c *circuit.Circuit) []neighbor {
	var out []neighbor

	for _, i := range c.CommutingPositions() {
		swapped, err := c.Swap(i)
		if err == nil {
			out = append(out, neighbor{c: swapped, move: "swap"})
		}
	}

	n := c.Len()
	for k := 1; k < n; k++ {
		out = append(out, neighbor{c: c.Rotate(k), move: "rotate"})
	}

	out = append(out, neighbor{c: c.Reverse(), move: "reverse"})

	for _, sigma := range permutations(c.Width()) {
		if isIdentityPerm(sigma) {
			continue
		}
		relabeled, err := c.Relabel(sigma)
		if err == nil {
			out = append(out, neighbor{c: relabeled, move: "relabel"})
		}
	}

	return out
}

func isIdentityPerm(sigma []int) bool {
	for i, v := range sigma {
		if i != v {
			return false
		}
	}
	return true
}

// permutations enumerates every permutation of [0, n). Practical only for
// the small widths this catalog targets (n <= MaxWidth from truthtable, and
// in practice single digits).
func permutations(n int) [][]int {
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}
	var out [][]int
	var permute func(prefix []int, rest []int)
	permute = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i := range rest {
			nextRest := append(append([]int(nil), rest[:i]...), rest[i+1:]...)
			permute(append(append([]int(nil), prefix...), rest[i]), nextRest)
		}
	}
	permute(nil, base)
	return out
}
