// Package errs defines the sentinel error kinds raised by the core engines.
// Callers distinguish them with errors.Is; the underlying message is wrapped
// with github.com/pkg/errors so call-site context survives across package
// boundaries without losing the sentinel identity.
package errs

import "errors"

var (
	// ErrInvalidCircuit signals a gate out of bounds, a repeated wire in
	// target ∪ controls, or a width mismatch.
	ErrInvalidCircuit = errors.New("invalid circuit")

	// ErrNonCommuting signals a swap requested at a non-commuting adjacency.
	ErrNonCommuting = errors.New("gates do not commute")

	// ErrEncodingLimit signals a width or gate budget beyond what the
	// encoder supports (e.g. 2^w overflowing an int).
	ErrEncodingLimit = errors.New("encoding limit exceeded")

	// ErrUnsat signals that synthesis provably has no solution for the
	// given gate budget.
	ErrUnsat = errors.New("unsatisfiable")

	// ErrSolverFailure signals a backend returned a malformed or missing
	// model for a satisfiable instance.
	ErrSolverFailure = errors.New("solver failure")

	// ErrCancelled signals a cooperative cancellation token fired.
	ErrCancelled = errors.New("cancelled")

	// ErrDuplicateFingerprint signals an insert attempted for a circuit
	// already present. Non-fatal; callers treat it as idempotent.
	ErrDuplicateFingerprint = errors.New("duplicate fingerprint")

	// ErrNotFound signals a store lookup found no row under the given key.
	ErrNotFound = errors.New("not found")
)
