package unroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egementunca/ID-Circuit/circuit"
)

func TestUnrollDeduplicatesAndIncludesSeed(t *testing.T) {
	c := circuit.New(2)
	c, err := c.Push(circuit.NewCNOT(0, 1))
	require.NoError(t, err)
	c, err = c.Push(circuit.NewCNOT(0, 1))
	require.NoError(t, err)

	results, err := Unroll(context.Background(), c, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	seen := map[string]bool{}
	for _, r := range results {
		k := string(r.Circuit.Fingerprint())
		require.False(t, seen[k], "duplicate fingerprint in unroll output")
		seen[k] = true
	}
	require.True(t, seen[string(c.Fingerprint())], "seed must appear in unroll output")
}

func TestUnrollRespectsMaxNodes(t *testing.T) {
	c := circuit.New(3)
	c, err := c.Push(circuit.NewCCNOT(0, 1, 2))
	require.NoError(t, err)
	c, err = c.Push(circuit.NewCCNOT(0, 1, 2))
	require.NoError(t, err)

	results, err := Unroll(context.Background(), c, Options{MaxNodes: 3})
	require.NoError(t, err)
	require.LessOrEqual(t, len(results), 3)
}

func TestUnrollRejectsInvalidSeed(t *testing.T) {
	_, err := Unroll(context.Background(), nil, Options{})
	require.Error(t, err)
}
