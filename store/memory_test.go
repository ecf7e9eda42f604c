package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egementunca/ID-Circuit/errs"
)

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, "circuits", "abc", []byte("row")))
	got, err := m.Get(ctx, "circuits", "abc")
	require.NoError(t, err)
	require.Equal(t, []byte("row"), got)
}

func TestMemoryGetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Get(ctx, "circuits", "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMemoryScanPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, "dim_groups", "2:3:a", []byte("1")))
	require.NoError(t, m.Put(ctx, "dim_groups", "2:3:b", []byte("2")))
	require.NoError(t, m.Put(ctx, "dim_groups", "4:1:a", []byte("3")))

	it, err := m.Scan(ctx, "dim_groups", "2:3:")
	require.NoError(t, err)
	var keys []string
	for it.Next() {
		keys = append(keys, it.Key())
	}
	require.Equal(t, []string{"2:3:a", "2:3:b"}, keys)
}

func TestMemoryTxnAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	err := m.Txn(ctx, func(txn Txn) error {
		if err := txn.Put("circuits", "x", []byte("1")); err != nil {
			return err
		}
		return txn.Put("representatives", "x", []byte("1"))
	})
	require.NoError(t, err)

	_, err = m.Get(ctx, "circuits", "x")
	require.NoError(t, err)
	_, err = m.Get(ctx, "representatives", "x")
	require.NoError(t, err)
}
