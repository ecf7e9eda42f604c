// Package store is the narrow key/row persistence interface the catalog is
// built on: Put/Get/Scan/Txn over named tables, with both an in-memory and a
// badger-backed implementation. Grounded on the teacher's
// session_manager/session_manager.go (a mutex-guarded map keyed by session
// id, looked up and mutated under lock) for the memory backend, and on
// github.com/dgraph-io/badger/v4 for the durable one.
package store

import (
	"context"
)

// Iterator walks Scan results in key order.
type Iterator interface {
	Next() bool
	Key() string
	Value() []byte
	Close() error
	Err() error
}

// Txn is the transactional view a Store.Txn callback operates on.
type Txn interface {
	Put(table, key string, row []byte) error
	Get(table, key string) ([]byte, error)
	Scan(table, prefix string) (Iterator, error)
}

// Store is the persistence surface the catalog depends on: named tables of
// byte-valued rows, addressed by string key, with prefix scans and
// single-transaction multi-table updates.
type Store interface {
	Put(ctx context.Context, table, key string, row []byte) error
	Get(ctx context.Context, table, key string) ([]byte, error)
	Scan(ctx context.Context, table, prefix string) (Iterator, error)
	Txn(ctx context.Context, fn func(Txn) error) error
	Close() error
}
