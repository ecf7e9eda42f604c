package store

import (
	"context"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/egementunca/ID-Circuit/errs"
)

// Badger is a durable Store backed by github.com/dgraph-io/badger/v4. Tables
// are namespaced by prefixing keys with "<table>/", since badger itself has
// no notion of tables.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if absent) a badger database at dir.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger store")
	}
	return &Badger{db: db}, nil
}

func namespaced(table, key string) []byte {
	return []byte(table + "/" + key)
}

func (b *Badger) Put(_ context.Context, table, key string, row []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(namespaced(table, key), row)
	})
}

func (b *Badger) Get(_ context.Context, table, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(namespaced(table, key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errs.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Badger) Scan(_ context.Context, table, prefix string) (Iterator, error) {
	txn := b.db.NewTransaction(false)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	full := namespaced(table, prefix)
	it.Seek(full)
	return &badgerIterator{txn: txn, it: it, prefix: full, tablePrefix: []byte(table + "/"), started: false}, nil
}

func (b *Badger) Txn(_ context.Context, fn func(Txn) error) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTxn{txn: txn})
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}

type badgerTxn struct {
	txn *badger.Txn
}

func (t *badgerTxn) Put(table, key string, row []byte) error {
	return t.txn.Set(namespaced(table, key), row)
}

func (t *badgerTxn) Get(table, key string) ([]byte, error) {
	item, err := t.txn.Get(namespaced(table, key))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	var out []byte
	err = item.Value(func(val []byte) error {
		out = append([]byte(nil), val...)
		return nil
	})
	return out, err
}

func (t *badgerTxn) Scan(table, prefix string) (Iterator, error) {
	it := t.txn.NewIterator(badger.DefaultIteratorOptions)
	full := namespaced(table, prefix)
	it.Seek(full)
	return &badgerIterator{it: it, prefix: full, tablePrefix: []byte(table + "/"), started: false}, nil
}

// badgerIterator adapts badger's Iterator (Valid/Next/Item) to this
// package's pull-style Next/Key/Value.
type badgerIterator struct {
	txn         *badger.Txn // nil when owned by an enclosing transaction
	it          *badger.Iterator
	prefix      []byte
	tablePrefix []byte
	started     bool
	key         string
	value       []byte
	err         error
}

func (it *badgerIterator) Next() bool {
	if !it.started {
		it.started = true
	} else {
		it.it.Next()
	}
	if !it.it.ValidForPrefix(it.prefix) {
		return false
	}
	item := it.it.Item()
	it.key = string(item.KeyCopy(nil)[len(it.tablePrefix):])
	val, err := item.ValueCopy(nil)
	if err != nil {
		it.err = err
		return false
	}
	it.value = val
	return true
}

func (it *badgerIterator) Key() string   { return it.key }
func (it *badgerIterator) Value() []byte { return it.value }
func (it *badgerIterator) Err() error    { return it.err }

func (it *badgerIterator) Close() error {
	it.it.Close()
	if it.txn != nil {
		it.txn.Discard()
	}
	return nil
}
