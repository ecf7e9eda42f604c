package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/egementunca/ID-Circuit/errs"
)

// Memory is a process-local Store, a mutex-guarded map of tables keyed by
// string, mirroring the lock-around-map idiom of the teacher's
// session_manager.SessionManager. Suitable for tests and single-process
// catalog runs that don't need durability.
type Memory struct {
	mu     sync.Mutex
	tables map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string][]byte)}
}

func (m *Memory) table(name string) map[string][]byte {
	t, ok := m.tables[name]
	if !ok {
		t = make(map[string][]byte)
		m.tables[name] = t
	}
	return t
}

func (m *Memory) Put(_ context.Context, table, key string, row []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table(table)[key] = append([]byte(nil), row...)
	return nil
}

func (m *Memory) Get(_ context.Context, table, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.table(table)[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]byte(nil), row...), nil
}

func (m *Memory) Scan(_ context.Context, table, prefix string) (Iterator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.table(table) {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	rows := make([][]byte, len(keys))
	for i, k := range keys {
		rows[i] = append([]byte(nil), m.table(table)[k]...)
	}
	return &memoryIterator{keys: keys, rows: rows, pos: -1}, nil
}

func (m *Memory) Txn(ctx context.Context, fn func(Txn) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&memoryTxn{m: m})
}

func (m *Memory) Close() error { return nil }

// memoryTxn reuses Memory's already-held lock; Memory.Txn holds mu for the
// whole callback so the transaction is atomic with respect to every other
// Store method.
type memoryTxn struct {
	m *Memory
}

func (t *memoryTxn) Put(table, key string, row []byte) error {
	t.m.table(table)[key] = append([]byte(nil), row...)
	return nil
}

func (t *memoryTxn) Get(table, key string) ([]byte, error) {
	row, ok := t.m.table(table)[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]byte(nil), row...), nil
}

func (t *memoryTxn) Scan(table, prefix string) (Iterator, error) {
	var keys []string
	for k := range t.m.table(table) {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	rows := make([][]byte, len(keys))
	for i, k := range keys {
		rows[i] = append([]byte(nil), t.m.table(table)[k]...)
	}
	return &memoryIterator{keys: keys, rows: rows, pos: -1}, nil
}

type memoryIterator struct {
	keys []string
	rows [][]byte
	pos  int
}

func (it *memoryIterator) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

func (it *memoryIterator) Key() string   { return it.keys[it.pos] }
func (it *memoryIterator) Value() []byte { return it.rows[it.pos] }
func (it *memoryIterator) Close() error  { return nil }
func (it *memoryIterator) Err() error    { return nil }
