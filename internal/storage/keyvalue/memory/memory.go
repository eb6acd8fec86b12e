// Package memory provides an in-process keyvalue backend used by tests
// and by deployments that do not need durability.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/fundvault/fundvaultd/internal/storage/keyvalue"
)

// DB is a map-backed keyvalue.DB. Safe for concurrent use.
type DB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewDB creates an empty in-memory database.
func NewDB() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (m *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, keyvalue.ErrDBClosed
	}
	val, ok := m.data[string(key)]
	if !ok {
		return nil, keyvalue.ErrKeyNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *DB) Write(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return keyvalue.ErrDBClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *DB) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return keyvalue.ErrDBClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *DB) Batch(ctx context.Context, ops []keyvalue.BatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return keyvalue.ErrDBClosed
	}
	// The map is only touched once all operations are known to be valid,
	// so a batch is all-or-nothing.
	for _, op := range ops {
		if op.Type != keyvalue.BatchPut && op.Type != keyvalue.BatchDelete {
			return keyvalue.ErrBatchOperationFailed
		}
	}
	for _, op := range ops {
		switch op.Type {
		case keyvalue.BatchPut:
			v := make([]byte, len(op.Value))
			copy(v, op.Value)
			m.data[string(op.Key)] = v
		case keyvalue.BatchDelete:
			delete(m.data, string(op.Key))
		}
	}
	return nil
}

func (m *DB) Iterator(ctx context.Context, start, end []byte) (keyvalue.Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, keyvalue.ErrDBClosed
	}

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]entry, len(keys))
	for i, k := range keys {
		v := m.data[k]
		val := make([]byte, len(v))
		copy(val, v)
		entries[i] = entry{key: []byte(k), value: val}
	}
	return &iterator{entries: entries, pos: -1}, nil
}

func (m *DB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type entry struct {
	key, value []byte
}

type iterator struct {
	entries []entry
	pos     int
}

func (it *iterator) Next() bool {
	it.pos++
	return it.pos < len(it.entries)
}

func (it *iterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.entries) {
		return nil
	}
	return it.entries[it.pos].key
}

func (it *iterator) Value() []byte {
	if it.pos < 0 || it.pos >= len(it.entries) {
		return nil
	}
	return it.entries[it.pos].value
}

func (it *iterator) Error() error { return nil }
func (it *iterator) Close() error { return nil }

var _ keyvalue.DB = (*DB)(nil)
