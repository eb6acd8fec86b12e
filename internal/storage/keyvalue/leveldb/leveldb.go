// Package leveldb provides a goleveldb backed keyvalue backend.
package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/fundvault/fundvaultd/internal/storage/keyvalue"
)

// DB wraps a goleveldb database behind the keyvalue.DB interface.
type DB struct {
	db *leveldb.DB
}

// Open opens (or creates) a leveldb database at path.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, keyvalue.ErrDBClosed
	}

	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, keyvalue.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return keyvalue.ErrDBClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return keyvalue.ErrDBClosed
	}
	return l.db.Delete(key, nil)
}

func (l *DB) Batch(ctx context.Context, ops []keyvalue.BatchOperation) error {
	if l.db == nil {
		return keyvalue.ErrDBClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case keyvalue.BatchPut:
			batch.Put(op.Key, op.Value)
		case keyvalue.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("%w: unknown batch operation type %d", keyvalue.ErrBatchOperationFailed, op.Type)
		}
	}
	return l.db.Write(batch, nil)
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (keyvalue.Iterator, error) {
	if l.db == nil {
		return nil, keyvalue.ErrDBClosed
	}
	iter := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &iterator{iter: iter}, nil
}

func (l *DB) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

type iterator struct {
	iter iteratorInterface
}

// iteratorInterface matches the subset of goleveldb's iterator we use.
type iteratorInterface interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *iterator) Next() bool { return it.iter.Next() }

func (it *iterator) Key() []byte {
	key := it.iter.Key()
	out := make([]byte, len(key))
	copy(out, key)
	return out
}

func (it *iterator) Value() []byte {
	val := it.iter.Value()
	out := make([]byte, len(val))
	copy(out, val)
	return out
}

func (it *iterator) Error() error { return it.iter.Error() }

func (it *iterator) Close() error {
	it.iter.Release()
	return it.iter.Error()
}

var _ keyvalue.DB = (*DB)(nil)
