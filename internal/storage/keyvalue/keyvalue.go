// Package keyvalue defines the storage interface the vault persists
// through. Backends live in subpackages; a batch is the atomic unit.
package keyvalue

import (
	"context"
)

// DB defines the basic operations any keyvalue backend must support.
type DB interface {
	// Basic operations
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Batch applies all operations atomically: either every operation is
	// durable or none is.
	Batch(ctx context.Context, ops []BatchOperation) error

	// Iterator traverses keys in [start, end).
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)

	Close() error
}

// Iterator allows traversing over stored entries.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch.
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)
