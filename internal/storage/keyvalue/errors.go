package keyvalue

import "errors"

var (
	// ErrDBClosed is returned when operating on a closed backend
	ErrDBClosed = errors.New("keyvalue: database is closed")

	// ErrKeyNotFound is returned when a key doesn't exist
	ErrKeyNotFound = errors.New("keyvalue: key not found")

	// ErrBatchOperationFailed is returned when a batch operation fails
	ErrBatchOperationFailed = errors.New("keyvalue: batch operation failed")
)
