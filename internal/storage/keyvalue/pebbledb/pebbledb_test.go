package pebbledb

import (
	"context"
	"errors"
	"testing"

	"github.com/fundvault/fundvaultd/internal/storage/keyvalue"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestPebbleDB(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("Read Write Delete", func(t *testing.T) {
		key := []byte("lifecycle-test")
		value := []byte("test-value")

		if err := db.Write(ctx, key, value); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		got, err := db.Read(ctx, key)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != string(value) {
			t.Errorf("Wrong value read: got %s, want %s", got, value)
		}

		if err := db.Delete(ctx, key); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := db.Read(ctx, key); !errors.Is(err, keyvalue.ErrKeyNotFound) {
			t.Errorf("Read after delete: got %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("Batch Operations", func(t *testing.T) {
		if err := db.Write(ctx, []byte("batch-del"), []byte("x")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		ops := []keyvalue.BatchOperation{
			{Type: keyvalue.BatchPut, Key: []byte("batch-a"), Value: []byte("1")},
			{Type: keyvalue.BatchPut, Key: []byte("batch-b"), Value: []byte("2")},
			{Type: keyvalue.BatchDelete, Key: []byte("batch-del")},
		}
		if err := db.Batch(ctx, ops); err != nil {
			t.Fatalf("Batch failed: %v", err)
		}

		got, err := db.Read(ctx, []byte("batch-a"))
		if err != nil || string(got) != "1" {
			t.Errorf("batch-a: got %s, %v", got, err)
		}
		if _, err := db.Read(ctx, []byte("batch-del")); !errors.Is(err, keyvalue.ErrKeyNotFound) {
			t.Errorf("batch-del still present: %v", err)
		}
	})

	t.Run("Iterator Range", func(t *testing.T) {
		for _, k := range []string{"iter-a", "iter-b", "iter-c"} {
			if err := db.Write(ctx, []byte(k), []byte(k)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}

		it, err := db.Iterator(ctx, []byte("iter-a"), []byte("iter-c"))
		if err != nil {
			t.Fatalf("Iterator failed: %v", err)
		}
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		if len(keys) != 2 || keys[0] != "iter-a" || keys[1] != "iter-b" {
			t.Errorf("Wrong keys iterated: %v", keys)
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		closed := setupTestDB(t)
		if err := closed.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if _, err := closed.Read(ctx, []byte("k")); !errors.Is(err, keyvalue.ErrDBClosed) {
			t.Errorf("Read on closed db: got %v, want ErrDBClosed", err)
		}
	})
}
