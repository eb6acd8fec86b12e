package leveldb

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

func TestLevelDB(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("Read Write Delete", func(t *testing.T) {
		if err := db.Write(ctx, []byte("k"), []byte("v")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		got, err := db.Read(ctx, []byte("k"))
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != "v" {
			t.Errorf("Wrong value read: got %s, want v", got)
		}

		if err := db.Delete(ctx, []byte("k")); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := db.Read(ctx, []byte("k")); !errors.Is(err, keyvalue.ErrKeyNotFound) {
			t.Errorf("Read after delete: got %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("Batch Operations", func(t *testing.T) {
		ops := []keyvalue.BatchOperation{
			{Type: keyvalue.BatchPut, Key: []byte("a"), Value: []byte("1")},
			{Type: keyvalue.BatchPut, Key: []byte("b"), Value: []byte("2")},
		}
		if err := db.Batch(ctx, ops); err != nil {
			t.Fatalf("Batch failed: %v", err)
		}

		got, err := db.Read(ctx, []byte("b"))
		if err != nil || string(got) != "2" {
			t.Errorf("b: got %s, %v", got, err)
		}
	})

	t.Run("Iterator Range", func(t *testing.T) {
		for _, k := range []string{"x1", "x2", "x3"} {
			if err := db.Write(ctx, []byte(k), []byte(k)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}

		it, err := db.Iterator(ctx, []byte("x1"), []byte("x3"))
		if err != nil {
			t.Fatalf("Iterator failed: %v", err)
		}
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		if len(keys) != 2 || keys[0] != "x1" || keys[1] != "x2" {
			t.Errorf("Wrong keys iterated: %v", keys)
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		closed := setupTestDB(t)
		if err := closed.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := closed.Write(ctx, []byte("k"), nil); !errors.Is(err, keyvalue.ErrDBClosed) {
			t.Errorf("Write on closed db: got %v, want ErrDBClosed", err)
		}
	})
}
