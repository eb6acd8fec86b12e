// Package statestore persists the vault's state snapshot through a
// keyvalue backend. One snapshot record is written per successful
// mutation, inside one batch, which is the durability commit point.
package statestore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/fundvault/fundvaultd/internal/storage/keyvalue"
)

// stateKey is the key the singleton snapshot record lives under.
var stateKey = []byte("vault/state")

// Snapshot is the persisted form of the vault's mutable state. Addresses
// are 0x-hex strings and amounts are decimal strings of base units, so
// the record stays independent of any in-memory representation.
type Snapshot struct {
	Owner    string          `codec:"owner"`
	Balances []BalanceRecord `codec:"balances"`
	Funders  []string        `codec:"funders"`
	Held     string          `codec:"held"`
}

// BalanceRecord is one contributor's cumulative balance.
type BalanceRecord struct {
	Address string `codec:"address"`
	Amount  string `codec:"amount"`
}

// Store reads and writes vault snapshots.
type Store struct {
	db   keyvalue.DB
	comp Compressor
}

// NewStore creates a snapshot store over db. A nil compressor means no
// compression.
func NewStore(db keyvalue.DB, comp Compressor) *Store {
	if comp == nil {
		comp = &NoCompressor{}
	}
	return &Store{db: db, comp: comp}
}

// Record framing: [1-byte compressor id][4-byte BE uncompressed length][payload].
const (
	frameNone byte = 0
	frameLZ4  byte = 1

	frameHeaderLen = 5
)

var cborHandle = &codec.CborHandle{}

// Save writes the snapshot as one atomic batch.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	var raw []byte
	if err := codec.NewEncoderBytes(&raw, cborHandle).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tag := frameNone
	payload := raw
	if _, isLZ4 := s.comp.(*LZ4Compressor); isLZ4 {
		compressed, err := s.comp.Compress(raw)
		switch {
		case errors.Is(err, errIncompressible):
			// keep the raw payload
		case err != nil:
			return err
		default:
			tag = frameLZ4
			payload = compressed
		}
	}

	record := make([]byte, frameHeaderLen+len(payload))
	record[0] = tag
	binary.BigEndian.PutUint32(record[1:frameHeaderLen], uint32(len(raw)))
	copy(record[frameHeaderLen:], payload)

	return s.db.Batch(ctx, []keyvalue.BatchOperation{
		{Type: keyvalue.BatchPut, Key: stateKey, Value: record},
	})
}

// Load reads the snapshot. The second return is false when no snapshot
// has ever been saved.
func (s *Store) Load(ctx context.Context) (Snapshot, bool, error) {
	var snap Snapshot

	record, err := s.db.Read(ctx, stateKey)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, err
	}
	if len(record) < frameHeaderLen {
		return snap, false, fmt.Errorf("snapshot record too short: %d bytes", len(record))
	}

	originalSize := int(binary.BigEndian.Uint32(record[1:frameHeaderLen]))
	payload := record[frameHeaderLen:]

	var raw []byte
	switch record[0] {
	case frameNone:
		raw = payload
	case frameLZ4:
		raw, err = (&LZ4Compressor{}).Decompress(payload, originalSize)
		if err != nil {
			return snap, false, err
		}
	default:
		return snap, false, fmt.Errorf("unknown snapshot compression tag %d", record[0])
	}

	if err := codec.NewDecoderBytes(raw, cborHandle).Decode(&snap); err != nil {
		return snap, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}
