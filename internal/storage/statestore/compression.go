package statestore

import (
	"fmt"

	"github.com/pierrec/lz4"
)

// Compressor handles payload compression for stored snapshots.
type Compressor interface {
	// Name returns the name of the compressor.
	Name() string

	// Compress compresses data.
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data. originalSize is the exact size of the
	// uncompressed payload.
	Decompress(data []byte, originalSize int) ([]byte, error)
}

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string { return "none" }

// Compress returns the data unchanged.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Decompress returns the data unchanged.
func (c *NoCompressor) Decompress(data []byte, originalSize int) ([]byte, error) {
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// LZ4Compressor implements LZ4 block compression.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string { return "lz4" }

// Compress compresses data using LZ4.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 {
		// Incompressible input: CompressBlock signals this with n == 0,
		// fall back to storing the raw bytes.
		return nil, errIncompressible
	}
	return compressed[:n], nil
}

// Decompress decompresses LZ4 data into a buffer of the known original size.
func (c *LZ4Compressor) Decompress(data []byte, originalSize int) ([]byte, error) {
	if originalSize == 0 {
		return []byte{}, nil
	}

	decompressed := make([]byte, originalSize)
	n, err := lz4.UncompressBlock(data, decompressed)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	return decompressed[:n], nil
}

var errIncompressible = fmt.Errorf("lz4: input is incompressible")
