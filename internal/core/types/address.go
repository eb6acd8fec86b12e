package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the size of an account identity in bytes.
const AddressLength = 20

// Address identifies an account. It is a raw 20-byte identifier rendered
// as 0x-prefixed hex.
type Address [AddressLength]byte

// ZeroAddress is the all-zero address.
var ZeroAddress Address

// ParseAddress decodes a 0x-prefixed hex string into an Address.
func ParseAddress(s string) (Address, error) {
	var a Address

	raw := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(raw) != AddressLength*2 {
		return a, fmt.Errorf("invalid address %q: want %d hex characters, got %d", s, AddressLength*2, len(raw))
	}

	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	copy(a[:], b)
	return a, nil
}

// String renders the address as 0x-prefixed lowercase hex.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
