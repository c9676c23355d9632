package core

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Address 20-byte account address
type Address [20]byte

// HexToAddress parse 0x-prefixed hex address, checksum is not enforced
func HexToAddress(s string) (Address, error) {
	var a Address

	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s) != 2*len(a) {
		return a, fmt.Errorf("invalid address length %d", len(s))
	}

	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return a, fmt.Errorf("invalid address: %w", err)
	}

	return a, nil
}

// MustAddress like HexToAddress but panics
func MustAddress(s string) Address {
	a, err := HexToAddress(s)
	if err != nil {
		panic(err)
	}

	return a
}

// IsZero zero address
func (a Address) IsZero() bool {
	return a == Address{}
}

// Hex EIP-55 checksummed hex
func (a Address) Hex() string {
	lower := hex.EncodeToString(a[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	sum := h.Sum(nil)

	out := []byte(lower)
	for i := range out {
		if out[i] < 'a' {
			continue
		}

		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}

		if nibble&0xf >= 8 {
			out[i] -= 'a' - 'A'
		}
	}

	return "0x" + string(out)
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText implements encoding.TextMarshaler
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(text []byte) error {
	v, err := HexToAddress(string(text))
	if err != nil {
		return err
	}

	*a = v
	return nil
}

// Hash 32-byte keccak digest
type Hash [32]byte

// HexToHash parse 0x-prefixed 32-byte hex
func HexToHash(s string) (Hash, error) {
	var h Hash

	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s) != 2*len(h) {
		return h, fmt.Errorf("invalid hash length %d", len(s))
	}

	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("invalid hash: %w", err)
	}

	return h, nil
}

// MustHash like HexToHash but panics
func MustHash(s string) Hash {
	h, err := HexToHash(s)
	if err != nil {
		panic(err)
	}

	return h
}

// Keccak256 legacy keccak-256 of the concatenated inputs
func Keccak256(data ...[]byte) Hash {
	var h Hash

	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])

	return h
}

// Hex 0x-prefixed lowercase hex
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// MarshalText implements encoding.TextMarshaler
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Hash) UnmarshalText(text []byte) error {
	v, err := HexToHash(string(text))
	if err != nil {
		return err
	}

	*h = v
	return nil
}
