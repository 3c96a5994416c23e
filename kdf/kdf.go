// Package kdf derives symmetric keys from small integer seeds.
//
// Every function here is pure: it is called once on the encrypt path and
// once on the decrypt path, and the two sides must produce byte-identical
// output from byte-identical input. Nothing in this package may depend on
// randomness, locale, platform, or call ordering.
package kdf

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/hkdf"

	"github.com/lutherlabs/golden-go/factor"
)

const (
	// KeySize is the length of every derived key.
	KeySize = 32

	// LayerSeedWindow is the number of leading input bytes hashed by
	// SeedFromLayerInput.
	LayerSeedWindow = 16

	// kemKeyInfo domain-separates the KEM shared-secret expansion.
	kemKeyInfo = "golden-kem-key-v1"
)

// CanonicalFactors encodes an ordered factor sequence as comma-joined
// base-10 digits. The encoding is fixed and platform-independent; the
// derived key is a hash of exactly these bytes.
func CanonicalFactors(fs []uint64) []byte {
	buf := make([]byte, 0, len(fs)*7)
	for i, f := range fs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, f, 10)
	}
	return buf
}

// DeriveKey maps a bounded seed to a 32-byte key by hashing the canonical
// encoding of the seed's factor sequence.
func DeriveKey(seed uint64) [KeySize]byte {
	return sha256.Sum256(CanonicalFactors(factor.Factor(seed)))
}

// SeedFromLayerInput extracts a bounded seed from the leading bytes of a
// layer's input. The window is hashed and the digest reduced mod 2^16
// (its trailing two bytes, big-endian).
func SeedFromLayerInput(data []byte) uint16 {
	window := data
	if len(window) > LayerSeedWindow {
		window = window[:LayerSeedWindow]
	}
	digest := sha256.Sum256(window)
	return binary.BigEndian.Uint16(digest[sha256.Size-2:])
}

// SeedFromKeyBytes extracts a bounded seed from raw key bytes: the key
// interpreted as a big-endian integer, reduced mod 2^20.
func SeedFromKeyBytes(key []byte) uint32 {
	var tail [4]byte
	n := len(key)
	if n >= 4 {
		copy(tail[:], key[n-4:])
	} else {
		copy(tail[4-n:], key)
	}
	return binary.BigEndian.Uint32(tail[:]) & 0xFFFFF
}

// ExpandSharedSecret expands a KEM shared secret into a 32-byte AEAD key
// via HKDF-SHA-256. The shared secret is never used directly, decoupling
// the AEAD key length from the KEM's native secret length.
func ExpandSharedSecret(ss []byte) ([KeySize]byte, error) {
	var key [KeySize]byte
	r := hkdf.New(sha256.New, ss, nil, []byte(kemKeyInfo))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return key, fmt.Errorf("expand shared secret: %w", err)
	}
	return key, nil
}
