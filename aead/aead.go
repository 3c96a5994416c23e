// Package aead adapts authenticated ciphers to the fixed framing the layer
// pipeline slices by: nonce (12 bytes) || tag (16 bytes) || ciphertext.
package aead

import (
	"fmt"

	golden "github.com/lutherlabs/golden-go"
)

const (
	// KeySize is the symmetric key length for both suites.
	KeySize = 32
	// NonceSize is the nonce length for both suites.
	NonceSize = 12
	// TagSize is the authentication tag length for both suites.
	TagSize = 16
	// Overhead is sealed length minus plaintext length.
	Overhead = NonceSize + TagSize
)

// Scheme seals and opens byte strings under a 32-byte key. Seal draws a
// fresh random nonce per call; Open fails with golden.ErrAuthentication on
// any tag mismatch or short input.
type Scheme interface {
	Name() string
	Seal(plaintext, key []byte) ([]byte, error)
	Open(sealed, key []byte) ([]byte, error)
	Overhead() int
}

// ForSuite returns the Scheme implementing the named cipher suite.
func ForSuite(suite golden.Suite) (Scheme, error) {
	switch suite {
	case golden.SuiteAES256GCM:
		return aesGCM{}, nil
	case golden.SuiteChaCha20Poly1305:
		return chaCha20Poly1305{}, nil
	default:
		return nil, fmt.Errorf("unknown AEAD suite: %s", suite)
	}
}
