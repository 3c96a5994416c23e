// Package kem adapts ML-KEM-768 key encapsulation for the Golden engine.
package kem

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/lutherlabs/golden-go/utils"
)

const (
	// PublicKeySize is the size of an ML-KEM-768 public key in bytes.
	PublicKeySize = mlkem768.PublicKeySize
	// SecretKeySize is the size of an ML-KEM-768 secret key in bytes.
	SecretKeySize = mlkem768.PrivateKeySize
	// CiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	CiphertextSize = mlkem768.CiphertextSize
	// SharedSecretSize is the size of the encapsulated shared secret.
	SharedSecretSize = mlkem768.SharedKeySize
)

var (
	// ErrInvalidPublicKeySize is returned when a public key has the wrong size.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidCiphertextSize is returned when a KEM ciphertext has the wrong size.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")
)

// KeyPair holds an ML-KEM-768 keypair. It is generated once at engine
// construction and is immutable for the engine's lifetime; rotation means
// constructing a new engine.
type KeyPair struct {
	pub  *mlkem768.PublicKey
	priv *mlkem768.PrivateKey
}

// GenerateKeyPair generates a fresh ML-KEM-768 keypair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := mlkem768.GenerateKeyPair(utils.RandReader)
	if err != nil {
		return nil, fmt.Errorf("mlkem768 keygen: %w", err)
	}
	return &KeyPair{pub: pub, priv: priv}, nil
}

// Public returns the encapsulation key.
func (kp *KeyPair) Public() *mlkem768.PublicKey {
	return kp.pub
}

// PublicBytes returns the serialized encapsulation key.
func (kp *KeyPair) PublicBytes() []byte {
	// MarshalBinary never fails for keys produced by GenerateKeyPair.
	buf, _ := kp.pub.MarshalBinary()
	return buf
}

// Encapsulate generates a shared secret bound to a ciphertext that only the
// holder of the matching secret key can recover.
func Encapsulate(pub *mlkem768.PublicKey) (ct, ss []byte, err error) {
	ct = make([]byte, CiphertextSize)
	ss = make([]byte, SharedSecretSize)
	pub.EncapsulateTo(ct, ss, nil)
	return ct, ss, nil
}

// Decapsulate recovers the shared secret from a KEM ciphertext. A forged or
// corrupted ciphertext yields a uniformly random secret (implicit rejection),
// so callers detect tampering one level up, at the AEAD tag.
func (kp *KeyPair) Decapsulate(ct []byte) ([]byte, error) {
	if len(ct) != CiphertextSize {
		return nil, ErrInvalidCiphertextSize
	}
	ss := make([]byte, SharedSecretSize)
	kp.priv.DecapsulateTo(ss, ct)
	return ss, nil
}

// ParsePublicKey deserializes an encapsulation key.
func ParsePublicKey(buf []byte) (*mlkem768.PublicKey, error) {
	if len(buf) != PublicKeySize {
		return nil, ErrInvalidPublicKeySize
	}
	var pub mlkem768.PublicKey
	pub.Unpack(buf)
	return &pub, nil
}
