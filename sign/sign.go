// Package sign adapts ML-DSA-65 signatures for the Golden engine, with a
// keyless hash-based pseudo-signature fallback for engines built without a
// signing keypair.
package sign

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/lutherlabs/golden-go/utils"
)

const (
	// PublicKeySize is the size of an ML-DSA-65 public key in bytes.
	PublicKeySize = mldsa65.PublicKeySize
	// SignatureSize is the size of an ML-DSA-65 signature in bytes.
	SignatureSize = mldsa65.SignatureSize

	// PseudoSignatureSize is the size of the fallback pseudo-signature.
	PseudoSignatureSize = 32

	// DomainFallback separates the fallback pseudo-signature from every
	// other hash use in the module.
	DomainFallback = "golden-sign-fallback-v1"
)

// ErrInvalidPublicKeySize is returned when a public key has the wrong size.
var ErrInvalidPublicKeySize = errors.New("invalid public key size")

// KeyPair holds an ML-DSA-65 keypair, generated once at engine construction
// and immutable for the engine's lifetime.
type KeyPair struct {
	pub  *mldsa65.PublicKey
	priv *mldsa65.PrivateKey
}

// GenerateKeyPair generates a fresh ML-DSA-65 keypair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := mldsa65.GenerateKey(utils.RandReader)
	if err != nil {
		return nil, fmt.Errorf("mldsa65 keygen: %w", err)
	}
	return &KeyPair{pub: pub, priv: priv}, nil
}

// Public returns the verification key.
func (kp *KeyPair) Public() *mldsa65.PublicKey {
	return kp.pub
}

// PublicBytes returns the serialized verification key.
func (kp *KeyPair) PublicBytes() []byte {
	buf, _ := kp.pub.MarshalBinary()
	return buf
}

// Sign produces a deterministic ML-DSA-65 signature over msg.
func (kp *KeyPair) Sign(msg []byte) ([]byte, error) {
	sig := make([]byte, SignatureSize)
	if err := mldsa65.SignTo(kp.priv, msg, nil, false, sig); err != nil {
		return nil, fmt.Errorf("mldsa65 sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature of msg under pub.
func Verify(pub *mldsa65.PublicKey, msg, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return mldsa65.Verify(pub, msg, nil, sig)
}

// Verify reports whether sig is valid under this keypair's public key.
func (kp *KeyPair) Verify(msg, sig []byte) bool {
	return Verify(kp.pub, msg, sig)
}

// ParsePublicKey deserializes a verification key.
func ParsePublicKey(buf []byte) (*mldsa65.PublicKey, error) {
	if len(buf) != PublicKeySize {
		return nil, ErrInvalidPublicKeySize
	}
	var pub mldsa65.PublicKey
	if err := pub.UnmarshalBinary(buf); err != nil {
		return nil, fmt.Errorf("unmarshal public key: %w", err)
	}
	return &pub, nil
}

// PseudoSign is the keyless fallback: a domain-separated digest of msg.
// It provides integrity against accidental corruption only, not
// authentication against an adversary.
func PseudoSign(msg []byte) []byte {
	return utils.HashWithDomain(DomainFallback, msg)
}

// PseudoVerify checks a fallback pseudo-signature in constant time.
func PseudoVerify(msg, sig []byte) bool {
	return utils.ConstantTimeEqual(PseudoSign(msg), sig)
}
