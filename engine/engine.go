// Package engine implements the Golden layered encryption engine: the layer
// pipeline, the envelope codec, and the top-level encrypt/decrypt/sign/verify
// orchestration.
package engine

import (
	"fmt"
	"os"
	"strings"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/aead"
	"github.com/lutherlabs/golden-go/core"
	"github.com/lutherlabs/golden-go/kem"
	"github.com/lutherlabs/golden-go/sign"
	"github.com/lutherlabs/golden-go/utils"
)

// Engine is a layered hybrid encryption engine. Its keypairs are generated
// at construction and never rotated; rotation means constructing a new
// engine. All methods are safe for concurrent use because no call mutates
// engine state.
type Engine struct {
	params   golden.Params
	aead     aead.Scheme
	kemKeys  *kem.KeyPair
	signKeys *sign.KeyPair
}

// New constructs an engine for the given parameter set, generating the
// keypairs its toggles call for.
func New(params golden.Params) (*Engine, error) {
	if err := core.ValidateParams(params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	scheme, err := aead.ForSuite(params.AEADSuite)
	if err != nil {
		return nil, err
	}

	e := &Engine{params: params, aead: scheme}

	if params.EnableKEM {
		e.kemKeys, err = kem.GenerateKeyPair()
		if err != nil {
			return nil, fmt.Errorf("generate KEM keypair: %w", err)
		}
	}
	if params.EnableSign {
		e.signKeys, err = sign.GenerateKeyPair()
		if err != nil {
			return nil, fmt.Errorf("generate signing keypair: %w", err)
		}
	}
	return e, nil
}

// NewDefault constructs an engine with the GOLD-Standard profile.
func NewDefault() (*Engine, error) {
	return New(core.DefaultParams())
}

// Params returns the engine's parameter set.
func (e *Engine) Params() golden.Params {
	return e.params
}

// Encrypt wraps data in the engine's envelope format: the layered pipeline
// when multi-layer mode is enabled, otherwise one of the size-thresholded
// single-shot modes.
func (e *Engine) Encrypt(data []byte) ([]byte, error) {
	if err := utils.CheckLength(len(data), utils.MaxMessageSize); err != nil {
		return nil, fmt.Errorf("plaintext: %w", err)
	}
	if e.params.MultiLayer {
		return e.encryptMultiLayer(data)
	}
	return e.encryptLegacy(data)
}

// Decrypt reverses Encrypt. The mode byte selects the decode path; the
// signature, when present, is verified before any layer is decoded.
func (e *Engine) Decrypt(envelope []byte) ([]byte, error) {
	if len(envelope) < 1 {
		return nil, golden.ErrMalformedEnvelope
	}
	if err := utils.CheckLength(len(envelope), utils.MaxEnvelopeSize); err != nil {
		return nil, fmt.Errorf("%w: %v", golden.ErrMalformedEnvelope, err)
	}

	mode, payload := golden.Mode(envelope[0]), envelope[1:]
	switch mode {
	case golden.ModeMultiLayer:
		return e.decryptMultiLayer(payload)
	case golden.ModeClassical:
		return e.decryptClassical(payload)
	case golden.ModeKEM:
		return e.decryptPureKEM(payload)
	case golden.ModeHybrid:
		return e.decryptHybrid(payload)
	default:
		return nil, fmt.Errorf("%w: unrecognized mode byte %#02x", golden.ErrMalformedEnvelope, envelope[0])
	}
}

// KEMPublicKey returns the packed ML-KEM-768 public key, or nil when the
// engine carries no KEM keypair.
func (e *Engine) KEMPublicKey() []byte {
	if e.kemKeys == nil {
		return nil
	}
	return e.kemKeys.PublicBytes()
}

// SignPublicKey returns the packed ML-DSA-65 public key, or nil when the
// engine carries no signing keypair.
func (e *Engine) SignPublicKey() []byte {
	if e.signKeys == nil {
		return nil
	}
	return e.signKeys.PublicBytes()
}

// Sign signs msg with the engine's ML-DSA-65 keypair, or falls back to the
// keyless pseudo-signature when the engine was built without one.
func (e *Engine) Sign(msg []byte) ([]byte, error) {
	if e.signKeys != nil {
		return e.signKeys.Sign(msg)
	}
	return sign.PseudoSign(msg), nil
}

// Verify reports whether sig is valid for msg under the engine's signing
// regime (ML-DSA-65 or the pseudo-signature fallback).
func (e *Engine) Verify(msg, sig []byte) bool {
	if e.signKeys != nil {
		return e.signKeys.Verify(msg, sig)
	}
	return sign.PseudoVerify(msg, sig)
}

// SecurityLevel describes the engine's active features.
func (e *Engine) SecurityLevel() string {
	if !e.params.MultiLayer {
		return "Standard Golden Security"
	}
	var features []string
	if e.kemKeys != nil {
		features = append(features, "ML-KEM-768")
	}
	if e.signKeys != nil {
		features = append(features, "ML-DSA-65")
	}
	features = append(features, fmt.Sprintf("%d Encryption Layers", e.params.Layers))
	if e.params.QuantumBoost {
		features = append(features, "Quantum Boost")
	}
	features = append(features, e.aead.Name())
	return "Super Golden Security: " + strings.Join(features, ", ")
}

// EncryptFile encrypts the contents of inPath into outPath and returns the
// number of envelope bytes written.
func (e *Engine) EncryptFile(inPath, outPath string) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, err
	}
	envelope, err := e.Encrypt(data)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, envelope, 0o600); err != nil {
		return 0, err
	}
	return len(envelope), nil
}

// DecryptFile decrypts the envelope in inPath into outPath and returns the
// number of plaintext bytes written.
func (e *Engine) DecryptFile(inPath, outPath string) (int, error) {
	envelope, err := os.ReadFile(inPath)
	if err != nil {
		return 0, err
	}
	data, err := e.Decrypt(envelope)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return 0, err
	}
	return len(data), nil
}
