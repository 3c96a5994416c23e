package engine

import (
	"fmt"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/aead"
	"github.com/lutherlabs/golden-go/kdf"
	"github.com/lutherlabs/golden-go/kem"
	"github.com/lutherlabs/golden-go/sign"
	"github.com/lutherlabs/golden-go/utils"
)

// encryptMultiLayer produces mode 3 envelopes:
//
//	0x03 || signature(3309, when signing enabled) || L(n-1)(...L0(data))
//
// The signature covers the entire layered ciphertext.
func (e *Engine) encryptMultiLayer(data []byte) ([]byte, error) {
	layered, err := e.applyLayers(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 1, 1+sign.SignatureSize+len(layered))
	out[0] = byte(golden.ModeMultiLayer)
	if e.signKeys != nil {
		sig, err := e.signKeys.Sign(layered)
		if err != nil {
			return nil, err
		}
		out = append(out, sig...)
	}
	return append(out, layered...), nil
}

func (e *Engine) decryptMultiLayer(payload []byte) ([]byte, error) {
	if e.signKeys != nil {
		if err := utils.ValidateSliceAccess(payload, 0, sign.SignatureSize); err != nil {
			return nil, fmt.Errorf("%w: truncated signature", golden.ErrMalformedEnvelope)
		}
		sig, layered := payload[:sign.SignatureSize], payload[sign.SignatureSize:]
		if !e.signKeys.Verify(layered, sig) {
			return nil, golden.ErrSignature
		}
		payload = layered
	}
	return e.removeLayers(payload)
}

// selectLegacyMode picks the single-shot mode by plaintext size.
func (e *Engine) selectLegacyMode(size int) golden.Mode {
	switch {
	case size < golden.ClassicalMaxSize:
		return golden.ModeClassical
	case e.kemKeys != nil && size > golden.PureKEMMinSize:
		return golden.ModeKEM
	default:
		return golden.ModeHybrid
	}
}

func (e *Engine) encryptLegacy(data []byte) ([]byte, error) {
	switch mode := e.selectLegacyMode(len(data)); mode {
	case golden.ModeClassical:
		return e.encryptClassical(data)
	case golden.ModeKEM:
		return e.encryptPureKEM(data)
	default:
		return e.encryptHybrid(data)
	}
}

// encryptClassical: 0x00 || key(32) || sealed. The key travels in the clear;
// this mode exists for envelope compatibility, not confidentiality against
// an observer of the full envelope.
func (e *Engine) encryptClassical(data []byte) ([]byte, error) {
	key, err := utils.SecureRandomBytes(golden.KeySize)
	if err != nil {
		return nil, err
	}
	sealed, err := e.aead.Seal(data, key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+len(key)+len(sealed))
	out = append(out, byte(golden.ModeClassical))
	out = append(out, key...)
	return append(out, sealed...), nil
}

func (e *Engine) decryptClassical(payload []byte) ([]byte, error) {
	if len(payload) < golden.KeySize+aead.Overhead {
		return nil, golden.ErrMalformedEnvelope
	}
	return e.aead.Open(payload[golden.KeySize:], payload[:golden.KeySize])
}

// encryptPureKEM: 0x01 || kemCT(1088) || sealed.
func (e *Engine) encryptPureKEM(data []byte) ([]byte, error) {
	body, err := e.sealWithKEM(data)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(golden.ModeKEM)}, body...), nil
}

func (e *Engine) decryptPureKEM(payload []byte) ([]byte, error) {
	if e.kemKeys == nil {
		return nil, fmt.Errorf("%w: engine has no KEM keypair for mode %s",
			golden.ErrMalformedEnvelope, golden.ModeKEM)
	}
	return e.openWithKEM(payload)
}

// encryptHybrid: 0x02 || kemCT(1088) || sealed with a KEM keypair,
// 0x02 || key(32) || sealed without one.
func (e *Engine) encryptHybrid(data []byte) ([]byte, error) {
	if e.kemKeys == nil {
		key, err := utils.SecureRandomBytes(golden.KeySize)
		if err != nil {
			return nil, err
		}
		sealed, err := e.aead.Seal(data, key)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, 1+len(key)+len(sealed))
		out = append(out, byte(golden.ModeHybrid))
		out = append(out, key...)
		return append(out, sealed...), nil
	}

	body, err := e.sealWithKEM(data)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(golden.ModeHybrid)}, body...), nil
}

func (e *Engine) decryptHybrid(payload []byte) ([]byte, error) {
	if e.kemKeys == nil {
		if len(payload) < golden.KeySize+aead.Overhead {
			return nil, golden.ErrMalformedEnvelope
		}
		return e.aead.Open(payload[golden.KeySize:], payload[:golden.KeySize])
	}
	return e.openWithKEM(payload)
}

// sealWithKEM encapsulates a fresh shared secret, expands it to an AEAD key
// and seals data: kemCT || sealed.
func (e *Engine) sealWithKEM(data []byte) ([]byte, error) {
	ct, ss, err := kem.Encapsulate(e.kemKeys.Public())
	if err != nil {
		return nil, err
	}
	key, err := kdf.ExpandSharedSecret(ss)
	utils.Zeroize(ss)
	if err != nil {
		return nil, err
	}

	sealed, err := e.aead.Seal(data, key[:])
	utils.Zeroize(key[:])
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(ct)+len(sealed))
	out = append(out, ct...)
	return append(out, sealed...), nil
}

func (e *Engine) openWithKEM(payload []byte) ([]byte, error) {
	if len(payload) < kem.CiphertextSize+aead.Overhead {
		return nil, golden.ErrMalformedEnvelope
	}
	ss, err := e.kemKeys.Decapsulate(payload[:kem.CiphertextSize])
	if err != nil {
		return nil, err
	}
	key, err := kdf.ExpandSharedSecret(ss)
	utils.Zeroize(ss)
	if err != nil {
		return nil, err
	}

	plaintext, err := e.aead.Open(payload[kem.CiphertextSize:], key[:])
	utils.Zeroize(key[:])
	return plaintext, err
}
