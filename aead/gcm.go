package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/utils"
)

type aesGCM struct{}

func (aesGCM) Name() string { return string(golden.SuiteAES256GCM) }

func (aesGCM) Overhead() int { return Overhead }

func (aesGCM) Seal(plaintext, key []byte) ([]byte, error) {
	g, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := utils.SecureRandomBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// gcm.Seal emits ciphertext || tag; reorder into the pipeline framing.
	ct := g.Seal(nil, nonce, plaintext, nil)
	return frame(nonce, ct), nil
}

func (aesGCM) Open(sealed, key []byte) ([]byte, error) {
	g, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return open(g, sealed)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aes-gcm key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// frame converts nonce plus native ciphertext||tag output into
// nonce || tag || ciphertext.
func frame(nonce, ct []byte) []byte {
	n := len(ct) - TagSize
	out := make([]byte, 0, NonceSize+len(ct))
	out = append(out, nonce...)
	out = append(out, ct[n:]...)
	out = append(out, ct[:n]...)
	return out
}

// open reverses frame and authenticates. Any failure, including inputs too
// short to carry a nonce and tag, surfaces as golden.ErrAuthentication.
func open(g cipher.AEAD, sealed []byte) ([]byte, error) {
	if len(sealed) < Overhead {
		return nil, golden.ErrAuthentication
	}
	nonce := sealed[:NonceSize]
	tag := sealed[NonceSize:Overhead]
	body := sealed[Overhead:]

	ct := make([]byte, 0, len(body)+TagSize)
	ct = append(ct, body...)
	ct = append(ct, tag...)

	plaintext, err := g.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, golden.ErrAuthentication
	}
	return plaintext, nil
}
