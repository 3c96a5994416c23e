package aead

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/utils"
)

type chaCha20Poly1305 struct{}

func (chaCha20Poly1305) Name() string { return string(golden.SuiteChaCha20Poly1305) }

func (chaCha20Poly1305) Overhead() int { return Overhead }

func (chaCha20Poly1305) Seal(plaintext, key []byte) ([]byte, error) {
	g, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("chacha20poly1305: %w", err)
	}

	nonce, err := utils.SecureRandomBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ct := g.Seal(nil, nonce, plaintext, nil)
	return frame(nonce, ct), nil
}

func (chaCha20Poly1305) Open(sealed, key []byte) ([]byte, error) {
	g, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("chacha20poly1305: %w", err)
	}
	return open(g, sealed)
}
