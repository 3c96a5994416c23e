package test

import (
	"bytes"
	"crypto/rand"
	"testing"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/aead"
	"github.com/lutherlabs/golden-go/core"
	"github.com/lutherlabs/golden-go/engine"
	"github.com/lutherlabs/golden-go/kem"
	"github.com/lutherlabs/golden-go/sign"
)

func newEngine(t *testing.T, params golden.Params) *engine.Engine {
	t.Helper()
	e, err := engine.New(params)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return e
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestEndToEndRoundTrip(t *testing.T) {
	e := newEngine(t, core.GoldStandardParams)

	sizes := []int{0, 1, 15, 16, 1024, 100000}
	if !testing.Short() {
		sizes = append(sizes, 1_000_000)
	}
	for _, n := range sizes {
		data := randomBytes(t, n)
		env, err := e.Encrypt(data)
		if err != nil {
			t.Fatalf("Encrypt(%d bytes) failed: %v", n, err)
		}
		dec, err := e.Decrypt(env)
		if err != nil {
			t.Fatalf("Decrypt(%d bytes) failed: %v", n, err)
		}
		if !bytes.Equal(dec, data) {
			t.Errorf("round trip mismatch at %d bytes", n)
		}
	}
}

func TestEnvelopeOverhead(t *testing.T) {
	// Per-envelope overhead beyond the fixed asymmetric material
	// (signature plus KEM ciphertext) stays within a small bound.
	e := newEngine(t, core.GoldStandardParams)
	fixed := 1 + sign.SignatureSize + kem.CiphertextSize

	for _, n := range []int{0, 1024, 100000} {
		data := randomBytes(t, n)
		env, err := e.Encrypt(data)
		if err != nil {
			t.Fatal(err)
		}
		overhead := len(env) - n - fixed
		if overhead < 0 || overhead > 500 {
			t.Errorf("overhead for %d bytes = %d, want within [0, 500]", n, overhead)
		}
	}
}

func TestFastProfileOverhead(t *testing.T) {
	e := newEngine(t, core.GoldFastParams)
	data := randomBytes(t, 1024)
	env, err := e.Encrypt(data)
	if err != nil {
		t.Fatal(err)
	}
	// 0x03 || seed(2) || nonce(12) || tag(16) || ct
	if want := 1 + 2 + aead.Overhead + len(data); len(env) != want {
		t.Errorf("fast envelope = %d bytes, want %d", len(env), want)
	}
}

func TestWholeEnvelopeTamperDetection(t *testing.T) {
	e := newEngine(t, core.GoldStandardParams)
	env, err := e.Encrypt([]byte("integrity matters"))
	if err != nil {
		t.Fatal(err)
	}
	for bit := 0; bit < 8; bit++ {
		tampered := bytes.Clone(env)
		tampered[len(tampered)-1] ^= 1 << bit
		if _, err := e.Decrypt(tampered); err == nil {
			t.Errorf("single-bit flip (bit %d) went undetected", bit)
		}
	}
}

func TestSuiteInterop(t *testing.T) {
	// GOLD-Standard (AES-GCM) and GOLD-Max (ChaCha20-Poly1305) produce
	// mutually unreadable envelopes even before key mismatch: the suites
	// must not accidentally interoperate.
	std := newEngine(t, core.GoldStandardParams)
	max := newEngine(t, core.GoldMaxParams)

	env, err := std.Encrypt([]byte("suite-bound payload"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := max.Decrypt(env); err == nil {
		t.Error("GOLD-Max engine decrypted a GOLD-Standard envelope")
	}
}

func TestEngineSignVerifyIntegration(t *testing.T) {
	e := newEngine(t, core.GoldStandardParams)
	msg := randomBytes(t, 256)

	sig, err := e.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig) != sign.SignatureSize {
		t.Errorf("signature size = %d, want %d", len(sig), sign.SignatureSize)
	}
	if !e.Verify(msg, sig) {
		t.Error("valid signature rejected")
	}

	msg[0] ^= 0x01
	if e.Verify(msg, sig) {
		t.Error("signature accepted for a modified message")
	}
}

func TestSecurityLevelReporting(t *testing.T) {
	e := newEngine(t, core.GoldStandardParams)
	if level := e.SecurityLevel(); level == "" {
		t.Error("empty security level description")
	}
}
