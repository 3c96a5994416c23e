package sign

import (
	"bytes"
	"errors"
	"testing"
)

func TestSignVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	msg := []byte("this is a message to sign")
	sig, err := kp.Sign(msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != SignatureSize {
		t.Errorf("signature size = %d, want %d", len(sig), SignatureSize)
	}

	if !kp.Verify(msg, sig) {
		t.Error("signature verification failed")
	}
	if kp.Verify([]byte("this is a different message"), sig) {
		t.Error("signature verified for wrong message")
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	msg := []byte("payload")
	sig, err := kp.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}

	corrupted := bytes.Clone(sig)
	corrupted[0] ^= 0x01
	if kp.Verify(msg, corrupted) {
		t.Error("tampered signature verified")
	}

	if kp.Verify(msg, sig[:SignatureSize-1]) {
		t.Error("truncated signature verified")
	}
}

func TestVerifyWrongKey(t *testing.T) {
	a, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("payload")
	sig, err := a.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	if b.Verify(msg, sig) {
		t.Error("signature verified under unrelated key")
	}
}

func TestParsePublicKey(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	buf := kp.PublicBytes()
	if len(buf) != PublicKeySize {
		t.Fatalf("public key size = %d, want %d", len(buf), PublicKeySize)
	}

	pub, err := ParsePublicKey(buf)
	if err != nil {
		t.Fatalf("ParsePublicKey failed: %v", err)
	}

	msg := []byte("interop check")
	sig, err := kp.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(pub, msg, sig) {
		t.Error("round-tripped public key does not verify")
	}

	if _, err := ParsePublicKey(buf[:10]); !errors.Is(err, ErrInvalidPublicKeySize) {
		t.Errorf("short key: error = %v, want ErrInvalidPublicKeySize", err)
	}
}

func TestPseudoSignVerify(t *testing.T) {
	msg := []byte("fallback message")
	sig := PseudoSign(msg)
	if len(sig) != PseudoSignatureSize {
		t.Errorf("pseudo-signature size = %d, want %d", len(sig), PseudoSignatureSize)
	}
	if !PseudoVerify(msg, sig) {
		t.Error("pseudo-signature verification failed")
	}
	if PseudoVerify([]byte("other message"), sig) {
		t.Error("pseudo-signature verified for wrong message")
	}
	if PseudoVerify(msg, sig[:16]) {
		t.Error("truncated pseudo-signature verified")
	}
}
