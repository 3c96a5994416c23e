package aead

import (
	"bytes"
	"errors"
	"testing"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/utils"
)

func schemes(t *testing.T) []Scheme {
	t.Helper()
	var out []Scheme
	for _, suite := range []golden.Suite{golden.SuiteAES256GCM, golden.SuiteChaCha20Poly1305} {
		s, err := ForSuite(suite)
		if err != nil {
			t.Fatalf("ForSuite(%s) failed: %v", suite, err)
		}
		out = append(out, s)
	}
	return out
}

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := utils.SecureRandomBytes(KeySize)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	plaintexts := [][]byte{
		{},
		[]byte("a"),
		[]byte("hello golden"),
		bytes.Repeat([]byte{0x5A}, 15),
		bytes.Repeat([]byte{0x5A}, 16),
		bytes.Repeat([]byte{0x5A}, 1024),
		make([]byte, 100000),
	}

	for _, s := range schemes(t) {
		key := testKey(t)
		for _, pt := range plaintexts {
			sealed, err := s.Seal(pt, key)
			if err != nil {
				t.Fatalf("%s: Seal(%d bytes) failed: %v", s.Name(), len(pt), err)
			}
			if len(sealed) != len(pt)+s.Overhead() {
				t.Errorf("%s: sealed length = %d, want %d", s.Name(), len(sealed), len(pt)+s.Overhead())
			}
			got, err := s.Open(sealed, key)
			if err != nil {
				t.Fatalf("%s: Open failed: %v", s.Name(), err)
			}
			if !bytes.Equal(got, pt) {
				t.Errorf("%s: round trip mismatch for %d bytes", s.Name(), len(pt))
			}
		}
	}
}

func TestNonceFreshness(t *testing.T) {
	for _, s := range schemes(t) {
		key := testKey(t)
		a, err := s.Seal([]byte("same plaintext"), key)
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Seal([]byte("same plaintext"), key)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(a[:NonceSize], b[:NonceSize]) {
			t.Errorf("%s: nonce reused across Seal calls", s.Name())
		}
		if bytes.Equal(a, b) {
			t.Errorf("%s: identical sealed output across Seal calls", s.Name())
		}
	}
}

func TestOpenTamperDetection(t *testing.T) {
	for _, s := range schemes(t) {
		key := testKey(t)
		sealed, err := s.Seal([]byte("authenticated payload"), key)
		if err != nil {
			t.Fatal(err)
		}
		for i := range sealed {
			corrupted := bytes.Clone(sealed)
			corrupted[i] ^= 0x01
			if _, err := s.Open(corrupted, key); !errors.Is(err, golden.ErrAuthentication) {
				t.Errorf("%s: flipping byte %d: error = %v, want ErrAuthentication", s.Name(), i, err)
			}
		}
	}
}

func TestOpenWrongKey(t *testing.T) {
	for _, s := range schemes(t) {
		sealed, err := s.Seal([]byte("payload"), testKey(t))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Open(sealed, testKey(t)); !errors.Is(err, golden.ErrAuthentication) {
			t.Errorf("%s: wrong key: error = %v, want ErrAuthentication", s.Name(), err)
		}
	}
}

func TestOpenShortInput(t *testing.T) {
	for _, s := range schemes(t) {
		key := testKey(t)
		for _, n := range []int{0, 1, NonceSize, Overhead - 1} {
			if _, err := s.Open(make([]byte, n), key); !errors.Is(err, golden.ErrAuthentication) {
				t.Errorf("%s: Open(%d bytes) error = %v, want ErrAuthentication", s.Name(), n, err)
			}
		}
	}
}

func TestSealRejectsBadKeySize(t *testing.T) {
	for _, s := range schemes(t) {
		for _, n := range []int{0, 16, 31, 33} {
			if _, err := s.Seal([]byte("x"), make([]byte, n)); err == nil {
				t.Errorf("%s: Seal accepted %d-byte key", s.Name(), n)
			}
		}
	}
}

func TestForSuiteUnknown(t *testing.T) {
	if _, err := ForSuite("ROT13"); err == nil {
		t.Error("expected error for unknown suite")
	}
}
