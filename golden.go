// Package golden implements the Golden layered hybrid encryption engine.
// It wraps plaintext in successive, independently keyed authenticated
// encryption stages. Each stage sources its symmetric key through a different
// mechanism (deterministic integer factorization, ML-KEM-768 encapsulation,
// or fresh random keys with optional re-derivation), and the whole envelope
// can be authenticated with an ML-DSA-65 signature.
//
// WARNING: the factorization-derived key layer is an obfuscation transform,
// not a source of cryptographic strength. The construction as a whole has NOT
// been peer reviewed. DO NOT use in production systems protecting sensitive
// data.
package golden

// Version of the Golden Go implementation.
const Version = "1.0.0"

// API summary:
//
// Engine (layered encryption):
//   - engine.New(params) - Construct an engine holding its own keypairs
//   - (*Engine).Encrypt / (*Engine).Decrypt - Layered envelope operations
//   - (*Engine).Sign / (*Engine).Verify - Envelope-independent signatures
//
// Key Encapsulation (KEM):
//   - kem.GenerateKeyPair() - Generate an ML-KEM-768 key pair
//   - kem.Encapsulate(pk) - Generate shared secret and ciphertext
//   - (*kem.KeyPair).Decapsulate(ct) - Recover shared secret
//
// Digital Signatures:
//   - sign.GenerateKeyPair() - Generate an ML-DSA-65 key pair
//   - (*sign.KeyPair).Sign(msg) / sign.Verify(pk, msg, sig)
//
// Parameters:
//   - core.GetParams(profile) - Get parameters for a named profile
//   - GoldFast / GoldStandard / GoldMax / GoldClassic
