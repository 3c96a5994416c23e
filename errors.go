package golden

import "errors"

var (
	// ErrAuthentication is returned when an AEAD tag fails to verify,
	// indicating tampering or corruption. Never retried.
	ErrAuthentication = errors.New("authentication failed")

	// ErrSignature is returned when the envelope signature fails
	// verification. Decryption aborts before any layer is decoded.
	ErrSignature = errors.New("signature verification failed")

	// ErrMalformedEnvelope is returned when an envelope is shorter than
	// the minimum length implied by its mode byte, or the mode byte is
	// unrecognized.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrKeyDerivation is returned when a seed recovered at decrypt time
	// fails to reproduce the key material the matching encrypt step used.
	// This signals a defect in a layer implementation, not a recoverable
	// runtime condition.
	ErrKeyDerivation = errors.New("key derivation inconsistency")
)
