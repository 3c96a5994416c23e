// This file contains bounds-checking helpers used by envelope and key
// parsers to reject truncated or oversized inputs before allocating.

package utils

import "errors"

// Maximum allowed lengths to prevent DoS via large allocations.
const (
	// MaxMessageSize is the maximum allowed plaintext size in bytes.
	MaxMessageSize = 1 << 28 // 256MB

	// MaxEnvelopeSize is the maximum allowed serialized envelope size.
	MaxEnvelopeSize = MaxMessageSize + (1 << 16)
)

var (
	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")
)

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}

// ValidateSliceAccess checks that accessing data[offset:offset+size] is safe.
func ValidateSliceAccess(data []byte, offset, size int) error {
	if offset < 0 || size < 0 {
		return ErrInvalidLength
	}
	if offset+size < offset { // overflow check
		return ErrOverflow
	}
	if offset+size > len(data) {
		return errors.New("slice access out of bounds")
	}
	return nil
}
