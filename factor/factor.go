// Package factor implements deterministic integer factorization.
//
// The factorizer is used as a key-derivation transform: the KDF hashes the
// canonical encoding of the factor sequence, so for a given input the result
// must be identical on every call, on every machine, under any concurrency.
// The parallel range search below therefore always selects the globally
// smallest divisor across workers, never the first worker to complete.
package factor

import (
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/lutherlabs/golden-go/utils"
)

const (
	// MinFactorBound is the threshold below which inputs are returned
	// unfactored as a single-element sequence. Purely a performance bound;
	// it must be identical on the encode and decode paths.
	MinFactorBound = 1 << 10

	// MaxInput bounds FactorChecked inputs so that trial division up to
	// sqrt(n) stays tractable.
	MaxInput = 1 << 48

	// parallelRange is the trial-division range size above which the
	// search is split across workers.
	parallelRange = 1 << 20

	factorWorkers = 4
)

// Factor returns the ordered factor sequence of n. The product of the result
// equals n, the sequence is sorted ascending, and every entry above
// MinFactorBound is prime. Inputs below MinFactorBound (including 0 and 1)
// are returned as [n] unchanged.
func Factor(n uint64) []uint64 {
	fs := factorize(n)
	slices.Sort(fs)
	return fs
}

// FactorChecked is Factor with the MaxInput bound enforced.
func FactorChecked(n uint64) ([]uint64, error) {
	if n > MaxInput {
		return nil, utils.ErrExceedsLimit
	}
	return Factor(n), nil
}

func factorize(n uint64) []uint64 {
	if n < MinFactorBound {
		return []uint64{n}
	}
	d, ok := smallestDivisor(n)
	if !ok {
		// n is prime.
		return []uint64{n}
	}
	return append(factorize(d), factorize(n/d)...)
}

// smallestDivisor returns the smallest divisor of n in [2, sqrt(n)], or
// false if none exists.
func smallestDivisor(n uint64) (uint64, bool) {
	limit := isqrt(n)
	if limit < 2 {
		return 0, false
	}
	if limit-1 <= parallelRange {
		return scanRange(n, 2, limit)
	}
	return smallestDivisorParallel(n, limit)
}

// smallestDivisorParallel splits [2, limit] into contiguous sub-ranges, one
// per worker. Each worker reports the smallest divisor in its own range; the
// global minimum across workers is the answer regardless of which worker
// finishes first.
func smallestDivisorParallel(n, limit uint64) (uint64, bool) {
	span := limit - 1 // size of [2, limit]
	chunk := span/factorWorkers + 1

	var found [factorWorkers]uint64
	var g errgroup.Group
	for w := uint64(0); w < factorWorkers; w++ {
		start := 2 + w*chunk
		end := start + chunk - 1
		if end > limit {
			end = limit
		}
		if start > limit {
			break
		}
		w := w
		g.Go(func() error {
			if d, ok := scanRange(n, start, end); ok {
				found[w] = d
			}
			return nil
		})
	}
	_ = g.Wait()

	best := uint64(0)
	for _, d := range found {
		if d != 0 && (best == 0 || d < best) {
			best = d
		}
	}
	return best, best != 0
}

// scanRange returns the smallest divisor of n in [start, end].
func scanRange(n, start, end uint64) (uint64, bool) {
	for i := start; i <= end; i++ {
		if n%i == 0 {
			return i, true
		}
	}
	return 0, false
}

// isqrt returns the integer square root of n. Candidate roots are clamped
// to 2^32-1 so the correction squares cannot overflow uint64.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	const maxRoot = 1<<32 - 1
	r := uint64(math.Sqrt(float64(n)))
	if r > maxRoot {
		r = maxRoot
	}
	for r > 0 && r*r > n {
		r--
	}
	for r < maxRoot && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
