package factor

import (
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/lutherlabs/golden-go/utils"
)

func product(fs []uint64) uint64 {
	p := uint64(1)
	for _, f := range fs {
		p *= f
	}
	return p
}

func TestFactorSmallInputsPassThrough(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 6, 100, 1023} {
		fs := Factor(n)
		if len(fs) != 1 || fs[0] != n {
			t.Errorf("Factor(%d) = %v, want [%d]", n, fs, n)
		}
	}
}

func TestFactorComposites(t *testing.T) {
	tests := []struct {
		n    uint64
		want []uint64
	}{
		{1024, []uint64{2, 512}},
		{1025, []uint64{5, 205}},
		{2048, []uint64{2, 2, 512}},
		{3 * 5 * 683, []uint64{3, 5, 683}},
		{65535, []uint64{3, 5, 17, 257}},
		{2 * 1000003, []uint64{2, 1000003}},
	}
	for _, tt := range tests {
		got := Factor(tt.n)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Factor(%d) = %v, want %v", tt.n, got, tt.want)
		}
		if product(got) != tt.n {
			t.Errorf("Factor(%d) = %v, product %d", tt.n, got, product(got))
		}
		if !slices.IsSorted(got) {
			t.Errorf("Factor(%d) = %v not sorted", tt.n, got)
		}
	}
}

func TestFactorPrime(t *testing.T) {
	// 65537 is prime and above MinFactorBound.
	fs := Factor(65537)
	if len(fs) != 1 || fs[0] != 65537 {
		t.Errorf("Factor(65537) = %v, want [65537]", fs)
	}
}

func TestFactorFullyReduced(t *testing.T) {
	// Above MinFactorBound every entry must be prime; below, composite
	// entries are allowed but each must still be below the bound.
	for _, n := range []uint64{1024, 123456, 999999, 1 << 20, 2 * 1000003} {
		for _, f := range Factor(n) {
			if f >= MinFactorBound {
				if d, ok := smallestDivisor(f); ok {
					t.Errorf("Factor(%d) contains composite %d (divisor %d)", n, f, d)
				}
			}
		}
	}
}

func TestFactorDeterministic(t *testing.T) {
	for _, n := range []uint64{1024, 65535, 999999, 1048575, 1 << 20} {
		first := Factor(n)
		for i := 0; i < 20; i++ {
			if got := Factor(n); !slices.Equal(got, first) {
				t.Fatalf("Factor(%d) call %d = %v, first call = %v", n, i, got, first)
			}
		}
	}
}

func TestFactorDeterministicConcurrent(t *testing.T) {
	const n = uint64(987654)
	want := Factor(n)

	var wg sync.WaitGroup
	results := make([][]uint64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Factor(n)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !slices.Equal(got, want) {
			t.Errorf("goroutine %d: Factor(%d) = %v, want %v", i, n, got, want)
		}
	}
}

func TestFactorParallelRangeSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large factorization in short mode")
	}
	// 2750159 is prime; its square forces a trial-division range wide
	// enough to take the parallel path. The smallest divisor must come
	// back as the square root itself, deterministically.
	const p = uint64(2750159)
	const n = p * p

	want := []uint64{p, p}
	for i := 0; i < 5; i++ {
		got := Factor(n)
		if !slices.Equal(got, want) {
			t.Fatalf("Factor(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestFactorChecked(t *testing.T) {
	if _, err := FactorChecked(MaxInput + 1); err != utils.ErrExceedsLimit {
		t.Errorf("FactorChecked(MaxInput+1) error = %v, want ErrExceedsLimit", err)
	}
	fs, err := FactorChecked(4096)
	if err != nil {
		t.Fatalf("FactorChecked(4096) failed: %v", err)
	}
	if product(fs) != 4096 {
		t.Errorf("FactorChecked(4096) = %v", fs)
	}
}

func TestIsqrt(t *testing.T) {
	tests := []struct{ n, want uint64 }{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {8, 2}, {9, 3},
		{1 << 20, 1 << 10}, {(1 << 20) - 1, (1 << 10) - 1},
		{MaxInput, 1 << 24},
		// Inputs at and above (2^32-1)^2 must terminate: the correction
		// loop squares candidate roots near 2^32, where r*r wraps uint64
		// without the clamp.
		{maxRootSquared - 1, 1<<32 - 2},
		{maxRootSquared, 1<<32 - 1},
		{maxRootSquared + 1, 1<<32 - 1},
		{math.MaxUint64, 1<<32 - 1},
	}
	for _, tt := range tests {
		if got := isqrt(tt.n); got != tt.want {
			t.Errorf("isqrt(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

const maxRootSquared = uint64(1<<32-1) * uint64(1<<32-1)

func TestFactorMaxUint64(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full 64-bit factorization in short mode")
	}
	// 2^64-1 = (2^32-1)(2^32+1) = 3*5*17*257*641*65537*6700417. The root
	// search runs at the top of the input range, where an overflowing
	// square-root correction would loop forever.
	want := []uint64{3, 5, 17, 257, 641, 65537, 6700417}
	if got := Factor(math.MaxUint64); !slices.Equal(got, want) {
		t.Errorf("Factor(MaxUint64) = %v, want %v", got, want)
	}
}
