package shame

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// NewRand returns a generator seeded from seed, usually a Steam ID, so that
// the same library always yields the same samples.
func NewRand(seed string) *rand.Rand {
	return rand.New(rand.NewPCG(xxhash.Sum64String(seed), 0))
}

// Sample picks up to n items without replacement. The input is left untouched.
func Sample[T any](r *rand.Rand, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []T{}
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
