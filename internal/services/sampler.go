package services

import (
	"math/rand/v2"
)

// Shuffler is the randomness the sampler needs. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RandProvider returns a generator for a single sampling call
type RandProvider func() Shuffler

// NewEntropyRandProvider hands out a fresh PCG generator seeded from the runtime's
// entropy source on every call, so concurrent requests never share state.
func NewEntropyRandProvider() RandProvider {
	return func() Shuffler {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// NewSeededRandProvider returns a provider whose generators replay the same sequence
// for the same seed.
func NewSeededRandProvider(seed uint64) RandProvider {
	return func() Shuffler {
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// Sample returns count distinct elements of candidates chosen uniformly at random.
// When the pool holds no more than count elements it is returned as is.
// candidates is never modified.
func Sample[T any](rng Shuffler, candidates []T, count int) ([]T, error) {
	if count < 0 {
		return nil, invalidArgument("sample count must not be negative, got %d", count)
	}
	if len(candidates) <= count {
		return candidates, nil
	}

	pool := make([]T, len(candidates))
	copy(pool, candidates)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:count:count], nil
}
