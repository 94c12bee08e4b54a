package markov

import "math/rand/v2"

// Source is the random capability used by generation. IntN must return a
// uniformly distributed integer in [0, n) and may assume n > 0.
//
// *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed Source. Two sources created with the same
// seed produce the same sequence of draws.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}

// defaultSource is used when no Source is injected.
func defaultSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// pick is the single uniform-choice primitive: it returns an index in [0, n).
func pick(src Source, n int) int {
	return src.IntN(n)
}
