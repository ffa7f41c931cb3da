// Package randutil provides deterministic random sources and the splitmix64
// bit mixer shared by shuffling and hashing code.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(Mix(u), Mix(u+goldenRatio64)))
}

// Mix is the splitmix64 finalizer. It is a bijection on uint64 that spreads
// every input bit across the whole output.
func Mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
