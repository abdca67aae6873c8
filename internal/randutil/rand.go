// Package randutil derives reproducible random sources for games and
// tournaments. Every source of randomness in the simulator is created here so
// that a single seed replays a run exactly.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed of stream n of a run seeded with seed. Distinct
// streams of the same run are decorrelated, and the mapping is stable across
// releases so recorded trial seeds stay replayable.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) + uint64(stream+1)*goldenRatio64))
}

// Streams returns n independent sources derived from seed, one per stream.
func Streams(seed int64, n int) []*rand.Rand {
	out := make([]*rand.Rand, n)
	for i := range out {
		out[i] = New(Derive(seed, i))
	}
	return out
}

// Uniform draws from [lo, hi). A degenerate range returns lo without
// consuming randomness, which keeps zero-width penalty ranges free.
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi == lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Normal draws from a normal distribution with the given mean and stddev.
func Normal(rng *rand.Rand, mean, stddev float64) float64 {
	return mean + rng.NormFloat64()*stddev
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
