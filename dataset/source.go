package dataset

import "math/rand/v2"

// seedStream is the PCG stream constant used for run-level sources.
const seedStream = 0x9e3779b97f4a7c15

// NewSource returns a random source for the given seed. A zero seed asks
// for fresh entropy, so two calls with seed 0 produce unrelated streams;
// any other seed is fully deterministic.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, seedStream)
}

// TrialSource returns the random source for one simulation trial. Streams
// for distinct trial indices are independent, and under a nonzero seed
// the stream for a given (seed, trial) pair is the same regardless of the
// order trials execute in.
func TrialSource(seed uint64, trial int) rand.Source {
	if seed == 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, uint64(trial)+1)
}
