package rng

import "math/rand"

// New returns a source owned by a single simulation run. A zero seed maps to 1
// so that an unset seed is still reproducible.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
