package generator

import (
	"math/rand"
	"time"

	"github.com/fraudx/fraudx/internal/random"
)

// NewSeededRNG creates a seeded random number generator and reports the
// effective seed. A zero seed draws a high-entropy seed so unseeded runs
// still log a value that reproduces the dataset.
func NewSeededRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			s = time.Now().UnixNano()
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed)), seed
}
