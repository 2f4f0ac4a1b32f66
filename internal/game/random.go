package game

import (
	"math/rand/v2"

	"github.com/vytor/thaiflash/internal/models"
)

// RandomSource is the only place the game draws randomness from.
// IntN returns a value in [0, n) and may panic when n <= 0.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewRandomSource returns the process-wide, automatically seeded source.
func NewRandomSource() RandomSource { return globalSource{} }

// NewSeededSource returns a deterministic source, for tests and replays.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// shuffle permutes items in place (Fisher-Yates).
func shuffle(rng RandomSource, items []models.AlphabetItem) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// pickUnique draws n distinct items from pool without modifying it.
// The caller guarantees n <= len(pool).
func pickUnique(rng RandomSource, pool []models.AlphabetItem, n int) []models.AlphabetItem {
	work := append([]models.AlphabetItem(nil), pool...)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:n]
}
