package dice

import "math/rand/v2"

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a seeded PCG source so batches can be replayed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Scripted replays faces (1-6) in order and wraps around. Draws counts how
// many values were taken.
type Scripted struct {
	Faces []int
	Draws int
}

func (s *Scripted) IntN(n int) int {
	face := s.Faces[s.Draws%len(s.Faces)]
	s.Draws++
	return (face - 1) % n
}
