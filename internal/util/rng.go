package util

import "math/rand"

// Rand is the random source the simulation draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Scripted replays a fixed roll sequence, cycling when exhausted.
// Intn maps the next roll onto [0,n).
type Scripted struct {
	Rolls []float64
	pos   int
}

func NewScripted(rolls ...float64) *Scripted {
	return &Scripted{Rolls: rolls}
}

func (s *Scripted) Float64() float64 {
	if len(s.Rolls) == 0 {
		return 0
	}
	v := s.Rolls[s.pos%len(s.Rolls)]
	s.pos++
	return v
}

func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
