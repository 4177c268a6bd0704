package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNew_ZeroSeedIsUsable(t *testing.T) {
	a := New(0)
	b := New(1)
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestScripted(t *testing.T) {
	s := NewScripted(0.1, 0.9)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.1, s.Float64(), "cycles")

	s = NewScripted(0.99)
	assert.Equal(t, 3, s.Intn(4))
	assert.Equal(t, 0, s.Intn(0))

	empty := &Scripted{}
	assert.Equal(t, 0.0, empty.Float64())
}
