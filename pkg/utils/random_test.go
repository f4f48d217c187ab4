package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandIntInclusiveBounds(t *testing.T) {
	r := NewRandom(42)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := RandIntInclusive(r, 2, 5)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	// 两个端点都能被抽到
	assert.True(t, seen[2])
	assert.True(t, seen[5])
}

func TestRandFloatInclusiveBounds(t *testing.T) {
	r := NewRandom(7)
	for i := 0; i < 2000; i++ {
		v := RandFloatInclusive(r, 0.5, 1.5)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 1.5)
	}
}

func TestRandDegenerateRange(t *testing.T) {
	r := NewRandom(1)
	assert.Equal(t, 3, RandIntInclusive(r, 3, 3))
	assert.Equal(t, 3, RandIntInclusive(r, 3, 1))
	assert.Equal(t, 2.0, RandFloatInclusive(r, 2, 2))
}

func TestNewRandomIsDeterministic(t *testing.T) {
	a, b := NewRandom(99), NewRandom(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}
