package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedReproducible(t *testing.T) {
	a := New(269070)
	b := New(269070)

	for i := 0; i < 10000; i++ {
		require.Equal(t, a.NextUint32(), b.NextUint32(), "draw %d diverged", i)
	}
}

func TestNextFloat64Range(t *testing.T) {
	s := New(1)
	for i := 0; i < 100000; i++ {
		f := s.NextFloat64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestNextBoundedInRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		v := s.NextBounded(5)
		assert.LessOrEqual(t, v, uint32(5))
	}
}

func TestNextBoundedZero(t *testing.T) {
	s := New(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, uint32(0), s.NextBounded(0))
	}
}

func TestNextBoundedCoversEveryValue(t *testing.T) {
	s := New(42)
	seen := make(map[uint32]bool)
	for i := 0; i < 5000; i++ {
		seen[s.NextBounded(3)] = true
	}
	for v := uint32(0); v <= 3; v++ {
		assert.True(t, seen[v], "value %d never drawn", v)
	}
}

func TestKnownFirstValuesSeedOne(t *testing.T) {
	// MT19937 reference vectors for seed 1: the first few tempered 32-bit
	// outputs are well known from the canonical mt19937ar.c test vectors.
	s := New(1)
	want := []uint32{1791095845, 4282876139, 3093770124, 4005303368, 491263}
	for i, w := range want {
		got := s.NextUint32()
		require.Equal(t, w, got, "output %d", i)
	}
}
