package world

import (
	"math"
	"testing"
)

func TestFadeEndpoints(t *testing.T) {
	if fade(0) != 0 || fade(1) != 1 {
		t.Fatalf("fade(0)=%v fade(1)=%v, want 0 and 1", fade(0), fade(1))
	}
	if got := fade(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("fade(0.5)=%v, want 0.5", got)
	}
}

func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 20, 42)
	for i := 0; i < 100; i++ {
		if h := hash2(10, 20, 42); h != first {
			t.Fatalf("hash2 not deterministic: %d != %d", h, first)
		}
	}
	if hash2(10, 20, 42) == hash2(20, 10, 42) {
		t.Errorf("hash2 should depend on argument order")
	}
	if hash2(10, 20, 42) == hash2(10, 20, 43) {
		t.Errorf("hash2 should depend on seed")
	}
}

func TestNoiseRange(t *testing.T) {
	n := NewNoise(1234, 16)
	for x := -200; x < 200; x += 7 {
		for z := -200; z < 200; z += 11 {
			v := n.Get2D(x, z, 0, 0.25)
			if v < 0 || v > 1 {
				t.Fatalf("Get2D(%d,%d)=%v outside [0,1]", x, z, v)
			}
			v = n.Get3D(x, z%64, z, 43, 0.1)
			if v < 0 || v > 1 {
				t.Fatalf("Get3D(%d,%d,%d)=%v outside [0,1]", x, z%64, z, v)
			}
		}
	}
}

func TestNoiseDeterministicPerSeed(t *testing.T) {
	a := NewNoise(99, 16)
	b := NewNoise(99, 16)
	c := NewNoise(100, 16)

	differs := false
	for x := 0; x < 64; x++ {
		for z := 0; z < 64; z++ {
			va := a.Get2D(x, z, 0, 0.5)
			if vb := b.Get2D(x, z, 0, 0.5); va != vb {
				t.Fatalf("same seed differs at (%d,%d): %v vs %v", x, z, va, vb)
			}
			if c.Get2D(x, z, 0, 0.5) != va {
				differs = true
			}
		}
	}
	if !differs {
		t.Errorf("different seeds produced identical noise")
	}
}

func TestNoiseIsCoherent(t *testing.T) {
	n := NewNoise(7, 16)
	// neighbouring columns at a low scale should be close
	for x := 0; x < 100; x++ {
		d := math.Abs(n.Get2D(x, 0, 0, 0.1) - n.Get2D(x+1, 0, 0, 0.1))
		if d > 0.1 {
			t.Fatalf("jump of %v between x=%d and x=%d", d, x, x+1)
		}
	}
}

func TestAbove3DMatchesThreshold(t *testing.T) {
	n := NewNoise(5, 16)
	v := n.Get3D(3, 4, 5, 0, 0.2)
	if !n.Above3D(3, 4, 5, 0, 0.2, v-0.01) {
		t.Errorf("Above3D false just below the sample value %v", v)
	}
	if n.Above3D(3, 4, 5, 0, 0.2, v) {
		t.Errorf("Above3D must be a strict comparison")
	}
}
