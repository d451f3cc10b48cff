package wind

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise is a smooth 3D scalar field with values in roughly [-1, 1].
type Noise interface {
	Eval3(x, y, z float64) float64
}

type NoiseKind string

const (
	Simplex NoiseKind = "simplex"
	Perlin  NoiseKind = "perlin"
)

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// NewNoise builds a seeded noise source. An empty kind means Simplex.
func NewNoise(kind NoiseKind, seed int64) (Noise, error) {
	switch kind {
	case Simplex, "":
		return opensimplex.New(seed), nil
	case Perlin:
		return newPerlinNoise(seed), nil
	}
	return nil, fmt.Errorf("unknown noise kind: %s", kind)
}

type perlinNoise struct {
	p    *perlin.Perlin
	norm float64
}

func newPerlinNoise(seed int64) *perlinNoise {
	// octave amplitudes are 1, 1/alpha, 1/alpha^2, ...
	norm, amp := 0.0, 1.0
	for i := 0; i < perlinOctaves; i++ {
		norm += amp
		amp /= perlinAlpha
	}
	return &perlinNoise{
		p:    perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		norm: norm,
	}
}

func (n *perlinNoise) Eval3(x, y, z float64) float64 {
	return n.p.Noise3D(x, y, z) / n.norm
}

// Constant is a Noise that returns the same value everywhere.
type Constant float64

func (c Constant) Eval3(_, _, _ float64) float64 { return float64(c) }
