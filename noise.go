package koipond

import "math"

// Simplex skew/unskew factors for two dimensions.
const (
	noiseF2 = 0.36602540378443865 // 0.5 * (sqrt(3) - 1)
	noiseG2 = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

var noiseGrad3 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// NoiseGenerator produces 2D simplex noise from a permutation table derived
// from a fixed seed. It is immutable after construction, so a single instance
// can be shared by everything in one animation.
type NoiseGenerator struct {
	seed      int64
	perm      [512]uint8
	permMod12 [512]uint8
}

// NewNoise builds the permutation table for seed with a Park-Miller sequence.
// Seeds that are zero or a multiple of the modulus would lock the sequence at
// zero and are replaced by 1.
func NewNoise(seed int64) *NoiseGenerator {
	const modulus = 2147483647
	s := seed % modulus
	if s < 0 {
		s += modulus
	}
	if s == 0 {
		s = 1
	}

	n := &NoiseGenerator{seed: seed}
	var p [256]uint8
	for i := range p {
		s = (s * 16807) % modulus
		p[i] = uint8(s & 255)
	}
	for i := range n.perm {
		n.perm[i] = p[i&255]
		n.permMod12[i] = n.perm[i] % 12
	}
	return n
}

// Seed returns the seed the table was built from.
func (n *NoiseGenerator) Seed() int64 {
	return n.seed
}

// Noise2D returns simplex noise at (x, y) in [-1, 1]. The result is
// continuous in both inputs and identical for identical inputs.
func (n *NoiseGenerator) Noise2D(x, y float64) float64 {
	s := (x + y) * noiseF2
	i := math.Floor(x + s)
	j := math.Floor(y + s)
	t := (i + j) * noiseG2
	x0 := x - (i - t)
	y0 := y - (j - t)

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + noiseG2
	y1 := y0 - float64(j1) + noiseG2
	x2 := x0 - 1 + 2*noiseG2
	y2 := y0 - 1 + 2*noiseG2

	ii := int(int64(i) & 255)
	jj := int(int64(j) & 255)

	var n0, n1, n2 float64
	if t0 := 0.5 - x0*x0 - y0*y0; t0 > 0 {
		g := noiseGrad3[n.permMod12[ii+int(n.perm[jj])]]
		t0 *= t0
		n0 = t0 * t0 * (g[0]*x0 + g[1]*y0)
	}
	if t1 := 0.5 - x1*x1 - y1*y1; t1 > 0 {
		g := noiseGrad3[n.permMod12[ii+i1+int(n.perm[jj+j1])]]
		t1 *= t1
		n1 = t1 * t1 * (g[0]*x1 + g[1]*y1)
	}
	if t2 := 0.5 - x2*x2 - y2*y2; t2 > 0 {
		g := noiseGrad3[n.permMod12[ii+1+int(n.perm[jj+1])]]
		t2 *= t2
		n2 = t2 * t2 * (g[0]*x2 + g[1]*y2)
	}

	return clamp(70*(n0+n1+n2), -1, 1)
}

// FBM sums octaves layers of Noise2D at doubling frequency and halving
// amplitude, starting at amplitude 0.5. The result lies in (-1, 1).
func (n *NoiseGenerator) FBM(x, y float64, octaves int) float64 {
	var v float64
	amp, freq := 0.5, 1.0
	for range octaves {
		v += amp * n.Noise2D(x*freq, y*freq)
		amp *= 0.5
		freq *= 2
	}
	return v
}

// Unit maps a noise sample from [-1, 1] into [0, 1].
func Unit(v float64) float64 {
	return v*0.5 + 0.5
}
