package koipond

import (
	"math"
	"math/rand/v2"
)

// PetalStyle distinguishes the two petal motion models.
type PetalStyle string

const (
	// PetalFalling petals fall through the surface with a wide lateral sway.
	PetalFalling PetalStyle = "falling"
	// PetalFloating petals drift slowly on the water with a gentle wobble.
	PetalFloating PetalStyle = "floating"
)

// Petal is one cherry petal. X and Y are normalized to the surface size; the
// remaining fields are set at creation and only Rotation and the position
// change per frame.
type Petal struct {
	X, Y  float64
	Style PetalStyle

	Size          float64
	FallSpeed     float64
	DriftSpeed    float64
	Rotation      float64
	RotationSpeed float64
	Opacity       float64

	WobbleAmplitude float64
	WobbleSpeed     float64
	Phase           float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// RandomInt returns a random integer in [Min, Max] (both inclusive, truncated).
func (r Range) RandomInt(rng *rand.Rand) int {
	lo, hi := int(r.Min), int(r.Max)
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// newPetal creates a petal anywhere on the surface.
func newPetal(cfg *PetalConfig, rng *rand.Rand) Petal {
	p := Petal{Style: cfg.Style}
	p.randomize(cfg, rng)
	p.X = rng.Float64()
	p.Y = rng.Float64()
	return p
}

// randomize rolls every per-petal parameter except the position.
func (p *Petal) randomize(cfg *PetalConfig, rng *rand.Rand) {
	p.Style = cfg.Style
	p.Size = cfg.Size.Random(rng)
	p.FallSpeed = cfg.FallSpeed.Random(rng)
	p.DriftSpeed = cfg.Drift.Random(rng)
	p.Rotation = rng.Float64() * 2 * math.Pi
	p.RotationSpeed = cfg.RotationSpeed.Random(rng)
	p.Opacity = cfg.Opacity.Random(rng)
	p.WobbleAmplitude = cfg.WobbleAmplitude.Random(rng)
	p.WobbleSpeed = cfg.WobbleSpeed.Random(rng)
	p.Phase = rng.Float64() * 2 * math.Pi
}

// recycle resets the petal to a fresh configuration just above the top edge.
func (p *Petal) recycle(cfg *PetalConfig, rng *rand.Rand, h float64) {
	p.randomize(cfg, rng)
	p.X = rng.Float64()
	above := cfg.RecycleMargin*0.5 + rng.Float64()*cfg.SpawnBand
	if h > 0 {
		p.Y = -above / h
	} else {
		p.Y = 0
	}
}

// step advances the petal by frames reference frames on a w by h surface and
// reports whether it travelled more than margin pixels past an edge.
func (p *Petal) step(frames, w, h, margin float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	p.Y += p.FallSpeed * frames / h
	p.X += p.DriftSpeed * frames / w
	p.Rotation = math.Mod(p.Rotation+p.RotationSpeed*frames, 2*math.Pi)
	return p.out(w, h, margin)
}

// out reports whether the petal has travelled past the recycle margin.
func (p *Petal) out(w, h, margin float64) bool {
	if margin < p.Size {
		margin = p.Size
	}
	mx, my := margin/w, margin/h
	wob := p.WobbleAmplitude / w
	return p.Y > 1+my || p.X < -mx-wob || p.X > 1+mx+wob
}

// Wobble returns the lateral and vertical sway offsets in pixels at time t.
func (p *Petal) Wobble(t float64) (dx, dy float64) {
	dx = math.Sin(t*p.WobbleSpeed+p.Phase) * p.WobbleAmplitude
	if p.Style == PetalFloating {
		dy = math.Cos(t*p.WobbleSpeed*0.8+p.Phase) * p.WobbleAmplitude * 0.66
	}
	return dx, dy
}

// Position returns the petal's pixel position at time t on a w by h surface,
// sway included.
func (p *Petal) Position(t, w, h float64) (x, y float64) {
	dx, dy := p.Wobble(t)
	return p.X*w + dx, p.Y*h + dy
}
