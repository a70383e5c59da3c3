package koipond

import (
	"math"
	"math/rand/v2"
)

// Plant is a tuft of underwater blades rooted at a normalized anchor. Plants
// carry no time-varying state; their sway is computed from elapsed time.
type Plant struct {
	X, Y   float64
	Blades []Blade
}

// Blade is one stroke of a plant. Angle and Phase are in radians; Hue, Sat and
// Light describe its HSL tone in degrees and percent.
type Blade struct {
	Length float64
	Angle  float64
	Width  float64
	Phase  float64

	Hue, Sat, Light float64
}

func newPlant(cfg *PlantConfig, rng *rand.Rand) Plant {
	p := Plant{X: rng.Float64(), Y: rng.Float64()}
	p.Blades = make([]Blade, cfg.Blades.RandomInt(rng))
	for i := range p.Blades {
		p.Blades[i] = Blade{
			Length: cfg.Length.Random(rng),
			Angle:  cfg.Angle.Random(rng),
			Width:  cfg.Width.Random(rng),
			Phase:  rng.Float64() * 2 * math.Pi,
			Hue:    cfg.Hue.Random(rng),
			Sat:    cfg.Sat.Random(rng),
			Light:  cfg.Light.Random(rng),
		}
	}
	return p
}

// Sway returns the blade's sway angle at time t. It is a pure function of t.
func (b *Blade) Sway(t float64, cfg *PlantConfig) float64 {
	return math.Sin(t*cfg.SwaySpeed+b.Phase) * cfg.SwayAmount
}

// Curve returns the quadratic control point and tip of the blade relative to
// its root for a given sway angle. The tip bends further than the body.
func (b *Blade) Curve(sway float64) (cx, cy, ex, ey float64) {
	cx = math.Sin(b.Angle+sway) * b.Length * 0.6
	cy = -b.Length * 0.6
	ex = math.Sin(b.Angle+sway*1.5) * b.Length * 0.3
	ey = -b.Length
	return cx, cy, ex, ey
}

// Color returns the blade's stroke colour.
func (b *Blade) Color() Color {
	return HSL(b.Hue, b.Sat, b.Light)
}

// EdgeColor returns the lighter highlight drawn along the blade.
func (b *Blade) EdgeColor() Color {
	return HSL(b.Hue, b.Sat-5, b.Light+15)
}
