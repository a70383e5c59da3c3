package koipond

import (
	"math"
	"math/rand/v2"
)

// Stone is a static riverbed pebble. It has no time-varying state.
type Stone struct {
	X, Y     float64
	RX, RY   float64
	Rotation float64

	Hue, Sat, Light float64
	LightDelta      float64
}

func newStone(cfg *StoneConfig, rng *rand.Rand) Stone {
	return Stone{
		X:          rng.Float64(),
		Y:          rng.Float64(),
		RX:         cfg.RX.Random(rng),
		RY:         cfg.RY.Random(rng),
		Rotation:   rng.Float64() * math.Pi,
		Hue:        cfg.Hue.Random(rng),
		Sat:        cfg.Sat.Random(rng),
		Light:      cfg.Light.Random(rng),
		LightDelta: cfg.LightDelta.Random(rng),
	}
}

// Tones returns the highlight and base colours of the stone's radial shading.
func (s *Stone) Tones() (highlight, base Color) {
	return HSL(s.Hue, s.Sat, s.Light+s.LightDelta), HSL(s.Hue, s.Sat, s.Light)
}
