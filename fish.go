package koipond

import (
	"math"
	"math/rand/v2"
)

// KoiPalette is the fixed colour set of one koi variety.
type KoiPalette struct {
	Name   string
	Body   Color
	Belly  Color
	Fin    Color
	FinTip Color
	Spots  []Color
}

// KoiPalettes are assigned to fish round-robin in creation order.
var KoiPalettes = []*KoiPalette{
	{Name: "kohaku", Body: Hex("#D4612A"), Belly: Hex("#F5E6D0"), Fin: Hex("#C24A18"), FinTip: Hex("#E8956A"),
		Spots: []Color{Hex("#FFF8F0"), Hex("#F0DCC8")}},
	{Name: "kohaku", Body: Hex("#F2EDE4"), Belly: Hex("#FEFCF8"), Fin: Hex("#E8D5B8"), FinTip: Hex("#F5EDE0"),
		Spots: []Color{Hex("#D4612A"), Hex("#C0392B")}},
	{Name: "sanke", Body: Hex("#B8281E"), Belly: Hex("#E8A090"), Fin: Hex("#8E1F16"), FinTip: Hex("#D45A50"),
		Spots: []Color{Hex("#F5E6D0"), Hex("#FFFFFF")}},
	{Name: "showa", Body: Hex("#1A1A1A"), Belly: Hex("#3A3A3A"), Fin: Hex("#0D0D0D"), FinTip: Hex("#2A2A2A"),
		Spots: []Color{Hex("#D4612A"), Hex("#C0392B")}},
	{Name: "ogon", Body: Hex("#E8C860"), Belly: Hex("#F4E4BA"), Fin: Hex("#D4AF37"), FinTip: Hex("#F0D870"),
		Spots: []Color{Hex("#C0392B"), Hex("#FFF8F0")}},
	{Name: "sanke", Body: Hex("#F2EDE4"), Belly: Hex("#FEFCF8"), Fin: Hex("#E0D0B8"), FinTip: Hex("#F8F0E4"),
		Spots: []Color{Hex("#1A1A1A"), Hex("#D4612A")}},
	{Name: "showa", Body: Hex("#D4612A"), Belly: Hex("#F0C8A0"), Fin: Hex("#B84A1A"), FinTip: Hex("#E09060"),
		Spots: []Color{Hex("#1A1A1A"), Hex("#FFF8F0")}},
}

// Spot is a body marking. Offsets and radii are fractions of the fish size.
type Spot struct {
	CX, CY   float64
	RX, RY   float64
	Rotation float64
	Feather  float64
	Color    Color
}

// Fish is one koi. X and Y are normalized to the surface size. Heading,
// TargetHeading, TurnTimer, NextTurn, TailPhase and the position are the only
// fields that change after creation.
type Fish struct {
	X, Y float64

	Size          float64
	Speed         float64
	Heading       float64
	TargetHeading float64
	TurnTimer     float64
	NextTurn      float64
	TailPhase     float64
	Depth         float64

	Palette *KoiPalette
	Spots   []Spot
}

// newFish creates a fish inside the spawn inset of a w by h surface.
func newFish(cfg *FishConfig, rng *rand.Rand, index int, w, h float64) Fish {
	palette := KoiPalettes[index%len(KoiPalettes)]
	f := Fish{
		Size:          cfg.Size.Random(rng),
		Speed:         cfg.Speed.Random(rng),
		Heading:       rng.Float64() * 2 * math.Pi,
		TargetHeading: rng.Float64() * 2 * math.Pi,
		NextTurn:      Range{cfg.TurnInterval.Min, cfg.TurnInterval.Max - 1}.Random(rng),
		TailPhase:     rng.Float64() * 2 * math.Pi,
		Depth:         cfg.Depth.Random(rng),
		Palette:       palette,
	}
	if f.NextTurn < cfg.TurnInterval.Min {
		f.NextTurn = cfg.TurnInterval.Min
	}

	n := cfg.Spots.RandomInt(rng)
	f.Spots = make([]Spot, n)
	for i := range f.Spots {
		f.Spots[i] = Spot{
			CX:       -0.55 + rng.Float64()*1.1,
			CY:       -0.22 + rng.Float64()*0.44,
			RX:       0.08 + rng.Float64()*0.22,
			RY:       0.06 + rng.Float64()*0.14,
			Rotation: -0.4 + rng.Float64()*0.8,
			Feather:  0.3 + rng.Float64()*0.5,
			Color:    palette.Spots[rng.IntN(len(palette.Spots))],
		}
	}

	f.X = spawnAxis(rng, cfg.SpawnInset, w)
	f.Y = spawnAxis(rng, cfg.SpawnInset, h)
	return f
}

// spawnAxis picks a normalized coordinate at least inset pixels from both
// ends of an axis of length n, falling back to the whole axis when it is too
// short for the inset.
func spawnAxis(rng *rand.Rand, inset, n float64) float64 {
	if n <= 0 {
		return 0.5
	}
	if n <= 2*inset {
		return rng.Float64()
	}
	return (inset + rng.Float64()*(n-2*inset)) / n
}

// fishSteer records what changed the target heading during a step.
type fishSteer uint8

const (
	steerNone fishSteer = iota
	steerRetarget
	steerEdge
)

// step advances the fish by dt seconds (frames reference frames) on a w by h
// surface.
//
// The periodic timer and edge avoidance may both fire in the same step; edge
// avoidance runs second and strictly overrides the timer's target.
func (f *Fish) step(cfg *FishConfig, rng *rand.Rand, dt, frames, w, h float64) fishSteer {
	steer := steerNone

	f.TurnTimer += dt
	if f.TurnTimer > f.NextTurn {
		f.TargetHeading = f.Heading + (rng.Float64()*2-1)*cfg.TurnJitter
		f.NextTurn = cfg.TurnInterval.Random(rng)
		f.TurnTimer = 0
		steer = steerRetarget
	}

	px, py := f.X*w, f.Y*h
	var ex, ey float64
	switch {
	case px < cfg.EdgeMargin:
		ex = 1
	case px > w-cfg.EdgeMargin:
		ex = -1
	}
	switch {
	case py < cfg.EdgeMargin:
		ey = 1
	case py > h-cfg.EdgeMargin:
		ey = -1
	}
	if ex != 0 || ey != 0 {
		f.TargetHeading = math.Atan2(ey, ex) + (rng.Float64()*2-1)*cfg.EdgeJitter
		steer = steerEdge
	}

	k := turnBlend(cfg.TurnFactor, frames)
	f.Heading = wrapAngle(f.Heading + wrapAngle(f.TargetHeading-f.Heading)*k)

	if w > 0 && h > 0 {
		sin, cos := math.Sincos(f.Heading)
		px += cos * f.Speed * frames
		py += sin * f.Speed * frames
		f.X = clamp(px, 0, w) / w
		f.Y = clamp(py, 0, h) / h
	}

	f.TailPhase = math.Mod(f.TailPhase+dt*2.5, 2*math.Pi)
	return steer
}

// turnBlend returns the fraction of the heading error closed over frames
// reference frames. It compounds per frame, so a long step turns no further
// than the same time spent in short steps and never reaches the target.
func turnBlend(factor, frames float64) float64 {
	if frames <= 0 {
		return 0
	}
	return 1 - math.Pow(1-factor, frames)
}

// maxTurn returns the largest heading change a single step of frames
// reference frames can produce.
func maxTurn(cfg *FishConfig, frames float64) float64 {
	return turnBlend(cfg.TurnFactor, frames) * math.Pi
}

// TailSwing returns the tail, secondary fin and body wave angles for the
// current tail phase.
func (f *Fish) TailSwing() (tail, tail2, body float64) {
	ph := f.TailPhase
	return math.Sin(ph) * 0.32, math.Sin(ph+0.8) * 0.2, math.Sin(ph+0.4) * 0.04
}

// FinSwing returns the pectoral fin angle for the current tail phase.
func (f *Fish) FinSwing() float64 {
	return math.Sin(f.TailPhase-0.5) * 0.3
}
