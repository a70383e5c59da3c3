package koipond

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is fully opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is fully opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// Hex parses a "#RRGGBB" string into an opaque Color. Malformed input yields
// opaque black, matching how the palettes are authored (constants only).
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorBlack
	}
	return Color{c.R, c.G, c.B, 1}
}

// RGBA builds a Color from 8-bit channels and a [0, 1] alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, a}
}

// HSL builds an opaque Color from a hue in degrees and saturation and
// lightness in percent, the way stone and plant tones are authored.
func HSL(h, s, l float64) Color {
	c := colorful.Hsl(math.Mod(h, 360), clamp01(s/100), clamp01(l/100)).Clamped()
	return Color{c.R, c.G, c.B, 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp linearly interpolates between c and o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range is a general-purpose min/max range used for randomized entity
// parameters.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
	BlendMask                    // clip destination to source alpha
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapAngle folds an angle difference into [-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
