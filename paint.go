package koipond

import (
	"math"
	"sort"
)

// PaintKind selects how a Paint colours the pixels it covers.
type PaintKind uint8

const (
	PaintSolid  PaintKind = iota // single colour
	PaintLinear                  // gradient along the line P0 -> P1
	PaintRadial                  // gradient between circles (P0, R0) and (P1, R1)
)

// GradientStop is one colour stop of a gradient. Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// Paint describes a fill or stroke style. Gradient geometry is in the same
// coordinate space as the path it paints.
type Paint struct {
	Kind   PaintKind
	Color  Color
	P0, P1 Vec2
	R0, R1 float64
	Stops  []GradientStop
}

// Solid returns a single-colour paint.
func Solid(c Color) Paint {
	return Paint{Kind: PaintSolid, Color: c}
}

// LinearGradient returns a gradient running from (x0, y0) to (x1, y1).
func LinearGradient(x0, y0, x1, y1 float64, stops ...GradientStop) Paint {
	return Paint{Kind: PaintLinear, P0: Vec2{x0, y0}, P1: Vec2{x1, y1}, Stops: sortedStops(stops)}
}

// RadialGradient returns a gradient from the circle (x0, y0, r0) to the
// circle (x1, y1, r1).
func RadialGradient(x0, y0, r0, x1, y1, r1 float64, stops ...GradientStop) Paint {
	return Paint{Kind: PaintRadial, P0: Vec2{x0, y0}, P1: Vec2{x1, y1}, R0: r0, R1: r1, Stops: sortedStops(stops)}
}

// Stop is shorthand for a GradientStop.
func Stop(offset float64, c Color) GradientStop {
	return GradientStop{Offset: clamp01(offset), Color: c}
}

func sortedStops(stops []GradientStop) []GradientStop {
	if sort.SliceIsSorted(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset }) {
		return stops
	}
	out := append([]GradientStop(nil), stops...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// ColorAt evaluates the gradient ramp at parameter t in [0, 1]. Colours
// interpolate in premultiplied space so transparent stops do not darken.
func (p *Paint) ColorAt(t float64) Color {
	if p.Kind == PaintSolid || len(p.Stops) == 0 {
		return p.Color
	}
	t = clamp01(t)
	first, last := p.Stops[0], p.Stops[len(p.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(p.Stops); i++ {
		b := p.Stops[i]
		if t > b.Offset {
			continue
		}
		a := p.Stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpPremultiplied(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

func lerpPremultiplied(a, b Color, t float64) Color {
	alpha := lerp(a.A, b.A, t)
	if alpha <= 0 {
		return Color{}
	}
	return Color{
		R: lerp(a.R*a.A, b.R*b.A, t) / alpha,
		G: lerp(a.G*a.A, b.G*b.A, t) / alpha,
		B: lerp(a.B*a.A, b.B*b.A, t) / alpha,
		A: alpha,
	}
}

// Param returns the gradient parameter at (x, y), unclamped. It returns
// false where a radial gradient is undefined.
func (p *Paint) Param(x, y float64) (float64, bool) {
	switch p.Kind {
	case PaintLinear:
		dx, dy := p.P1.X-p.P0.X, p.P1.Y-p.P0.Y
		l := dx*dx + dy*dy
		if l == 0 {
			return 0, true
		}
		return ((x-p.P0.X)*dx + (y-p.P0.Y)*dy) / l, true
	case PaintRadial:
		cdx, cdy := p.P1.X-p.P0.X, p.P1.Y-p.P0.Y
		pdx, pdy := x-p.P0.X, y-p.P0.Y
		dr := p.R1 - p.R0
		a := cdx*cdx + cdy*cdy - dr*dr
		b := pdx*cdx + pdy*cdy + p.R0*dr
		c := pdx*pdx + pdy*pdy - p.R0*p.R0
		if math.Abs(a) < 1e-9 {
			if math.Abs(b) < 1e-9 {
				return 0, false
			}
			t := c / (2 * b)
			return t, p.R0+t*dr >= 0
		}
		disc := b*b - a*c
		if disc < 0 {
			return 0, false
		}
		sq := math.Sqrt(disc)
		hi, lo := (b+sq)/a, (b-sq)/a
		if hi < lo {
			hi, lo = lo, hi
		}
		// The larger root wins unless its radius is negative.
		switch {
		case p.R0+hi*dr >= 0:
			return hi, true
		case p.R0+lo*dr >= 0:
			return lo, true
		}
		return 0, false
	default:
		return 0, true
	}
}

// At returns the paint colour at (x, y).
func (p *Paint) At(x, y float64) Color {
	if p.Kind == PaintSolid {
		return p.Color
	}
	t, ok := p.Param(x, y)
	if !ok {
		return Color{}
	}
	return p.ColorAt(t)
}

// transform maps the paint's geometry through m. Radii scale by m's uniform
// scale factor; canvases only rotate and translate, so circles stay circles.
func (p Paint) transform(m affine) Paint {
	if p.Kind == PaintSolid {
		return p
	}
	p.P0.X, p.P0.Y = m.apply(p.P0.X, p.P0.Y)
	p.P1.X, p.P1.Y = m.apply(p.P1.X, p.P1.Y)
	s := m.scale()
	p.R0 *= s
	p.R1 *= s
	return p
}

// offset shifts the paint's geometry by (-ox, -oy).
func (p Paint) offset(ox, oy float64) Paint {
	return p.transform(affine{1, 0, 0, 1, -ox, -oy})
}

// transparent reports whether the paint can produce no visible pixel.
func (p *Paint) transparent() bool {
	if p.Kind == PaintSolid {
		return p.Color.A <= 0
	}
	for _, s := range p.Stops {
		if s.Color.A > 0 {
			return false
		}
	}
	return true
}
