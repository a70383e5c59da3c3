package koipond

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
)

// affine is a 2D affine matrix [a, b, c, d, tx, ty] mapping (x, y) to
// (a*x + c*y + tx, b*x + d*y + ty).
type affine [6]float64

var identityAffine = affine{1, 0, 0, 1, 0, 0}

// multiplyAffine returns p * c: c is applied first, then p.
func multiplyAffine(p, c affine) affine {
	return affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// translated returns m followed by a local translation.
func (m affine) translated(x, y float64) affine {
	return multiplyAffine(m, affine{1, 0, 0, 1, x, y})
}

// rotated returns m followed by a local rotation of a radians.
func (m affine) rotated(a float64) affine {
	sin, cos := math.Sincos(a)
	return multiplyAffine(m, affine{cos, sin, -sin, cos, 0, 0})
}

// scale returns the uniform scale factor of m (the length of its first column).
func (m affine) scale() float64 {
	return math.Hypot(m[0], m[1])
}

type pathOp uint8

const (
	opMove pathOp = iota
	opLine
	opQuad
	opCubic
	opClose
)

// Path is a sequence of subpaths built from lines and Bézier curves. Arcs and
// ellipses are stored as cubic Béziers, so transforming a path's points is
// exact under any affine map.
type Path struct {
	ops []pathOp
	pts []Vec2

	// start and cur track the current subpath's first point and pen position.
	start, cur Vec2
	open       bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Reset empties the path, keeping its storage.
func (p *Path) Reset() {
	p.ops = p.ops[:0]
	p.pts = p.pts[:0]
	p.open = false
}

// Empty reports whether the path has no drawing segments.
func (p *Path) Empty() bool {
	for _, op := range p.ops {
		if op != opMove {
			return false
		}
	}
	return true
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, opMove)
	p.pts = append(p.pts, Vec2{x, y})
	p.start = Vec2{x, y}
	p.cur = p.start
	p.open = true
}

// ensureOpen starts a subpath at (x, y) when none is open, as a canvas does
// for a segment drawn without a preceding MoveTo.
func (p *Path) ensureOpen(x, y float64) bool {
	if !p.open {
		p.MoveTo(x, y)
		return false
	}
	return true
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	if !p.ensureOpen(x, y) {
		return
	}
	p.ops = append(p.ops, opLine)
	p.pts = append(p.pts, Vec2{x, y})
	p.cur = Vec2{x, y}
}

// QuadTo adds a quadratic Bézier with control point (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ensureOpen(cx, cy)
	p.ops = append(p.ops, opQuad)
	p.pts = append(p.pts, Vec2{cx, cy}, Vec2{x, y})
	p.cur = Vec2{x, y}
}

// CubicTo adds a cubic Bézier with control points (c1x, c1y) and (c2x, c2y)
// ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureOpen(c1x, c1y)
	p.ops = append(p.ops, opCubic)
	p.pts = append(p.pts, Vec2{c1x, c1y}, Vec2{c2x, c2y}, Vec2{x, y})
	p.cur = Vec2{x, y}
}

// Close closes the current subpath back to its first point.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.ops = append(p.ops, opClose)
	p.cur = p.start
	p.open = false
}

// Arc adds a clockwise circular arc around (cx, cy) from angle a0 to a1. If a
// subpath is open, a line joins the pen to the arc's start.
func (p *Path) Arc(cx, cy, r, a0, a1 float64) {
	p.EllipseArc(cx, cy, r, r, 0, a0, a1)
}

// Circle adds a closed circle.
func (p *Path) Circle(cx, cy, r float64) {
	p.open = false
	p.Arc(cx, cy, r, 0, 2*math.Pi)
	p.Close()
}

// Ellipse adds a closed ellipse with radii (rx, ry) rotated by rot.
func (p *Path) Ellipse(cx, cy, rx, ry, rot float64) {
	p.open = false
	p.EllipseArc(cx, cy, rx, ry, rot, 0, 2*math.Pi)
	p.Close()
}

// EllipseArc adds an elliptical arc from a0 to a1 (a1 > a0 sweeps
// clockwise in screen space). Each quarter turn becomes one cubic.
func (p *Path) EllipseArc(cx, cy, rx, ry, rot, a0, a1 float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	sweep := a1 - a0
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	} else if sweep < -2*math.Pi {
		sweep = -2 * math.Pi
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n == 0 {
		n = 1
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	sinR, cosR := math.Sincos(rot)
	pt := func(x, y float64) (float64, float64) {
		return cx + x*cosR - y*sinR, cy + x*sinR + y*cosR
	}

	sa, ca := math.Sincos(a0)
	x0, y0 := pt(rx*ca, ry*sa)
	if p.open {
		p.LineTo(x0, y0)
	} else {
		p.MoveTo(x0, y0)
	}
	a := a0
	for range n {
		b := a + step
		sb, cb := math.Sincos(b)
		c1x, c1y := pt(rx*(ca-k*sa), ry*(sa+k*ca))
		c2x, c2y := pt(rx*(cb+k*sb), ry*(sb-k*cb))
		ex, ey := pt(rx*cb, ry*sb)
		p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		a, sa, ca = b, sb, cb
	}
}

// Rect adds a closed axis-aligned rectangle.
func (p *Path) Rect(x, y, w, h float64) {
	p.open = false
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// RoundRect adds a closed rectangle with corners rounded to radius r.
func (p *Path) RoundRect(x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		p.Rect(x, y, w, h)
		return
	}
	p.open = false
	p.MoveTo(x+r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// transform returns a copy of the path with every point mapped through m.
func (p *Path) transform(m affine) *Path {
	out := &Path{
		ops: append([]pathOp(nil), p.ops...),
		pts: make([]Vec2, len(p.pts)),
	}
	for i, v := range p.pts {
		x, y := m.apply(v.X, v.Y)
		out.pts[i] = Vec2{x, y}
	}
	return out
}

// Bounds returns the axis-aligned box of the path's points and control points,
// which always contains the curve.
func (p *Path) Bounds() Rect {
	if len(p.pts) == 0 {
		return Rect{}
	}
	minX, minY := p.pts[0].X, p.pts[0].Y
	maxX, maxY := minX, minY
	for _, v := range p.pts[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// appendVector replays the path into a vector.Path shifted by (-ox, -oy).
func (p *Path) appendVector(dst *vector.Path, ox, oy float64) {
	f := func(v Vec2) (float32, float32) { return float32(v.X - ox), float32(v.Y - oy) }
	i := 0
	for _, op := range p.ops {
		switch op {
		case opMove:
			x, y := f(p.pts[i])
			dst.MoveTo(x, y)
			i++
		case opLine:
			x, y := f(p.pts[i])
			dst.LineTo(x, y)
			i++
		case opQuad:
			cx, cy := f(p.pts[i])
			x, y := f(p.pts[i+1])
			dst.QuadTo(cx, cy, x, y)
			i += 2
		case opCubic:
			c1x, c1y := f(p.pts[i])
			c2x, c2y := f(p.pts[i+1])
			x, y := f(p.pts[i+2])
			dst.CubicTo(c1x, c1y, c2x, c2y, x, y)
			i += 3
		case opClose:
			dst.Close()
		}
	}
}
