package koipond

import "math"

var (
	wakeColor    = RGBA(180, 215, 195, 0.4)
	haloColor    = RGBA(200, 230, 215, 0.3)
	captionColor = ColorWhite.WithAlpha(0.3)
)

func (r *Renderer) drawStones(c *Canvas, stones []Stone, w, h float64) {
	c.SetLayer(LayerStones)
	for i := range stones {
		s := &stones[i]
		hi, base := s.Tones()
		c.Save()
		c.Translate(s.X*w, s.Y*h)
		c.Rotate(s.Rotation)

		c.SetAlpha(0.08)
		p := r.path()
		p.Ellipse(2, 2, s.RX+2, s.RY+2, 0)
		c.Fill(p, Solid(ColorBlack))

		c.SetAlpha(0.22)
		p = r.path()
		p.Ellipse(0, 0, s.RX, s.RY, 0)
		c.Fill(p, RadialGradient(-s.RX*0.2, -s.RY*0.2, 0, 0, 0, math.Max(s.RX, s.RY),
			Stop(0, hi), Stop(1, base)))
		c.Restore()
	}
}

func (r *Renderer) drawPlants(c *Canvas, plants []Plant, t, w, h float64) {
	c.SetLayer(LayerPlants)
	pc := &r.cfg.Plants
	for i := range plants {
		pl := &plants[i]
		c.Save()
		c.Translate(pl.X*w, pl.Y*h)
		for j := range pl.Blades {
			b := &pl.Blades[j]
			cx, cy, ex, ey := b.Curve(b.Sway(t, pc))

			p := r.path()
			p.MoveTo(0, 0)
			p.QuadTo(cx, cy, ex, ey)
			c.SetAlpha(0.35)
			c.Stroke(p, StrokeStyle{Width: b.Width, Cap: CapRound}, Solid(b.Color()))
			c.SetAlpha(0.1)
			c.Stroke(p, StrokeStyle{Width: b.Width * 0.4, Cap: CapRound}, Solid(b.EdgeColor()))
		}
		c.Restore()
	}
}

// drawWakes draws the trailing wake rings and the faint distortion halo of
// every fish.
func (r *Renderer) drawWakes(c *Canvas, fish []Fish, t, w, h float64) {
	c.SetLayer(LayerWakes)
	for _, i := range r.fishOrder {
		f := &fish[i]
		x, y := f.X*w, f.Y*h
		sin, cos := math.Sincos(f.Heading)

		c.SetAlpha(0.02)
		wx, wy := x-cos*f.Size*0.8, y-sin*f.Size*0.8
		p := r.path()
		for wr := range 3 {
			fw := float64(wr)
			rr := f.Size*(0.2+fw*0.15) + math.Sin(t*3+fw)*2
			p.Circle(wx-cos*fw*5, wy-sin*fw*5, rr)
		}
		c.Stroke(p, StrokeStyle{Width: 0.5}, Solid(wakeColor))

		c.SetAlpha(0.03)
		p = r.path()
		p.Ellipse(x, y, f.Size*0.9, f.Size*0.4, f.Heading)
		c.Stroke(p, StrokeStyle{Width: 1.5}, Solid(haloColor))
	}
}

func (r *Renderer) drawPetals(c *Canvas, petals []Petal, t, w, h float64) {
	c.SetLayer(LayerPetals)
	petal := Hex(r.cfg.Petals.Color)
	accent := Hex(r.cfg.Petals.Accent)
	for i := range petals {
		pt := &petals[i]
		x, y := pt.Position(t, w, h)
		s := pt.Size
		c.Save()
		c.Translate(x, y)
		c.Rotate(pt.Rotation)

		if pt.Style == PetalFloating {
			c.SetAlpha(pt.Opacity * 0.15)
			p := r.path()
			p.Ellipse(1, 1, s*0.4, s*0.25, 0)
			c.Fill(p, Solid(ColorBlack))
		}

		c.SetAlpha(pt.Opacity)
		c.Fill(petalShape(r.path(), 0, s*0.3, s*0.8, s*0.5, s*0.5), Solid(petal))

		if pt.Style == PetalFloating {
			c.SetAlpha(pt.Opacity * 0.4)
			p := r.path()
			p.Ellipse(s*0.25, 0, s*0.1, s*0.06, 0)
			c.Fill(p, Solid(accent))
		} else {
			c.SetAlpha(pt.Opacity * 0.3)
			c.Fill(petalShape(r.path(), s*0.1, s*0.3, s*0.6, s*0.4, s*0.3), Solid(accent))
		}
		c.Restore()
	}
}

// petalShape builds the two-lobed petal outline from x0 to the tip at tip,
// with control points at c1 and c2 and a half-width of hw.
func petalShape(p *Path, x0, c1, c2, tip, hw float64) *Path {
	p.MoveTo(x0, 0)
	p.CubicTo(c1, -hw, c2, -hw, tip, 0)
	p.CubicTo(c2, hw, c1, hw, x0, 0)
	p.Close()
	return p
}

func (r *Renderer) drawCaption(c *Canvas, w, h float64) {
	if r.cfg.Caption == "" {
		return
	}
	c.SetLayer(LayerCaption)
	c.SetAlpha(1)
	size := 14.0
	if w >= 768 {
		size = 16
	}
	c.Text(r.cfg.Caption, w/2, h-112-size, size, captionColor)
}
