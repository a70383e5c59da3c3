package koipond

import "math"

var (
	fishShadow   = Hex("#0A1A10")
	fishMouth    = Hex("#3A2820")
	fishSocket   = Hex("#1A1410")
	fishEyeWhite = Hex("#F0ECE4")
	fishIris     = Hex("#18120E")
)

// depthCue returns the opacity multiplier of a fish at depth d; farther fish
// are fainter.
func depthCue(d float64) float64 {
	return 0.7 + 0.3*clamp01(d)
}

// drawFish draws one koi as a stack of translucent passes: shadow, fins,
// body, markings, head and eye details, then a wet sheen.
func (r *Renderer) drawFish(c *Canvas, f *Fish, w, h float64) {
	x, y := f.X*w, f.Y*h
	size := f.Size
	pal := f.Palette
	if pal == nil {
		pal = KoiPalettes[0]
	}
	tail, tail2, wave := f.TailSwing()
	cue := depthCue(f.Depth)
	alpha := func(a float64) { c.SetAlpha(a * cue) }

	// Shadow on the riverbed, offset and blurred more for deeper fish.
	so := f.Depth*10 + 3
	c.Save()
	c.Translate(x+so, y+so)
	c.Rotate(f.Heading)
	c.SetAlpha(0.18 * (1 - f.Depth*0.2))
	c.SetBlur(math.Round(f.Depth*5 + 2))
	p := r.path()
	p.Ellipse(0, 0, size*0.9, size*0.35, 0)
	c.Fill(p, Solid(fishShadow))
	c.Restore()

	c.Save()
	c.Translate(x, y)
	c.Rotate(f.Heading + wave)

	// Ventral fin.
	c.Save()
	c.Translate(-size*0.3, size*0.22)
	c.Rotate(0.3 + tail2*0.3)
	alpha(0.25)
	p = r.path()
	p.MoveTo(0, 0)
	p.CubicTo(-size*0.05, size*0.1, -size*0.15, size*0.15, -size*0.12, size*0.02)
	p.Close()
	c.Fill(p, Solid(pal.FinTip))
	c.Restore()

	r.drawTail(c, pal, size, tail, alpha)

	// Dorsal fin.
	c.Save()
	c.Translate(-size*0.05, -size*0.26)
	c.Rotate(-0.15 + wave)
	alpha(0.3)
	p = r.path()
	p.MoveTo(-size*0.2, 0)
	p.QuadTo(-size*0.1, -size*0.15, size*0.05, -size*0.12)
	p.QuadTo(size*0.15, -size*0.08, size*0.2, 0)
	p.Close()
	c.Fill(p, Solid(pal.FinTip))
	c.Restore()

	r.drawBody(c, f, pal, size, alpha)
	r.drawPectorals(c, pal, size, f.FinSwing(), alpha)
	r.drawHead(c, pal, size, alpha)

	// Wet sheen along the back.
	alpha(0.07)
	p = r.path()
	p.Ellipse(size*0.05, -size*0.1, size*0.5, size*0.12, -0.05)
	c.Fill(p, LinearGradient(-size*0.3, -size*0.28, size*0.1, 0,
		Stop(0, ColorWhite), Stop(1, ColorWhite.WithAlpha(0))))

	c.Restore()
}

func (r *Renderer) drawTail(c *Canvas, pal *KoiPalette, size, swing float64, alpha func(float64)) {
	c.Save()
	c.Translate(-size*0.72, 0)
	c.Rotate(swing)

	alpha(0.4)
	p := r.path()
	p.MoveTo(size*0.05, 0)
	p.CubicTo(-size*0.1, -size*0.35, -size*0.55, -size*0.38, -size*0.52, -size*0.08)
	p.LineTo(-size*0.48, 0)
	p.LineTo(-size*0.52, size*0.08)
	p.CubicTo(-size*0.55, size*0.38, -size*0.1, size*0.35, size*0.05, 0)
	p.Close()
	c.Fill(p, RadialGradient(0, 0, 0, 0, 0, size*0.5, Stop(0, pal.Fin), Stop(1, pal.FinTip)))

	// Veins fan out from the peduncle.
	alpha(0.08)
	p = r.path()
	for v := -3; v <= 3; v++ {
		vy := float64(v) * size * 0.07
		p.MoveTo(0, 0)
		p.QuadTo(-size*0.25, vy*1.5, -size*0.45, vy*2)
	}
	c.Stroke(p, StrokeStyle{Width: 0.4}, Solid(pal.Fin))
	c.Restore()
}

func (r *Renderer) drawBody(c *Canvas, f *Fish, pal *KoiPalette, size float64, alpha func(float64)) {
	alpha(0.96)
	body := r.path()
	body.MoveTo(size*0.72, 0)
	body.CubicTo(size*0.7, -size*0.2, size*0.4, -size*0.32, 0, -size*0.3)
	body.CubicTo(-size*0.35, -size*0.28, -size*0.7, -size*0.18, -size*0.75, 0)
	body.CubicTo(-size*0.7, size*0.18, -size*0.35, size*0.28, 0, size*0.3)
	body.CubicTo(size*0.4, size*0.32, size*0.7, size*0.2, size*0.72, 0)
	body.Close()
	c.Fill(body, LinearGradient(0, -size*0.35, 0, size*0.35,
		Stop(0, pal.Body), Stop(0.4, pal.Body), Stop(0.85, pal.Belly), Stop(1, pal.Belly)))

	alpha(0.06)
	c.Stroke(body, StrokeStyle{Width: 0.6}, Solid(ColorBlack))

	// Overlapping scale arcs, limited to the body's rough outline.
	alpha(0.04)
	scales := r.path()
	scale := size * 0.04
	for sx := -0.65; sx < 0.65; sx += 0.065 {
		for sy := -0.25; sy < 0.25; sy += 0.055 {
			offset := 0.0
			if int(math.Floor(sy/0.055))%2 == 0 {
				offset = 0.032
			}
			if math.Abs(sy) >= 0.3*(1-math.Abs(sx)*0.8) {
				continue
			}
			scales.EllipseArc((sx+offset)*size, sy*size, scale, scale, 0, math.Pi*0.15, math.Pi*0.85)
			scales.open = false
		}
	}
	c.Stroke(scales, StrokeStyle{Width: 0.3}, Solid(ColorBlack))

	// Spots: a wide feathered pass under a solid core.
	for i := range f.Spots {
		s := &f.Spots[i]
		c.Save()
		c.Rotate(s.Rotation)
		alpha(0.3 * s.Feather)
		p := r.path()
		p.Ellipse(s.CX*size, s.CY*size, s.RX*size*1.2, s.RY*size*1.2, 0)
		c.Fill(p, Solid(s.Color))
		alpha(0.8)
		p = r.path()
		p.Ellipse(s.CX*size, s.CY*size, s.RX*size, s.RY*size, 0)
		c.Fill(p, Solid(s.Color))
		c.Restore()
	}

	// Lateral line.
	alpha(0.06)
	p := r.path()
	p.MoveTo(-size*0.55, 0)
	p.CubicTo(-size*0.2, -size*0.015, size*0.2, -size*0.01, size*0.5, 0)
	c.Stroke(p, StrokeStyle{Width: 0.5}, Solid(ColorBlack))
}

func (r *Renderer) drawPectorals(c *Canvas, pal *KoiPalette, size, swing float64, alpha func(float64)) {
	for _, side := range [2]float64{-1, 1} {
		c.Save()
		c.Translate(size*0.2, side*size*0.27)
		c.Rotate(side * (-0.5 + swing))

		alpha(0.25)
		p := r.path()
		p.MoveTo(0, 0)
		p.CubicTo(size*0.05, -side*size*0.12, size*0.2, -side*size*0.18, size*0.15, -side*size*0.04)
		p.CubicTo(size*0.12, 0, size*0.05, side*size*0.02, 0, 0)
		p.Close()
		c.Fill(p, LinearGradient(0, 0, size*0.15, -side*size*0.12, Stop(0, pal.Fin), Stop(1, pal.FinTip)))

		alpha(0.06)
		p = r.path()
		for ray := range 4 {
			fr := float64(ray)
			p.MoveTo(0, 0)
			p.LineTo(size*(0.08+fr*0.03), -side*size*(0.06+fr*0.03))
		}
		c.Stroke(p, StrokeStyle{Width: 0.3}, Solid(pal.Fin))
		c.Restore()
	}
}

func (r *Renderer) drawHead(c *Canvas, pal *KoiPalette, size float64, alpha func(float64)) {
	alpha(0.97)
	p := r.path()
	p.MoveTo(size*0.78, 0)
	p.CubicTo(size*0.76, -size*0.08, size*0.65, -size*0.2, size*0.4, -size*0.24)
	p.CubicTo(size*0.35, -size*0.25, size*0.3, -size*0.24, size*0.3, -size*0.2)
	p.LineTo(size*0.3, size*0.2)
	p.CubicTo(size*0.3, size*0.24, size*0.35, size*0.25, size*0.4, size*0.24)
	p.CubicTo(size*0.65, size*0.2, size*0.76, size*0.08, size*0.78, 0)
	p.Close()
	c.Fill(p, RadialGradient(size*0.55, 0, 0, size*0.55, 0, size*0.32,
		Stop(0, pal.Body), Stop(0.7, pal.Body), Stop(1, pal.Belly)))

	// Gill cover.
	alpha(0.08)
	p = r.path()
	p.Arc(size*0.38, 0, size*0.22, -math.Pi*0.35, math.Pi*0.35)
	c.Stroke(p, StrokeStyle{Width: 0.6}, Solid(ColorBlack))

	alpha(0.2)
	p = r.path()
	p.Circle(size*0.77, 0, size*0.025)
	c.Fill(p, Solid(fishMouth))

	// Barbels.
	alpha(0.15)
	p = r.path()
	p.MoveTo(size*0.73, -size*0.03)
	p.QuadTo(size*0.82, -size*0.06, size*0.85, -size*0.08)
	p.MoveTo(size*0.73, size*0.03)
	p.QuadTo(size*0.82, size*0.06, size*0.85, size*0.08)
	c.Stroke(p, StrokeStyle{Width: 0.5}, Solid(pal.Body))

	eyes := func(a, dx, dy, rad float64, col Color) {
		alpha(a)
		p := r.path()
		p.Circle(size*(0.6+dx), -size*(0.1+dy), size*rad)
		p.Circle(size*(0.6+dx), size*(0.1-dy), size*rad)
		c.Fill(p, Solid(col))
	}
	eyes(0.15, 0, 0, 0.065, fishSocket)
	eyes(0.9, 0, 0, 0.05, fishEyeWhite)
	eyes(1, 0.005, 0, 0.032, fishIris)
	eyes(0.6, 0.01, 0.004, 0.012, ColorWhite)
}
