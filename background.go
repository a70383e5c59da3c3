package koipond

import "math"

// waterPixels renders the tileable water texture from fractal noise into
// opaque RGBA pixels. It is computed once per renderer.
func waterPixels(n *NoiseGenerator, size int, scale float64, octaves int) []byte {
	pix := make([]byte, 4*size*size)
	for y := range size {
		for x := range size {
			v := Unit(n.FBM(float64(x)*scale, float64(y)*scale, octaves))
			i := (y*size + x) * 4
			pix[i] = uint8(math.Floor(v*30 + 50))
			pix[i+1] = uint8(math.Floor(v*50 + 90))
			pix[i+2] = uint8(math.Floor(v*40 + 75))
			pix[i+3] = 255
		}
	}
	return pix
}

var (
	tintStops = []GradientStop{
		Stop(0, Hex("#2F5E4E")),
		Stop(0.5, Hex("#3A6B5A")),
		Stop(1, Hex("#2C5548")),
	}
	causticStops = []GradientStop{
		Stop(0, RGBA(160, 210, 185, 0.7)),
		Stop(0.5, RGBA(160, 210, 185, 0.2)),
		Stop(1, RGBA(160, 210, 185, 0)),
	}
	depthStops = []GradientStop{
		Stop(0, RGBA(0, 15, 8, 0.5)),
		Stop(1, RGBA(0, 15, 8, 0)),
	}
	rayStops = []GradientStop{
		Stop(0, RGBA(200, 230, 210, 0)),
		Stop(0.5, RGBA(200, 230, 210, 0.3)),
		Stop(1, RGBA(200, 230, 210, 0)),
	}
	sheenStops = []GradientStop{
		Stop(0, RGBA(255, 255, 255, 0.5)),
		Stop(0.4, RGBA(255, 255, 255, 0)),
	}
	rippleColor = RGBA(190, 225, 210, 0.4)
)

// drawWater tiles the noise texture over the surface, drifting sideways
// slowly and scrolling down over time.
func (r *Renderer) drawWater(c *Canvas, t, w, h float64) {
	tex := r.waterTexture()
	if tex == nil {
		return
	}
	n := float64(tex.Width())
	c.SetLayer(LayerWater)
	c.SetAlpha(1)
	ox := math.Sin(t*0.04) * 30
	oy := math.Mod(t*4, n)
	c.Pattern(tex, Vec2{ox, oy}, Rect{Width: w, Height: h})
}

func (r *Renderer) drawTint(c *Canvas, w, h float64) {
	c.SetLayer(LayerTint)
	c.SetAlpha(0.55)
	c.FillRect(0, 0, w, h, LinearGradient(0, 0, w*0.3, h, tintStops...))
}

func (r *Renderer) drawCaustics(c *Canvas, t, w, h float64) {
	c.SetLayer(LayerCaustics)
	c.SetAlpha(0.06)
	for i := range r.cfg.Effects.Caustics {
		fi := float64(i)
		cx := Unit(r.noise.Noise2D(fi*1.3, t*0.05)) * w
		cy := Unit(r.noise.Noise2D(t*0.04, fi*1.7)) * h
		rad := 30 + r.noise.Noise2D(fi*0.5, t*0.1)*30
		if rad <= 0 {
			continue
		}
		p := r.path()
		p.Circle(cx, cy, rad)
		c.Fill(p, RadialGradient(cx, cy, 0, cx, cy, rad, causticStops...))
	}
}

func (r *Renderer) drawDepth(c *Canvas, w, h float64) {
	c.SetLayer(LayerDepth)
	c.SetAlpha(0.06)
	for i := range r.cfg.Effects.DepthBlobs {
		fi := float64(i)
		dx := (math.Sin(fi*3.7+1.2)*0.4 + 0.5) * w
		dy := (math.Cos(fi*4.3+0.8)*0.4 + 0.5) * h
		dr := 100 + fi*40
		c.FillRect(dx-dr, dy-dr, dr*2, dr*2, RadialGradient(dx, dy, 0, dx, dy, dr, depthStops...))
	}
}

func (r *Renderer) drawRipples(c *Canvas, t, w, h float64) {
	c.SetLayer(LayerRipples)
	c.SetAlpha(0.025)
	p := r.path()
	for i := range r.cfg.Effects.Ripples {
		fi := float64(i)
		rx := Unit(r.noise.Noise2D(fi*2.3, t*0.03)) * w
		ry := Unit(r.noise.Noise2D(t*0.025, fi*2.8)) * h
		rr := 10 + r.noise.Noise2D(fi, t*0.1)*15
		for ring := range 3 {
			if rad := rr + float64(ring)*rr*0.7; rad > 0 {
				p.Circle(rx, ry, rad)
			}
		}
	}
	c.Stroke(p, StrokeStyle{Width: 0.5}, Solid(rippleColor))
}

func (r *Renderer) drawLightRays(c *Canvas, t, w, h float64) {
	c.SetLayer(LayerLightRays)
	for i := range r.cfg.Effects.LightRays {
		fi := float64(i)
		rx := Unit(r.noise.Noise2D(fi*3.1, t*0.015)) * w
		rw := 40 + r.noise.Noise2D(fi*1.5, t*0.02)*30
		alpha := 0.015 + r.noise.Noise2D(fi*2.1, t*0.03)*0.01
		if alpha <= 0 || rw <= 0 {
			continue
		}
		c.Save()
		c.SetAlpha(alpha)
		c.Translate(rx, 0)
		c.Rotate(0.15 + r.noise.Noise2D(fi, t*0.01)*0.1)
		c.FillRect(-rw/2, 0, rw, h*1.3, LinearGradient(-rw/2, 0, rw/2, 0, rayStops...))
		c.Restore()
	}
}

func (r *Renderer) drawSheen(c *Canvas, w, h float64) {
	c.SetLayer(LayerSheen)
	c.SetAlpha(0.025)
	c.FillRect(0, 0, w, h, LinearGradient(0, 0, w*0.5, h*0.3, sheenStops...))
}
