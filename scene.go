package koipond

import (
	"errors"
	"time"
)

// ErrSurfaceUnavailable is returned by Render when the surface cannot be
// drawn to, for example after it was torn down mid-frame.
var ErrSurfaceUnavailable = errors.New("koipond: surface unavailable")

const defaultCommandCap = 1024

// Renderer compiles the simulator's state into an ordered command list, one
// frame at a time. It owns the water texture built from its noise generator.
// A Renderer may be reused across frames but not shared between simulators
// of different scenes.
type Renderer struct {
	noise *NoiseGenerator
	cfg   Config

	canvas  Canvas
	scratch Path
	sortBuf []RenderCommand

	water     *Texture
	fishOrder []int
	marquee   *Marquee

	debug bool
	stats debugStats
}

// NewRenderer returns a renderer drawing with noise and the constants of cfg.
func NewRenderer(noise *NoiseGenerator, cfg Config) *Renderer {
	r := &Renderer{
		noise:   noise,
		cfg:     cfg,
		sortBuf: make([]RenderCommand, 0, defaultCommandCap),
		debug:   cfg.Debug,
	}
	r.canvas.cmds = make([]RenderCommand, 0, defaultCommandCap)
	r.canvas.Reset()
	return r
}

// SetOpacity sets the opacity of the whole animated layer.
func (r *Renderer) SetOpacity(a float64) {
	r.canvas.SetOpacity(a)
}

// SetMarquee attaches an image strip drawn behind the petals. Nil removes it.
func (r *Renderer) SetMarquee(m *Marquee) {
	r.marquee = m
}

// Compile builds one frame at the simulator's surface size.
func (r *Renderer) Compile(sim *Simulator) []RenderCommand {
	w, h := sim.Size()
	return r.compile(sim, w, h)
}

// Render compiles a frame at the surface's current size and submits it. It
// returns ErrSurfaceUnavailable without drawing when the surface reports it
// cannot be drawn to. A zero-area surface is not an error; nothing is
// submitted.
func (r *Renderer) Render(s Surface, sim *Simulator) error {
	w, h, ok := s.Size()
	if !ok {
		return ErrSurfaceUnavailable
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	cmds := r.compile(sim, float64(w), float64(h))

	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}
	s.Submit(cmds)
	if r.debug {
		r.stats.submitTime = time.Since(t0)
		r.debugLog(r.stats)
	}
	return nil
}

func (r *Renderer) compile(sim *Simulator, w, h float64) []RenderCommand {
	c := &r.canvas
	c.Reset()
	if w <= 0 || h <= 0 {
		return nil
	}

	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	t := sim.Time()
	if r.marquee != nil {
		c.SetLayer(LayerMarquee)
		r.marquee.draw(c, t, w, h)
	}

	if r.cfg.Scene == ScenePond {
		r.drawWater(c, t, w, h)
		r.drawTint(c, w, h)
		r.drawCaustics(c, t, w, h)
		r.drawDepth(c, w, h)
	}

	r.drawStones(c, sim.Stones, w, h)
	r.drawPlants(c, sim.Plants, t, w, h)

	r.sortFishByDepth(sim.Fish)
	c.SetLayer(LayerFish)
	for _, i := range r.fishOrder {
		r.drawFish(c, &sim.Fish[i], w, h)
	}
	r.drawWakes(c, sim.Fish, t, w, h)

	if r.cfg.Scene == ScenePond {
		r.drawRipples(c, t, w, h)
	}
	r.drawPetals(c, sim.Petals, t, w, h)
	if r.cfg.Scene == ScenePond {
		r.drawLightRays(c, t, w, h)
		r.drawSheen(c, w, h)
	}
	r.drawCaption(c, w, h)

	cmds := c.Commands()
	var t1 time.Time
	if r.debug {
		t1 = time.Now()
		r.stats.compileTime = t1.Sub(t0)
	}
	r.sortBuf = sortCommands(cmds, r.sortBuf)
	if r.debug {
		r.stats.sortTime = time.Since(t1)
		r.stats.commandCount = len(cmds)
		r.stats.layerCounts = countLayers(cmds)
	}
	return cmds
}

// sortFishByDepth fills fishOrder with fish indices, farthest (smallest
// Depth) first. The insertion sort is stable, so equal depths keep their
// creation order.
func (r *Renderer) sortFishByDepth(fish []Fish) {
	n := len(fish)
	if cap(r.fishOrder) < n {
		r.fishOrder = make([]int, n)
	}
	r.fishOrder = r.fishOrder[:n]
	for i := range r.fishOrder {
		r.fishOrder[i] = i
	}
	for i := 1; i < n; i++ {
		key := r.fishOrder[i]
		j := i - 1
		for j >= 0 && fish[r.fishOrder[j]].Depth > fish[key].Depth {
			r.fishOrder[j+1] = r.fishOrder[j]
			j--
		}
		r.fishOrder[j+1] = key
	}
}

// waterTexture builds the noise texture on first use.
func (r *Renderer) waterTexture() *Texture {
	if r.water == nil {
		size := r.cfg.Effects.TextureSize
		if size <= 0 {
			return nil
		}
		pix := waterPixels(r.noise, size, r.cfg.Effects.TextureScale, r.cfg.Effects.Octaves)
		r.water = NewPixelTexture(size, size, pix)
	}
	return r.water
}

// path returns the reset scratch path. Canvas copies every path it records,
// so one scratch path serves every draw call.
func (r *Renderer) path() *Path {
	r.scratch.Reset()
	return &r.scratch
}
