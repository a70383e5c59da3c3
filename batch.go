package koipond

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	rampWidth    = 256
	maxRampStops = 6
	maxRamps     = 256
)

// rampKey identifies a baked gradient ramp by its stops.
type rampKey struct {
	n     int
	stops [maxRampStops]GradientStop
}

// Submitter executes render commands against an ebiten image. It fills paths
// with ebiten's vector package, shades gradients with a Kage shader over a
// baked colour ramp inside a pooled mask, and routes blurred commands through
// a pooled offscreen.
// A Submitter is not safe for concurrent use.
type Submitter struct {
	white *ebiten.Image

	vpath   vector.Path
	outline vector.Path
	verts   []ebiten.Vertex
	inds    []uint16

	ramps   map[rampKey]*ebiten.Image
	scratch []*ebiten.Image
	rampPix []byte

	pool  renderTexturePool
	blur  BlurFilter
	fonts faceCache

	imgOp  ebiten.DrawImageOptions
	textOp text.DrawOptions
}

// NewSubmitter returns a submitter with empty caches.
func NewSubmitter() *Submitter {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Submitter{
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		ramps:   make(map[rampKey]*ebiten.Image),
		rampPix: make([]byte, rampWidth*4),
	}
}

// Submit draws cmds onto dst in order.
func (s *Submitter) Submit(dst *ebiten.Image, cmds []RenderCommand) {
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Blur > 0 && (cmd.Type == CommandFill || cmd.Type == CommandStroke) {
			s.submitBlurred(dst, cmd)
			continue
		}
		s.submit(dst, cmd, 0, 0)
	}
	for _, img := range s.scratch {
		img.Deallocate()
	}
	s.scratch = s.scratch[:0]
}

func (s *Submitter) submit(dst *ebiten.Image, cmd *RenderCommand, ox, oy float64) {
	switch cmd.Type {
	case CommandFill:
		s.submitPath(dst, cmd, false, ox, oy)
	case CommandStroke:
		s.submitPath(dst, cmd, true, ox, oy)
	case CommandPattern:
		s.submitPattern(dst, cmd)
	case CommandImage:
		s.submitImage(dst, cmd)
	case CommandText:
		s.submitText(dst, cmd)
	}
}

// submitPath fills or strokes cmd.Path shifted by (-ox, -oy).
func (s *Submitter) submitPath(dst *ebiten.Image, cmd *RenderCommand, stroke bool, ox, oy float64) {
	if cmd.Path == nil || cmd.Path.Empty() {
		return
	}
	if cmd.Paint.Kind != PaintSolid {
		s.submitGradient(dst, cmd, stroke, ox, oy)
		return
	}
	c := cmd.Paint.Color
	a := float32(clamp01(c.A)) * float32(clamp01(cmd.Alpha))
	var op vector.DrawPathOptions
	op.AntiAlias = true
	op.Blend = cmd.Blend.EbitenBlend()
	op.ColorScale.Scale(float32(clamp01(c.R))*a, float32(clamp01(c.G))*a, float32(clamp01(c.B))*a, a)
	vector.FillPath(dst, s.shape(cmd, stroke, ox, oy), nil, &op)
}

// shape rebuilds cmd.Path shifted by (-ox, -oy) as a vector path, replaced by
// its outline when stroke is set. Both are filled with the non-zero rule.
func (s *Submitter) shape(cmd *RenderCommand, stroke bool, ox, oy float64) *vector.Path {
	s.vpath.Reset()
	cmd.Path.appendVector(&s.vpath, ox, oy)
	if !stroke {
		return &s.vpath
	}
	s.outline.Reset()
	s.outline.AddStroke(&s.vpath, &vector.AddStrokeOptions{StrokeOptions: *cmd.Stroke.vectorOptions()})
	return &s.outline
}

// submitGradient fills the shape white into a pooled offscreen clipped to
// dst, shades the covered pixels with the gradient shader and composites the
// result.
func (s *Submitter) submitGradient(dst *ebiten.Image, cmd *RenderCommand, stroke bool, ox, oy float64) {
	b := s.shape(cmd, stroke, ox, oy).Bounds()
	if b.Empty() {
		return
	}
	b = b.Inset(-1).Intersect(dst.Bounds())
	if b.Empty() {
		return
	}
	mask := s.pool.Acquire(b.Dx(), b.Dy())
	defer s.pool.Release(mask)
	mx, my := float64(b.Min.X), float64(b.Min.Y)

	var fop vector.DrawPathOptions
	fop.AntiAlias = true
	vector.FillPath(mask, s.shape(cmd, stroke, ox+mx, oy+my), nil, &fop)

	ramp := s.ramp(cmd.Paint.Stops)
	rb := ramp.Bounds()
	sx, sy := float32(rb.Min.X)+0.5, float32(rb.Min.Y)+0.5
	w, h := float32(b.Dx()), float32(b.Dy())
	s.verts = append(s.verts[:0],
		ebiten.Vertex{DstX: 0, DstY: 0, SrcX: sx, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: w, DstY: 0, SrcX: sx, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: 0, DstY: h, SrcX: sx, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: w, DstY: h, SrcX: sx, SrcY: sy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	)
	s.inds = append(s.inds[:0], 0, 1, 2, 1, 3, 2)

	p := cmd.Paint.offset(ox+mx, oy+my)
	mode := float32(0)
	if p.Kind == PaintRadial {
		mode = 1
	}
	var op ebiten.DrawTrianglesShaderOptions
	op.Blend = ebiten.BlendSourceIn
	op.Images[0] = ramp
	op.Uniforms = map[string]any{
		"Mode":      mode,
		"P0":        []float32{float32(p.P0.X), float32(p.P0.Y)},
		"P1":        []float32{float32(p.P1.X), float32(p.P1.Y)},
		"R0":        float32(p.R0),
		"R1":        float32(p.R1),
		"RampWidth": float32(rampWidth),
	}
	mask.DrawTrianglesShader(s.verts, s.inds, ensureGradientShader(), &op)

	io := &s.imgOp
	io.GeoM.Reset()
	io.GeoM.Translate(mx, my)
	io.ColorScale.Reset()
	io.ColorScale.ScaleAlpha(float32(clamp01(cmd.Alpha)))
	io.Blend = cmd.Blend.EbitenBlend()
	io.Filter = ebiten.FilterNearest
	dst.DrawImage(mask.SubImage(image.Rect(0, 0, b.Dx(), b.Dy())).(*ebiten.Image), io)
}

// submitBlurred draws cmd into a pooled offscreen covering its bounds plus
// blur padding, blurs it, and composites the result.
func (s *Submitter) submitBlurred(dst *ebiten.Image, cmd *RenderCommand) {
	if cmd.Path == nil || cmd.Path.Empty() {
		return
	}
	s.blur.Radius = int(math.Round(cmd.Blur))
	filters := []Filter{&s.blur}

	b := cmd.Path.Bounds()
	pad := float64(2*filterChainPadding(filters) + 2)
	if cmd.Type == CommandStroke {
		pad += math.Ceil(cmd.Stroke.Width)
	}
	ox, oy := math.Floor(b.X-pad), math.Floor(b.Y-pad)
	w := int(math.Ceil(b.X+b.Width+pad) - ox)
	h := int(math.Ceil(b.Y+b.Height+pad) - oy)
	if w <= 0 || h <= 0 {
		return
	}

	src := s.pool.Acquire(w, h)
	out := s.pool.Acquire(w, h)
	defer s.pool.Release(src)
	defer s.pool.Release(out)

	sharp := *cmd
	sharp.Blend = BlendNormal
	sharp.Alpha = 1
	s.submitPath(src, &sharp, cmd.Type == CommandStroke, ox, oy)

	result := applyFilters(filters, src, out)

	op := &s.imgOp
	op.GeoM.Reset()
	op.GeoM.Translate(ox, oy)
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(clamp01(cmd.Alpha)))
	op.Blend = cmd.Blend.EbitenBlend()
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(result, op)
}

// submitPattern tiles the texture over Dest, shifting the tile grid by Offset.
func (s *Submitter) submitPattern(dst *ebiten.Image, cmd *RenderCommand) {
	img := cmd.Texture.Image()
	tw, th := float32(cmd.Texture.Width()), float32(cmd.Texture.Height())
	if tw <= 0 || th <= 0 {
		return
	}
	d := cmd.Dest
	x0, y0 := float32(d.X), float32(d.Y)
	x1, y1 := float32(d.X+d.Width), float32(d.Y+d.Height)
	u0, v0 := x0-float32(cmd.Offset.X), y0-float32(cmd.Offset.Y)
	u1, v1 := u0+float32(d.Width), v0+float32(d.Height)
	a := float32(clamp01(cmd.Alpha))

	bounds := img.Bounds()
	bx, by := float32(bounds.Min.X), float32(bounds.Min.Y)
	s.verts = append(s.verts[:0],
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: bx + u0, SrcY: by + v0, ColorR: a, ColorG: a, ColorB: a, ColorA: a},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: bx + u1, SrcY: by + v0, ColorR: a, ColorG: a, ColorB: a, ColorA: a},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: bx + u0, SrcY: by + v1, ColorR: a, ColorG: a, ColorB: a, ColorA: a},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: bx + u1, SrcY: by + v1, ColorR: a, ColorG: a, ColorB: a, ColorA: a},
	)
	s.inds = append(s.inds[:0], 0, 1, 2, 1, 3, 2)

	var op ebiten.DrawTrianglesOptions
	op.Address = ebiten.AddressRepeat
	op.Filter = ebiten.FilterLinear
	op.Blend = cmd.Blend.EbitenBlend()
	dst.DrawTriangles(s.verts, s.inds, img, &op)
}

// submitImage draws the texture scaled into Dest.
func (s *Submitter) submitImage(dst *ebiten.Image, cmd *RenderCommand) {
	tw, th := cmd.Texture.Width(), cmd.Texture.Height()
	if tw <= 0 || th <= 0 {
		return
	}
	op := &s.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(cmd.Dest.Width/float64(tw), cmd.Dest.Height/float64(th))
	op.GeoM.Translate(cmd.Dest.X, cmd.Dest.Y)
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(clamp01(cmd.Alpha)))
	op.Blend = cmd.Blend.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(cmd.Texture.Image(), op)
}

// submitText draws the text centred on Dest.X with its top at Dest.Y.
func (s *Submitter) submitText(dst *ebiten.Image, cmd *RenderCommand) {
	face := s.fonts.face(cmd.FontSize)
	if face == nil {
		return
	}
	op := &s.textOp
	op.GeoM.Reset()
	op.GeoM.Translate(cmd.Dest.X, cmd.Dest.Y)
	op.ColorScale.Reset()
	c := cmd.Paint.Color
	op.ColorScale.ScaleWithColor(c.WithAlpha(c.A * cmd.Alpha).toRGBA())
	op.Blend = cmd.Blend.EbitenBlend()
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignStart
	op.LineSpacing = face.Size * 1.2
	text.Draw(dst, cmd.Text, face, op)
}

// ramp returns a rampWidth by 1 image holding the gradient sampled along
// [0, 1]. Ramps of up to maxRampStops stops are cached across frames.
func (s *Submitter) ramp(stops []GradientStop) *ebiten.Image {
	cacheable := len(stops) <= maxRampStops
	var key rampKey
	if cacheable {
		key.n = copy(key.stops[:], stops)
		if img, ok := s.ramps[key]; ok {
			return img
		}
	}

	p := Paint{Kind: PaintLinear, Stops: stops}
	for i := range rampWidth {
		c := p.ColorAt(float64(i) / (rampWidth - 1)).toRGBA()
		s.rampPix[i*4] = c.R
		s.rampPix[i*4+1] = c.G
		s.rampPix[i*4+2] = c.B
		s.rampPix[i*4+3] = c.A
	}
	img := ebiten.NewImage(rampWidth, 1)
	img.WritePixels(s.rampPix)

	if !cacheable {
		s.scratch = append(s.scratch, img)
		return img
	}
	if len(s.ramps) >= maxRamps {
		for k, old := range s.ramps {
			old.Deallocate()
			delete(s.ramps, k)
		}
	}
	s.ramps[key] = img
	return img
}

// Dispose releases every cached GPU resource.
func (s *Submitter) Dispose() {
	for k, img := range s.ramps {
		img.Deallocate()
		delete(s.ramps, k)
	}
	s.pool.Dispose()
	s.blur.Dispose()
}
