package koipond

import "github.com/hajimehoshi/ebiten/v2/vector"

// LineCap is the shape of an open stroke's ends.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
)

// StrokeStyle controls how a path is stroked.
type StrokeStyle struct {
	Width float64
	Cap   LineCap
}

// vectorOptions converts the style for ebiten's vector stroker.
func (s StrokeStyle) vectorOptions() *vector.StrokeOptions {
	op := &vector.StrokeOptions{Width: float32(s.Width), LineJoin: vector.LineJoinRound}
	if s.Cap == CapRound {
		op.LineCap = vector.LineCapRound
	}
	return op
}

type canvasState struct {
	m     affine
	alpha float64
	blur  float64
	blend BlendMode
}

// Canvas is an immediate-mode drawing API that records RenderCommands. It has
// a transform, global alpha and blur state with Save and Restore, in the
// manner of a 2D canvas context. Paths are given in local coordinates and
// stored in surface coordinates.
type Canvas struct {
	layer Layer
	st    canvasState
	stack []canvasState

	// dim is one minus the opacity multiplier applied to every command, so
	// the zero value draws at full opacity.
	dim float64

	cmds  []RenderCommand
	order int
}

// NewCanvas returns a canvas with an identity transform and full alpha.
func NewCanvas() *Canvas {
	c := &Canvas{}
	c.Reset()
	return c
}

// Reset drops recorded commands and restores the initial drawing state,
// keeping allocated storage. The opacity multiplier is kept.
func (c *Canvas) Reset() {
	c.st = canvasState{m: identityAffine, alpha: 1}
	c.stack = c.stack[:0]
	c.cmds = c.cmds[:0]
	c.order = 0
	c.layer = 0
}

// SetOpacity sets the multiplier applied to every later command's alpha.
func (c *Canvas) SetOpacity(a float64) {
	c.dim = 1 - clamp01(a)
}

// Opacity returns the whole-canvas opacity multiplier.
func (c *Canvas) Opacity() float64 {
	return 1 - c.dim
}

// SetLayer selects the layer later commands are tagged with.
func (c *Canvas) SetLayer(l Layer) {
	c.layer = l
}

// Save pushes the current transform, alpha, blur and blend state.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.st)
}

// Restore pops the state pushed by the matching Save. Unbalanced calls are
// ignored.
func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.st = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Translate moves the origin by (x, y) in local coordinates.
func (c *Canvas) Translate(x, y float64) {
	c.st.m = c.st.m.translated(x, y)
}

// Rotate rotates the local axes by a radians, clockwise on screen.
func (c *Canvas) Rotate(a float64) {
	c.st.m = c.st.m.rotated(a)
}

// SetAlpha sets the global alpha of later commands.
func (c *Canvas) SetAlpha(a float64) {
	c.st.alpha = clamp01(a)
}

// Alpha returns the current global alpha.
func (c *Canvas) Alpha() float64 {
	return c.st.alpha
}

// SetBlur sets the blur radius in pixels of later fills. Zero disables blur.
func (c *Canvas) SetBlur(px float64) {
	c.st.blur = max(px, 0)
}

// SetBlend sets the blend mode of later commands.
func (c *Canvas) SetBlend(b BlendMode) {
	c.st.blend = b
}

// Point maps a local point to surface coordinates.
func (c *Canvas) Point(x, y float64) (float64, float64) {
	return c.st.m.apply(x, y)
}

// Fill records a fill of p. Empty paths and fully transparent draws record
// nothing.
func (c *Canvas) Fill(p *Path, paint Paint) {
	c.record(CommandFill, p, paint, StrokeStyle{})
}

// Stroke records a stroke of p.
func (c *Canvas) Stroke(p *Path, style StrokeStyle, paint Paint) {
	if style.Width <= 0 {
		return
	}
	style.Width *= c.st.m.scale()
	c.record(CommandStroke, p, paint, style)
}

// FillRect records a filled rectangle in local coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, paint Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	var p Path
	p.Rect(x, y, w, h)
	c.Fill(&p, paint)
}

func (c *Canvas) record(t CommandType, p *Path, paint Paint, style StrokeStyle) {
	alpha := c.st.alpha * c.Opacity()
	if p == nil || p.Empty() || alpha <= 0 || paint.transparent() {
		return
	}
	c.emit(RenderCommand{
		Type:   t,
		Path:   p.transform(c.st.m),
		Paint:  paint.transform(c.st.m),
		Stroke: style,
		Alpha:  alpha,
		Blur:   c.st.blur,
		Blend:  c.st.blend,
	})
}

// Pattern records tex tiled over dest (surface coordinates) with the tile
// grid shifted by offset. The canvas transform is not applied.
func (c *Canvas) Pattern(tex *Texture, offset Vec2, dest Rect) {
	alpha := c.st.alpha * c.Opacity()
	if tex == nil || dest.Empty() || alpha <= 0 {
		return
	}
	c.emit(RenderCommand{Type: CommandPattern, Texture: tex, Offset: offset, Dest: dest, Alpha: alpha, Blend: c.st.blend})
}

// Image records tex scaled into dest (surface coordinates).
func (c *Canvas) Image(tex *Texture, dest Rect) {
	alpha := c.st.alpha * c.Opacity()
	if tex == nil || dest.Empty() || alpha <= 0 {
		return
	}
	c.emit(RenderCommand{Type: CommandImage, Texture: tex, Dest: dest, Alpha: alpha, Blend: c.st.blend})
}

// Text records s centred horizontally on local (x, y), with y the top of the
// line.
func (c *Canvas) Text(s string, x, y, size float64, col Color) {
	alpha := c.st.alpha * c.Opacity()
	if s == "" || size <= 0 || alpha <= 0 || col.A <= 0 {
		return
	}
	sx, sy := c.st.m.apply(x, y)
	c.emit(RenderCommand{
		Type:     CommandText,
		Text:     s,
		FontSize: size,
		Dest:     Rect{X: sx, Y: sy},
		Paint:    Solid(col),
		Alpha:    alpha,
		Blend:    c.st.blend,
	})
}

func (c *Canvas) emit(cmd RenderCommand) {
	cmd.Layer = c.layer
	cmd.order = c.order
	c.order++
	c.cmds = append(c.cmds, cmd)
}

// Commands returns the commands recorded since the last Reset, in emission
// order. The slice is reused by the next Reset.
func (c *Canvas) Commands() []RenderCommand {
	return c.cmds
}
