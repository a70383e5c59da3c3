package koipond

import (
	"math"
	"testing"
)

func unitSquare() *Path {
	var p Path
	p.Rect(0, 0, 1, 1)
	return &p
}

func TestCanvasRecordsInOrder(t *testing.T) {
	c := NewCanvas()
	c.SetLayer(LayerStones)
	c.Fill(unitSquare(), Solid(ColorWhite))
	c.SetLayer(LayerFish)
	c.Stroke(unitSquare(), StrokeStyle{Width: 2}, Solid(ColorBlack))

	cmds := c.Commands()
	if len(cmds) != 2 {
		t.Fatalf("recorded %d commands, want 2", len(cmds))
	}
	if cmds[0].Type != CommandFill || cmds[0].Layer != LayerStones || cmds[0].order != 0 {
		t.Errorf("first command %+v", cmds[0])
	}
	if cmds[1].Type != CommandStroke || cmds[1].Layer != LayerFish || cmds[1].order != 1 {
		t.Errorf("second command %+v", cmds[1])
	}
}

func TestCanvasSaveRestore(t *testing.T) {
	c := NewCanvas()
	c.Translate(10, 20)
	c.SetAlpha(0.5)
	c.Save()
	c.Translate(5, 5)
	c.SetAlpha(0.2)
	c.SetBlur(4)
	c.SetBlend(BlendAdd)
	c.Restore()

	if x, y := c.Point(0, 0); x != 10 || y != 20 {
		t.Errorf("Point after Restore = (%v, %v), want (10, 20)", x, y)
	}
	c.Fill(unitSquare(), Solid(ColorWhite))
	cmd := c.Commands()[0]
	if cmd.Alpha != 0.5 || cmd.Blur != 0 || cmd.Blend != BlendNormal {
		t.Errorf("state after Restore: alpha=%v blur=%v blend=%v", cmd.Alpha, cmd.Blur, cmd.Blend)
	}

	c.Restore()
	c.Restore()
	if x, _ := c.Point(0, 0); x != 10 {
		t.Error("unbalanced Restore changed the state")
	}
}

func TestCanvasTransformsPaths(t *testing.T) {
	c := NewCanvas()
	c.Translate(100, 50)
	c.Rotate(math.Pi / 2)
	c.Fill(unitSquare(), LinearGradient(0, 0, 1, 0, Stop(0, ColorWhite), Stop(1, ColorBlack)))

	cmd := c.Commands()[0]
	b := cmd.Path.Bounds()
	if !approx(b.X, 99, 1e-9) || !approx(b.Y, 50, 1e-9) || !approx(b.Width, 1, 1e-9) || !approx(b.Height, 1, 1e-9) {
		t.Errorf("transformed bounds %+v", b)
	}
	if !approx(cmd.Paint.P1.X, 100, 1e-9) || !approx(cmd.Paint.P1.Y, 51, 1e-9) {
		t.Errorf("gradient end %v not transformed", cmd.Paint.P1)
	}
}

func TestCanvasStrokeWidthScales(t *testing.T) {
	c := NewCanvas()
	c.st.m = affine{2, 0, 0, 2, 0, 0}
	c.Stroke(unitSquare(), StrokeStyle{Width: 3}, Solid(ColorWhite))
	if w := c.Commands()[0].Stroke.Width; w != 6 {
		t.Errorf("stroke width %v, want 6", w)
	}
	c.Stroke(unitSquare(), StrokeStyle{Width: 0}, Solid(ColorWhite))
	if n := len(c.Commands()); n != 1 {
		t.Errorf("zero-width stroke recorded; %d commands", n)
	}
}

func TestCanvasSkipsInvisible(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Canvas)
	}{
		{"nil path", func(c *Canvas) { c.Fill(nil, Solid(ColorWhite)) }},
		{"empty path", func(c *Canvas) { c.Fill(NewPath(), Solid(ColorWhite)) }},
		{"clear paint", func(c *Canvas) { c.Fill(unitSquare(), Solid(Color{1, 1, 1, 0})) }},
		{"zero alpha", func(c *Canvas) { c.SetAlpha(0); c.Fill(unitSquare(), Solid(ColorWhite)) }},
		{"empty rect", func(c *Canvas) { c.FillRect(0, 0, 0, 5, Solid(ColorWhite)) }},
		{"nil texture", func(c *Canvas) { c.Image(nil, Rect{Width: 5, Height: 5}) }},
		{"empty dest", func(c *Canvas) { c.Pattern(NewPixelTexture(1, 1, make([]byte, 4)), Vec2{}, Rect{}) }},
		{"empty text", func(c *Canvas) { c.Text("", 0, 0, 12, ColorWhite) }},
		{"clear text", func(c *Canvas) { c.Text("koi", 0, 0, 12, Color{}) }},
	}
	for _, tt := range tests {
		c := NewCanvas()
		tt.draw(c)
		if n := len(c.Commands()); n != 0 {
			t.Errorf("%s: recorded %d commands", tt.name, n)
		}
	}
}

func TestCanvasOpacity(t *testing.T) {
	c := NewCanvas()
	if c.Opacity() != 1 {
		t.Fatalf("initial opacity %v", c.Opacity())
	}
	c.SetOpacity(0.5)
	c.SetAlpha(0.5)
	c.Fill(unitSquare(), Solid(ColorWhite))
	if a := c.Commands()[0].Alpha; !approx(a, 0.25, 1e-12) {
		t.Errorf("alpha %v, want 0.25", a)
	}

	c.Reset()
	if c.Opacity() != 0.5 || c.Alpha() != 1 || len(c.Commands()) != 0 {
		t.Errorf("after Reset: opacity=%v alpha=%v cmds=%d", c.Opacity(), c.Alpha(), len(c.Commands()))
	}

	c.SetOpacity(2)
	if c.Opacity() != 1 {
		t.Errorf("opacity not clamped: %v", c.Opacity())
	}
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas()
	c.SetLayer(LayerCaption)
	c.Translate(20, 30)
	c.Text("Stärke", 100, 10, 16, ColorWhite.WithAlpha(0.5))

	cmd := c.Commands()[0]
	if cmd.Type != CommandText || cmd.Text != "Stärke" || cmd.FontSize != 16 {
		t.Fatalf("text command %+v", cmd)
	}
	if cmd.Dest.X != 120 || cmd.Dest.Y != 40 {
		t.Errorf("text anchored at (%v, %v), want (120, 40)", cmd.Dest.X, cmd.Dest.Y)
	}
	if cmd.Paint.Color.A != 0.5 {
		t.Errorf("text colour %v", cmd.Paint.Color)
	}
}

func TestCanvasPatternIgnoresTransform(t *testing.T) {
	c := NewCanvas()
	c.Translate(50, 50)
	tex := NewPixelTexture(2, 2, make([]byte, 16))
	dest := Rect{Width: 100, Height: 80}
	c.Pattern(tex, Vec2{3, 4}, dest)
	c.Image(tex, dest)

	cmds := c.Commands()
	if len(cmds) != 2 {
		t.Fatalf("recorded %d commands", len(cmds))
	}
	for _, cmd := range cmds {
		if cmd.Dest != dest || cmd.Texture != tex {
			t.Errorf("%v command dest %+v", cmd.Type, cmd.Dest)
		}
	}
	if cmds[0].Offset != (Vec2{3, 4}) {
		t.Errorf("pattern offset %v", cmds[0].Offset)
	}
}
