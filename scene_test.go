package koipond

import (
	"errors"
	"testing"
)

func newTestRenderer(cfg Config) *Renderer {
	return NewRenderer(NewNoise(cfg.Seed), cfg)
}

func TestRenderSubmitsOneFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntitySeed = 5
	sim := NewSimulator(cfg, 640, 480)
	surface := NewBufferedSurface(640, 480)
	r := newTestRenderer(cfg)

	if err := r.Render(surface, sim); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if surface.Submits() != 1 {
		t.Fatalf("Submits = %d, want 1", surface.Submits())
	}
	if len(surface.Frame()) == 0 {
		t.Error("submitted frame is empty")
	}
}

func TestRenderSurfaceUnavailable(t *testing.T) {
	cfg := DefaultConfig()
	sim := NewSimulator(cfg, 640, 480)
	surface := NewBufferedSurface(640, 480)
	surface.Close()

	err := newTestRenderer(cfg).Render(surface, sim)
	if !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("Render error = %v, want ErrSurfaceUnavailable", err)
	}
	if surface.Submits() != 0 {
		t.Errorf("Submits = %d, want 0", surface.Submits())
	}
}

func TestRenderZeroAreaSkipsSubmit(t *testing.T) {
	cfg := DefaultConfig()
	sim := NewSimulator(cfg, 640, 480)
	surface := NewBufferedSurface(0, 480)

	if err := newTestRenderer(cfg).Render(surface, sim); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if surface.Submits() != 0 {
		t.Errorf("Submits = %d, want 0 for a zero-area surface", surface.Submits())
	}
}

func TestRenderUsesSurfaceSize(t *testing.T) {
	cfg := BlossomConfig()
	cfg.EntitySeed = 2
	sim := NewSimulator(cfg, 1024, 768)
	surface := NewBufferedSurface(300, 200)
	if err := newTestRenderer(cfg).Render(surface, sim); err != nil {
		t.Fatal(err)
	}
	for i, c := range surface.Frame() {
		b := c.Path.Bounds()
		// Petals sit at normalized positions, so every one lands near the
		// 300x200 surface even though the simulator was sized larger.
		if b.X > 300+100 || b.Y > 200+100 {
			t.Errorf("command %d drawn at (%.0f, %.0f), outside the surface", i, b.X, b.Y)
		}
	}
}

func TestRenderOpacityZeroRecordsNothing(t *testing.T) {
	cfg := DefaultConfig()
	sim := NewSimulator(cfg, 640, 480)
	r := newTestRenderer(cfg)
	r.SetOpacity(0)
	if cmds := r.Compile(sim); len(cmds) != 0 {
		t.Errorf("got %d commands at opacity 0, want 0", len(cmds))
	}
	r.SetOpacity(1)
	if cmds := r.Compile(sim); len(cmds) == 0 {
		t.Error("got no commands at opacity 1")
	}
}

func TestRenderOpacityScalesAlpha(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntitySeed = 8
	sim := NewSimulator(cfg, 640, 480)
	r := newTestRenderer(cfg)

	full := append([]RenderCommand(nil), r.Compile(sim)...)
	r.SetOpacity(0.5)
	half := r.Compile(sim)
	if len(full) != len(half) {
		t.Fatalf("command count changed with opacity: %d vs %d", len(full), len(half))
	}
	for i := range full {
		if got, want := half[i].Alpha, full[i].Alpha*0.5; !approx(got, want, 1e-9) {
			t.Fatalf("command %d alpha = %v, want %v", i, got, want)
		}
	}
}

func TestSortFishByDepth(t *testing.T) {
	r := newTestRenderer(DefaultConfig())
	fish := []Fish{{Depth: 0.9}, {Depth: 0.5}, {Depth: 0.7}, {Depth: 0.5}}
	r.sortFishByDepth(fish)

	want := []int{1, 3, 2, 0}
	for i, idx := range r.fishOrder {
		if idx != want[i] {
			t.Fatalf("fishOrder = %v, want %v", r.fishOrder, want)
		}
	}
}

func TestSortFishByDepthShrinks(t *testing.T) {
	r := newTestRenderer(DefaultConfig())
	r.sortFishByDepth(make([]Fish, 5))
	r.sortFishByDepth(make([]Fish, 2))
	if len(r.fishOrder) != 2 {
		t.Errorf("len(fishOrder) = %d, want 2", len(r.fishOrder))
	}
}

func TestFishShadowIsBlurred(t *testing.T) {
	_, cmds := compileFrame(t, DefaultConfig(), 800, 600)
	blurred := 0
	for _, c := range cmds {
		if c.Blur > 0 {
			if c.Layer != LayerFish {
				t.Errorf("blurred command in layer %s", c.Layer)
			}
			blurred++
		}
	}
	if blurred != DefaultConfig().Fish.Count {
		t.Errorf("blurred commands = %d, want one shadow per fish (%d)", blurred, DefaultConfig().Fish.Count)
	}
}

func TestDepthCue(t *testing.T) {
	if depthCue(0.5) >= depthCue(1) {
		t.Error("farther fish should be fainter")
	}
	if got := depthCue(1); got != 1 {
		t.Errorf("depthCue(1) = %v, want 1", got)
	}
	if got := depthCue(2); got != 1 {
		t.Errorf("depthCue(2) = %v, want clamped to 1", got)
	}
}

func TestWaterTextureBuiltOnce(t *testing.T) {
	r := newTestRenderer(DefaultConfig())
	a := r.waterTexture()
	b := r.waterTexture()
	if a == nil || a != b {
		t.Fatal("water texture should be built once and reused")
	}
	size := DefaultConfig().Effects.TextureSize
	if a.Width() != size || a.Height() != size || len(a.Pixels()) != 4*size*size {
		t.Errorf("water texture %dx%d with %d bytes", a.Width(), a.Height(), len(a.Pixels()))
	}
}

func TestWaterPixelsOpaqueAndInRange(t *testing.T) {
	pix := waterPixels(NewNoise(42), 16, 0.02, 4)
	for i := 0; i < len(pix); i += 4 {
		r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
		if a != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, a)
		}
		if r < 50 || r > 80 || g < 90 || g > 140 || b < 75 || b > 115 {
			t.Fatalf("pixel %d = (%d,%d,%d), outside the water palette", i/4, r, g, b)
		}
	}
}

func TestCaptionCentredNearBottom(t *testing.T) {
	_, cmds := compileFrame(t, DefaultConfig(), 800, 600)
	var caption *RenderCommand
	for i := range cmds {
		if cmds[i].Type == CommandText {
			caption = &cmds[i]
		}
	}
	if caption == nil {
		t.Fatal("no caption command")
	}
	if caption.FontSize != 16 {
		t.Errorf("FontSize = %v, want 16 at 800px", caption.FontSize)
	}
	if caption.Dest.X != 400 || caption.Dest.Y != 600-112-16 {
		t.Errorf("caption at (%v, %v)", caption.Dest.X, caption.Dest.Y)
	}
}
