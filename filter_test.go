package koipond

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewBlurFilterClampsRadius(t *testing.T) {
	if f := NewBlurFilter(-4); f.Radius != 0 || f.Padding() != 0 {
		t.Errorf("negative radius kept: %d", f.Radius)
	}
	if f := NewBlurFilter(12); f.Padding() != 12 {
		t.Errorf("Padding() = %d", f.Padding())
	}
}

func TestFilterChainPadding(t *testing.T) {
	chain := []Filter{NewBlurFilter(3), NewBlurFilter(5), NewBlurFilter(0)}
	if got := filterChainPadding(chain); got != 8 {
		t.Errorf("filterChainPadding = %d, want 8", got)
	}
	if got := filterChainPadding(nil); got != 0 {
		t.Errorf("empty chain padding = %d", got)
	}
}

func TestApplyFiltersPingPong(t *testing.T) {
	src := ebiten.NewImage(16, 16)
	scratch := ebiten.NewImage(16, 16)
	if got := applyFilters(nil, src, scratch); got != src {
		t.Error("empty chain should return src")
	}
	one := []Filter{NewBlurFilter(4)}
	if got := applyFilters(one, src, scratch); got != scratch {
		t.Error("one filter should leave the result in scratch")
	}
	two := []Filter{NewBlurFilter(2), NewBlurFilter(0)}
	if got := applyFilters(two, src, scratch); got != src {
		t.Error("two filters should end back in src")
	}
}

func TestBlurFilterDispose(t *testing.T) {
	f := NewBlurFilter(8)
	src := ebiten.NewImage(32, 32)
	dst := ebiten.NewImage(32, 32)
	f.Apply(src, dst)
	if len(f.temps) != 3 {
		t.Fatalf("temps = %d, want log2(8) passes", len(f.temps))
	}
	f.Dispose()
	if len(f.temps) != 0 {
		t.Errorf("temps after Dispose = %d", len(f.temps))
	}
}

func TestBlurPasses(t *testing.T) {
	tests := []struct{ radius, want int }{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {6, 3}, {8, 3}, {9, 4},
	}
	for _, tt := range tests {
		if got := blurPasses(tt.radius); got != tt.want {
			t.Errorf("blurPasses(%d) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestBlurFilterReusesChain(t *testing.T) {
	f := NewBlurFilter(8)
	defer f.Dispose()
	src := ebiten.NewImage(32, 32)
	dst := ebiten.NewImage(32, 32)
	f.Apply(src, dst)
	first := f.temps[0]
	f.Apply(src, dst)
	if f.temps[0] != first {
		t.Error("same-size blur reallocated its first pass")
	}

	f.Radius = 2
	f.Apply(src, dst)
	if len(f.temps) != 1 || f.temps[0] != first {
		t.Errorf("after shrinking the radius temps = %d", len(f.temps))
	}
}

func TestGradientShaderCompiles(t *testing.T) {
	if ensureGradientShader() == nil {
		t.Fatal("no shader")
	}
	if ensureGradientShader() != ensureGradientShader() {
		t.Error("shader compiled more than once")
	}
}
