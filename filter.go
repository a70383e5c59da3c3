package koipond

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a post-process applied to an offscreen rendering of a command.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect. Zero means no padding.
	Padding() int
}

// gradientShaderSrc shades linear (Mode 0) and two-circle radial (Mode 1)
// gradients. The colour comes from a RampWidth by 1 ramp in image 0, scaled
// by the vertex alpha. Geometry uniforms are in destination pixels.
const gradientShaderSrc = `//kage:unit pixels
package main

var Mode float
var P0 vec2
var P1 vec2
var R0 float
var R1 float
var RampWidth float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	p := dst.xy
	t := 0.0
	if Mode < 0.5 {
		d := P1 - P0
		l := dot(d, d)
		if l > 0 {
			t = dot(p-P0, d) / l
		}
	} else {
		cd := P1 - P0
		pd := p - P0
		dr := R1 - R0
		a := dot(cd, cd) - dr*dr
		b := dot(pd, cd) + R0*dr
		c := dot(pd, pd) - R0*R0
		if abs(a) < 0.000001 {
			if abs(b) < 0.000001 {
				return vec4(0)
			}
			t = c / (2 * b)
		} else {
			disc := b*b - a*c
			if disc < 0 {
				return vec4(0)
			}
			sq := sqrt(disc)
			hi := max((b+sq)/a, (b-sq)/a)
			lo := min((b+sq)/a, (b-sq)/a)
			t = hi
			if R0+hi*dr < 0 {
				t = lo
			}
		}
		if R0+t*dr < 0 {
			return vec4(0)
		}
	}
	t = clamp(t, 0, 1)
	origin := imageSrc0Origin()
	return imageSrc0At(origin+vec2(t*(RampWidth-1)+0.5, 0.5)) * color.a
}
`

// Shaders compile lazily on first use; submission is single-threaded.
var gradientShader *ebiten.Shader

func ensureGradientShader() *ebiten.Shader {
	if gradientShader == nil {
		s, err := ebiten.NewShader([]byte(gradientShaderSrc))
		if err != nil {
			panic("koipond: failed to compile gradient shader: " + err.Error())
		}
		gradientShader = s
	}
	return gradientShader
}

// --- BlurFilter ---

// BlurFilter softens shadows, halos and blurred petals with a Kawase blur.
// Each pass halves the image with bilinear filtering and the chain is then
// scaled back up, so no shader is needed. The intermediate images are kept
// between frames while their sizes stay the same.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius in pixels.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: max(radius, 0)}
}

// blurPasses returns the number of halvings for radius: ceil(log2(radius)),
// at least one.
func blurPasses(radius int) int {
	return max(int(math.Ceil(math.Log2(float64(radius)))), 1)
}

// Apply blurs src into dst. A zero radius copies src unchanged.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	if f.Radius <= 0 {
		f.draw(dst, src, ebiten.FilterNearest)
		return
	}

	passes := blurPasses(f.Radius)
	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for _, img := range f.temps[passes:] {
		if img != nil {
			img.Deallocate()
		}
	}
	clear(f.temps[passes:])
	f.temps = f.temps[:passes]

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	current := src
	for i := range passes {
		w, h = max(w/2, 1), max(h/2, 1)
		tmp := f.temp(i, w, h)
		f.draw(tmp, current, ebiten.FilterLinear)
		current = tmp
	}
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.draw(f.temps[i], current, ebiten.FilterLinear)
		current = f.temps[i]
	}
	f.draw(dst, current, ebiten.FilterLinear)
}

// temp returns a cleared w by h image for pass i.
func (f *BlurFilter) temp(i, w, h int) *ebiten.Image {
	img := f.temps[i]
	if img != nil && img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		img.Clear()
		return img
	}
	if img != nil {
		img.Deallocate()
	}
	f.temps[i] = ebiten.NewImage(w, h)
	return f.temps[i]
}

// draw scales src to cover dst.
func (f *BlurFilter) draw(dst, src *ebiten.Image, filter ebiten.Filter) {
	sb, db := src.Bounds(), dst.Bounds()
	op := &f.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.ColorScale.Reset()
	op.Filter = filter
	dst.DrawImage(src, op)
}

// Padding returns the blur radius, the margin an offscreen needs so the blur
// is not clipped.
func (f *BlurFilter) Padding() int { return f.Radius }

// Dispose releases the intermediate images.
func (f *BlurFilter) Dispose() {
	for i, img := range f.temps {
		if img != nil {
			img.Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:0]
}

// filterChainPadding returns the cumulative padding required by a slice of filters.
func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between src and
// scratch. It returns whichever of the two holds the final result.
func applyFilters(filters []Filter, src, scratch *ebiten.Image) *ebiten.Image {
	current := src
	for i, f := range filters {
		if i > 0 {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}
	return current
}
