package koipond

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("koipond: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// faceCache holds one Go Regular face per font size. The source is parsed
// once, on first use.
type faceCache struct {
	source *text.GoTextFaceSource
	failed bool
	faces  map[float64]*TTFFont
}

// face returns the face for size, or nil when the embedded font cannot be
// parsed.
func (c *faceCache) face(size float64) *text.GoTextFace {
	if size <= 0 || c.failed {
		return nil
	}
	if f, ok := c.faces[size]; ok {
		return f.face
	}
	if c.source == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			warnf("caption font unavailable: %v", err)
			c.failed = true
			return nil
		}
		c.source = src
	}
	if c.faces == nil {
		c.faces = make(map[float64]*TTFFont)
	}
	f := newTTFFont(c.source, size)
	c.faces[size] = f
	return f.face
}
