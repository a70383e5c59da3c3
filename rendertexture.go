package koipond

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is an image referenced by render commands. Procedural textures keep
// their RGBA pixels on the CPU and upload them on first use, so compiling a
// frame never touches the GPU.
type Texture struct {
	w, h  int
	pix   []byte
	image *ebiten.Image
}

// NewPixelTexture wraps premultiplied RGBA pixels of a w by h image.
func NewPixelTexture(w, h int, pix []byte) *Texture {
	return &Texture{w: w, h: h, pix: pix}
}

// NewImageTexture wraps an existing image.
func NewImageTexture(img *ebiten.Image) *Texture {
	b := img.Bounds()
	return &Texture{w: b.Dx(), h: b.Dy(), image: img}
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.w
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.h
}

// Pixels returns the CPU-side pixels, or nil for image-backed textures.
func (t *Texture) Pixels() []byte {
	return t.pix
}

// Image returns the GPU image, uploading the pixels on first call.
func (t *Texture) Image() *ebiten.Image {
	if t.image == nil {
		t.image = ebiten.NewImageWithOptions(image.Rect(0, 0, t.w, t.h), nil)
		t.image.WritePixels(t.pix)
	}
	return t.image
}

// Dispose releases the GPU image. The texture re-uploads on next use if it
// still holds pixels.
func (t *Texture) Dispose() {
	if t.image != nil {
		t.image.Deallocate()
		if t.pix != nil {
			t.image = nil
		}
	}
}
