package koipond

import (
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Tile base sizes in pixels before the per-tile scale.
const (
	tileLong   = 384
	tileShort  = 256
	tileRadius = 8
)

var (
	tileShadow = RGBA(0, 0, 0, 0.3)
	tileFrame  = RGBA(0x36, 0x36, 0x36, 0.05)
)

// MarqueeTile is one laid-out slot of the strip. X is the left edge relative
// to the strip start; Y is the offset from the vertically centred position.
type MarqueeTile struct {
	X, Y          float64
	Width, Height float64
	Texture       *Texture // nil when the image failed to load
}

// Marquee is a horizontal strip of photos scrolling right to left. The list
// is laid out twice so the strip loops without a seam.
type Marquee struct {
	Tiles []MarqueeTile
	// Speed is in pixels per second.
	Speed float64
	// Span is the distance after which the scroll offset wraps.
	Span float64
}

// seededRandom maps x to a repeatable value in [0, 1).
func seededRandom(x float64) float64 {
	v := math.Sin(x) * 10000
	return v - math.Floor(v)
}

// LoadMarquee loads every image in cfg. Images that fail to load keep their
// slot in the layout and are not drawn.
func LoadMarquee(cfg MarqueeConfig) *Marquee {
	textures := make([]*Texture, len(cfg.Images))
	for i, im := range cfg.Images {
		img, _, err := ebitenutil.NewImageFromFile(im.Path)
		if err != nil {
			warnf("marquee image %s skipped: %v", im.Path, err)
			continue
		}
		textures[i] = NewImageTexture(img)
	}
	return newMarquee(cfg, textures)
}

// newMarquee lays out cfg.Images twice. textures[i] belongs to cfg.Images[i]
// and may be nil.
func newMarquee(cfg MarqueeConfig, textures []*Texture) *Marquee {
	n := len(cfg.Images)
	m := &Marquee{Speed: cfg.Speed, Tiles: make([]MarqueeTile, 0, 2*n)}
	x := 0.0
	for i := range 2 * n {
		src := i % n
		fi := float64(i)
		offY := (seededRandom(fi*1.5) - 0.5) * 160
		offX := (seededRandom(fi*2.3) - 0.5) * 40
		margin := 8 + seededRandom(fi*3.7)*48
		scale := 0.75 + seededRandom(fi*4.1)*0.5

		bw, bh := float64(tileShort), float64(tileLong)
		if cfg.Images[src].Landscape {
			bw, bh = bh, bw
		}
		tile := MarqueeTile{
			X:      x + margin + offX,
			Y:      offY,
			Width:  bw * scale,
			Height: bh * scale,
		}
		if src < len(textures) {
			tile.Texture = textures[src]
		}
		m.Tiles = append(m.Tiles, tile)
		x += 2*margin + tile.Width
	}
	m.Span = x / 2
	return m
}

// Scroll returns the strip's horizontal offset at time t.
func (m *Marquee) Scroll(t float64) float64 {
	if m.Span <= 0 {
		return 0
	}
	return -math.Mod(t*m.Speed, m.Span)
}

// draw records the visible tiles of a w by h surface.
func (m *Marquee) draw(c *Canvas, t, w, h float64) {
	if len(m.Tiles) == 0 {
		return
	}
	scroll := m.Scroll(t)
	var p Path
	for i := range m.Tiles {
		tile := &m.Tiles[i]
		x := tile.X + scroll
		y := (h-tile.Height)/2 + tile.Y
		if x+tile.Width < -50 || x > w+50 {
			continue
		}

		c.Save()
		c.SetBlur(25)
		p.Reset()
		p.RoundRect(x, y+12, tile.Width, tile.Height, tileRadius)
		c.Fill(&p, Solid(tileShadow))
		c.Restore()

		p.Reset()
		p.RoundRect(x, y, tile.Width, tile.Height, tileRadius)
		c.Fill(&p, Solid(tileFrame))
		if tile.Texture != nil {
			c.Image(tile.Texture, Rect{X: x, Y: y, Width: tile.Width, Height: tile.Height})
		}
	}
}
