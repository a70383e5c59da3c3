package koipond

// Layer orders render commands back to front. Commands in a lower layer are
// always submitted before commands in a higher one.
type Layer uint8

const (
	LayerMarquee   Layer = iota // image strip behind the blossom overlay
	LayerWater                  // scrolled noise texture
	LayerTint                   // water colour overlay
	LayerCaustics               // noise-positioned light blobs
	LayerDepth                  // darkening vignette blobs
	LayerStones                 // static riverbed stones
	LayerPlants                 // swaying blades
	LayerFish                   // koi, farthest first
	LayerWakes                  // wake rings and distortion halos behind koi
	LayerRipples                // surface ripple rings
	LayerPetals                 // petals on or above the water
	LayerLightRays              // diagonal light bands
	LayerSheen                  // final surface sheen
	LayerCaption                // caption text
	layerCount
)

// String returns the layer's name.
func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

var layerNames = [layerCount]string{
	"marquee", "water", "tint", "caustics", "depth", "stones", "plants",
	"fish", "wakes", "ripples", "petals", "light-rays", "sheen", "caption",
}

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandFill    CommandType = iota // fill Path with Paint
	CommandStroke                     // stroke Path with Paint
	CommandPattern                    // tile Texture over Dest, shifted by Offset
	CommandImage                      // draw Texture scaled into Dest
	CommandText                       // draw Text centred on Dest's top edge
)

// RenderCommand is a single draw instruction in surface pixel coordinates.
// A frame is an ordered list of commands; submitters execute them in order.
type RenderCommand struct {
	Type  CommandType
	Layer Layer

	Path   *Path
	Paint  Paint
	Stroke StrokeStyle

	// Alpha multiplies the paint's opacity.
	Alpha float64
	// Blur is the blur radius in pixels; zero means sharp.
	Blur  float64
	Blend BlendMode

	Texture *Texture
	Offset  Vec2
	Dest    Rect

	Text     string
	FontSize float64

	order int // emission index for a stable sort
}

// commandLessOrEqual returns true if a should sort before or at the same
// position as b. Using <= on order keeps the sort stable.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.order <= b.order
}

// sortCommands sorts cmds in place by (Layer, emission order) with a
// bottom-up merge sort, using buf as scratch space. It returns buf, grown to
// its high-water mark, for reuse.
func sortCommands(cmds, buf []RenderCommand) []RenderCommand {
	n := len(cmds)
	if n <= 1 {
		return buf
	}
	if cap(buf) < n {
		buf = make([]RenderCommand, n)
	}
	buf = buf[:n]

	a, b := cmds, buf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			mid := min(i+width, n)
			hi := min(i+2*width, n)
			mergeRun(a, b, i, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(cmds, buf)
	}
	return buf
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
