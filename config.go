package koipond

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneKind selects which layer stack the renderer composes.
type SceneKind string

const (
	// ScenePond is the full koi pond: water, stones, plants, koi, petals, light.
	ScenePond SceneKind = "pond"
	// SceneBlossoms is a transparent overlay of falling cherry petals,
	// optionally over an image marquee.
	SceneBlossoms SceneKind = "blossoms"
)

// ReferenceFrame is the frame duration all per-frame constants are authored
// against. Step scales them by dt/ReferenceFrame.
const ReferenceFrame = 1.0 / 60.0

// Config holds every tunable constant of an animation. The zero value is not
// usable; start from DefaultConfig or BlossomConfig.
type Config struct {
	// Scene selects the layer stack.
	Scene SceneKind `yaml:"scene"`
	// Seed builds the noise permutation table.
	Seed int64 `yaml:"seed"`
	// EntitySeed seeds the entity PRNG. Zero picks a fresh seed per mount.
	EntitySeed uint64 `yaml:"entitySeed"`
	// Debug logs per-frame timings to stderr.
	Debug bool `yaml:"debug"`

	Fish    FishConfig    `yaml:"fish"`
	Petals  PetalConfig   `yaml:"petals"`
	Plants  PlantConfig   `yaml:"plants"`
	Stones  StoneConfig   `yaml:"stones"`
	Effects EffectsConfig `yaml:"effects"`
	Fade    FadeConfig    `yaml:"fade"`
	Marquee MarqueeConfig `yaml:"marquee"`

	// Caption is drawn near the bottom of the surface. Empty disables it.
	Caption string `yaml:"caption"`
}

// FishConfig controls koi creation and steering.
type FishConfig struct {
	Count int   `yaml:"count"`
	Size  Range `yaml:"size"`
	// Speed is in pixels per reference frame.
	Speed Range `yaml:"speed"`
	// Depth is the depth-scale factor range; larger is closer to the surface.
	Depth Range `yaml:"depth"`
	// TurnInterval is the range of seconds between periodic retargets.
	TurnInterval Range `yaml:"turnInterval"`
	// TurnJitter is the half-width in radians of a periodic retarget.
	TurnJitter float64 `yaml:"turnJitter"`
	// TurnFactor is the fraction of the heading error closed per reference
	// frame. Longer steps compound it, so the heading never lands exactly
	// on the target.
	TurnFactor float64 `yaml:"turnFactor"`
	// EdgeMargin is the distance in pixels from an edge that triggers
	// edge avoidance.
	EdgeMargin float64 `yaml:"edgeMargin"`
	// EdgeJitter is the half-width in radians of the randomization applied to
	// an edge-avoidance heading.
	EdgeJitter float64 `yaml:"edgeJitter"`
	// SpawnInset keeps freshly seeded fish away from the edges, in pixels.
	SpawnInset float64 `yaml:"spawnInset"`
	// Spots is the range of body spots per fish (inclusive).
	Spots Range `yaml:"spots"`
}

// PetalConfig controls petal creation and motion.
type PetalConfig struct {
	Count int `yaml:"count"`
	// CompactCount replaces Count when the surface is narrower than
	// CompactWidth. Zero disables the switch.
	CompactCount int `yaml:"compactCount"`
	CompactWidth int `yaml:"compactWidth"`
	// Style is "falling" (blossom overlay) or "floating" (pond surface).
	Style PetalStyle `yaml:"style"`

	Size Range `yaml:"size"`
	// FallSpeed and Drift are in pixels per reference frame.
	FallSpeed Range `yaml:"fallSpeed"`
	Drift     Range `yaml:"drift"`
	// RotationSpeed is in radians per reference frame.
	RotationSpeed Range `yaml:"rotationSpeed"`
	Opacity       Range `yaml:"opacity"`
	// WobbleAmplitude is the lateral sway in pixels; WobbleSpeed in radians
	// per second.
	WobbleAmplitude Range `yaml:"wobbleAmplitude"`
	WobbleSpeed     Range `yaml:"wobbleSpeed"`
	// RecycleMargin is how far past an edge a petal may travel before it is
	// recycled, in pixels.
	RecycleMargin float64 `yaml:"recycleMargin"`
	// SpawnBand is the height in pixels above the top edge that recycled
	// petals are spread over.
	SpawnBand float64 `yaml:"spawnBand"`
	// Color and Accent fill the petal and its inner layer.
	Color  string `yaml:"color"`
	Accent string `yaml:"accent"`
}

// PlantConfig controls plant creation.
type PlantConfig struct {
	Count  int   `yaml:"count"`
	Blades Range `yaml:"blades"`
	Length Range `yaml:"length"`
	Angle  Range `yaml:"angle"`
	Width  Range `yaml:"width"`
	Hue    Range `yaml:"hue"`
	Sat    Range `yaml:"sat"`
	Light  Range `yaml:"light"`
	// SwaySpeed is in radians per second; SwayAmount in radians.
	SwaySpeed  float64 `yaml:"swaySpeed"`
	SwayAmount float64 `yaml:"swayAmount"`
}

// StoneConfig controls stone creation.
type StoneConfig struct {
	Count      int   `yaml:"count"`
	RX         Range `yaml:"rx"`
	RY         Range `yaml:"ry"`
	Hue        Range `yaml:"hue"`
	Sat        Range `yaml:"sat"`
	Light      Range `yaml:"light"`
	LightDelta Range `yaml:"lightDelta"`
}

// EffectsConfig controls the generated background and overlay layers.
type EffectsConfig struct {
	// TextureSize is the edge of the square water texture in pixels.
	TextureSize  int     `yaml:"textureSize"`
	TextureScale float64 `yaml:"textureScale"`
	Octaves      int     `yaml:"octaves"`
	Caustics     int     `yaml:"caustics"`
	DepthBlobs   int     `yaml:"depthBlobs"`
	Ripples      int     `yaml:"ripples"`
	LightRays    int     `yaml:"lightRays"`
}

// FadeConfig controls the entrance fade of the whole layer.
type FadeConfig struct {
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
}

// MarqueeConfig controls the image strip behind the blossom overlay.
type MarqueeConfig struct {
	// Images are file paths loaded at mount. Missing files are skipped.
	Images []MarqueeImage `yaml:"images"`
	// Speed is the scroll speed in pixels per second.
	Speed float64 `yaml:"speed"`
}

// MarqueeImage names one marquee tile.
type MarqueeImage struct {
	Path      string `yaml:"path"`
	Landscape bool   `yaml:"landscape"`
}

// DefaultConfig returns the koi pond configuration.
func DefaultConfig() Config {
	return Config{
		Scene: ScenePond,
		Seed:  42,
		Fish: FishConfig{
			Count:        7,
			Size:         Range{35, 60},
			Speed:        Range{0.25, 0.55},
			Depth:        Range{0.5, 1},
			TurnInterval: Range{3, 10},
			TurnJitter:   0.6,
			TurnFactor:   0.012,
			EdgeMargin:   90,
			EdgeJitter:   0.25,
			SpawnInset:   100,
			Spots:        Range{4, 8},
		},
		Petals: PetalConfig{
			Count:           16,
			Style:           PetalFloating,
			Size:            Range{4, 11},
			FallSpeed:       Range{0.01, 0.04},
			Drift:           Range{-0.04, 0.04},
			RotationSpeed:   Range{-0.002, 0.002},
			Opacity:         Range{0.25, 0.6},
			WobbleAmplitude: Range{18, 36},
			WobbleSpeed:     Range{0.4, 0.5},
			RecycleMargin:   10,
			SpawnBand:       0,
			Color:           "#F0BCC8",
			Accent:          "#FFFFFF",
		},
		Plants: PlantConfig{
			Count:      14,
			Blades:     Range{3, 6},
			Length:     Range{20, 55},
			Angle:      Range{-0.4, 0.4},
			Width:      Range{2, 5},
			Hue:        Range{120, 160},
			Sat:        Range{20, 45},
			Light:      Range{22, 38},
			SwaySpeed:  0.6,
			SwayAmount: 0.15,
		},
		Stones: StoneConfig{
			Count:      18,
			RX:         Range{6, 28},
			RY:         Range{4, 18},
			Hue:        Range{130, 180},
			Sat:        Range{6, 20},
			Light:      Range{24, 40},
			LightDelta: Range{8, 18},
		},
		Effects: EffectsConfig{
			TextureSize:  256,
			TextureScale: 0.02,
			Octaves:      4,
			Caustics:     18,
			DepthBlobs:   5,
			Ripples:      10,
			LightRays:    5,
		},
		Fade:    FadeConfig{Duration: 1.2, Delay: 0.5},
		Caption: "Stärke und Ausdauer",
	}
}

// BlossomConfig returns the falling cherry blossom overlay configuration.
func BlossomConfig() Config {
	cfg := DefaultConfig()
	cfg.Scene = SceneBlossoms
	cfg.Fish.Count = 0
	cfg.Plants.Count = 0
	cfg.Stones.Count = 0
	cfg.Petals = PetalConfig{
		Count:           40,
		CompactCount:    20,
		CompactWidth:    768,
		Style:           PetalFalling,
		Size:            Range{8, 20},
		FallSpeed:       Range{1.2, 3.2},
		Drift:           Range{-0.25, 0.25},
		RotationSpeed:   Range{-0.0175, 0.0175},
		Opacity:         Range{0.4, 0.9},
		WobbleAmplitude: Range{20, 50},
		WobbleSpeed:     Range{0.5, 2},
		RecycleMargin:   40,
		SpawnBand:       80,
		Color:           "#FFB7C5",
		Accent:          "#E89AAE",
	}
	cfg.Fade = FadeConfig{Duration: 0.8, Delay: 1.2}
	cfg.Marquee.Speed = 40
	cfg.Caption = ""
	return cfg
}

// LoadConfig reads a YAML file over base and validates the result.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data, base)
}

// ParseConfig decodes YAML over base and validates the result.
func ParseConfig(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value in the configuration.
func (c *Config) Validate() error {
	var errs []error

	switch c.Scene {
	case ScenePond, SceneBlossoms:
	default:
		errs = append(errs, fmt.Errorf("unknown scene %q", c.Scene))
	}
	switch c.Petals.Style {
	case PetalFalling, PetalFloating:
	default:
		errs = append(errs, fmt.Errorf("unknown petal style %q", c.Petals.Style))
	}

	counts := []struct {
		name string
		v    int
	}{
		{"fish.count", c.Fish.Count},
		{"petals.count", c.Petals.Count},
		{"petals.compactCount", c.Petals.CompactCount},
		{"plants.count", c.Plants.Count},
		{"stones.count", c.Stones.Count},
		{"effects.caustics", c.Effects.Caustics},
		{"effects.depthBlobs", c.Effects.DepthBlobs},
		{"effects.ripples", c.Effects.Ripples},
		{"effects.lightRays", c.Effects.LightRays},
		{"effects.octaves", c.Effects.Octaves},
	}
	for _, n := range counts {
		if n.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", n.name, n.v))
		}
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"fish.size", c.Fish.Size},
		{"fish.speed", c.Fish.Speed},
		{"fish.depth", c.Fish.Depth},
		{"fish.turnInterval", c.Fish.TurnInterval},
		{"fish.spots", c.Fish.Spots},
		{"petals.size", c.Petals.Size},
		{"petals.fallSpeed", c.Petals.FallSpeed},
		{"petals.drift", c.Petals.Drift},
		{"petals.rotationSpeed", c.Petals.RotationSpeed},
		{"petals.opacity", c.Petals.Opacity},
		{"petals.wobbleAmplitude", c.Petals.WobbleAmplitude},
		{"petals.wobbleSpeed", c.Petals.WobbleSpeed},
		{"plants.blades", c.Plants.Blades},
		{"plants.length", c.Plants.Length},
		{"plants.width", c.Plants.Width},
		{"stones.rx", c.Stones.RX},
		{"stones.ry", c.Stones.RY},
	}
	for _, r := range ranges {
		if !r.r.Valid() {
			errs = append(errs, fmt.Errorf("%s range invalid: min(%.3f) > max(%.3f)", r.name, r.r.Min, r.r.Max))
		}
	}

	if c.Fish.TurnFactor <= 0 || c.Fish.TurnFactor >= 1 {
		errs = append(errs, fmt.Errorf("fish.turnFactor must be in (0, 1), got %.4f", c.Fish.TurnFactor))
	}
	if c.Fish.EdgeMargin < 0 {
		errs = append(errs, fmt.Errorf("fish.edgeMargin must not be negative, got %.1f", c.Fish.EdgeMargin))
	}
	if c.Fish.TurnInterval.Min <= 0 && c.Fish.Count > 0 {
		errs = append(errs, fmt.Errorf("fish.turnInterval.min must be positive, got %.2f", c.Fish.TurnInterval.Min))
	}
	if c.Effects.TextureSize <= 0 && c.Scene == ScenePond {
		errs = append(errs, fmt.Errorf("effects.textureSize must be positive, got %d", c.Effects.TextureSize))
	}
	if c.Fade.Duration < 0 || c.Fade.Delay < 0 {
		errs = append(errs, fmt.Errorf("fade duration and delay must not be negative"))
	}

	return errors.Join(errs...)
}

// petalCount returns the petal population for a surface of width w. The count
// is chosen once per mount; resizing never grows or shrinks the collection.
func (c *Config) petalCount(w int) int {
	if c.Petals.CompactCount > 0 && c.Petals.CompactWidth > 0 && w < c.Petals.CompactWidth {
		return c.Petals.CompactCount
	}
	return c.Petals.Count
}
