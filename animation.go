package koipond

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates the entrance opacity of the animated layer from 0 to 1 after
// a delay. Callers advance it themselves with Update.
type Fade struct {
	delay   float64
	elapsed float64
	tween   *gween.Tween
	value   float64
	done    bool
}

// NewFade returns a fade for cfg. A non-positive duration yields a fade that
// is already complete.
func NewFade(cfg FadeConfig) *Fade {
	return NewFadeWith(cfg, ease.OutCubic)
}

// NewFadeWith is NewFade with a custom easing function.
func NewFadeWith(cfg FadeConfig, fn ease.TweenFunc) *Fade {
	f := &Fade{delay: cfg.Delay}
	if cfg.Duration <= 0 {
		f.value, f.done = 1, true
		return f
	}
	f.tween = gween.New(0, 1, float32(cfg.Duration), fn)
	return f
}

// Update advances the fade by dt seconds and returns the current opacity.
func (f *Fade) Update(dt float64) float64 {
	if f.done {
		return f.value
	}
	if f.elapsed < f.delay {
		f.elapsed += dt
		if f.elapsed < f.delay {
			return f.value
		}
		// Carry the part of this step that fell past the delay.
		dt = f.elapsed - f.delay
	}
	val, finished := f.tween.Update(float32(dt))
	f.value = clamp01(float64(val))
	if finished {
		f.value, f.done = 1, true
	}
	return f.value
}

// Value returns the current opacity.
func (f *Fade) Value() float64 {
	return f.value
}

// Done reports whether the fade has reached full opacity.
func (f *Fade) Done() bool {
	return f.done
}
