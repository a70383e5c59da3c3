package koipond

import (
	"math/rand/v2"
)

// Simulator owns the entity collections of one mounted animation and advances
// them once per frame. It is not safe for concurrent use.
type Simulator struct {
	cfg Config
	rng *rand.Rand

	w, h  float64
	time  float64
	frame uint64

	Petals []Petal
	Fish   []Fish
	Plants []Plant
	Stones []Stone

	sink EventSink
}

// NewSimulator seeds every entity collection for a w by h surface. The petal
// population is chosen from the width here and never changes afterwards.
func NewSimulator(cfg Config, w, h int) *Simulator {
	seed := cfg.EntitySeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Simulator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.Resize(w, h)

	s.Stones = make([]Stone, max(cfg.Stones.Count, 0))
	for i := range s.Stones {
		s.Stones[i] = newStone(&s.cfg.Stones, s.rng)
	}
	s.Plants = make([]Plant, max(cfg.Plants.Count, 0))
	for i := range s.Plants {
		s.Plants[i] = newPlant(&s.cfg.Plants, s.rng)
	}
	s.Fish = make([]Fish, max(cfg.Fish.Count, 0))
	for i := range s.Fish {
		s.Fish[i] = newFish(&s.cfg.Fish, s.rng, i, s.w, s.h)
	}
	s.Petals = make([]Petal, max(cfg.petalCount(w), 0))
	for i := range s.Petals {
		s.Petals[i] = newPetal(&s.cfg.Petals, s.rng)
	}
	return s
}

// SetEventSink routes entity events to sink. A nil sink disables events.
func (s *Simulator) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() *Config {
	return &s.cfg
}

// Size returns the current surface size in pixels.
func (s *Simulator) Size() (w, h float64) {
	return s.w, s.h
}

// Time returns the elapsed simulated time in seconds.
func (s *Simulator) Time() float64 {
	return s.time
}

// Frame returns the number of completed steps.
func (s *Simulator) Frame() uint64 {
	return s.frame
}

// Resize updates the surface size. Zero or negative dimensions clamp to zero;
// a zero-area simulator keeps its entities but moves nothing.
func (s *Simulator) Resize(w, h int) {
	s.w = float64(max(w, 0))
	s.h = float64(max(h, 0))
}

// Step advances every entity by dt seconds. Per-frame constants are scaled by
// dt relative to ReferenceFrame. Each entity reads only its own state, and the
// shared PRNG is consumed in collection order, so results depend only on the
// seed and the sequence of dt and size values.
func (s *Simulator) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	frames := dt / ReferenceFrame
	s.time += dt
	s.frame++

	pc := &s.cfg.Petals
	for i := range s.Petals {
		p := &s.Petals[i]
		if p.step(frames, s.w, s.h, pc.RecycleMargin) {
			p.recycle(pc, s.rng, s.h)
			s.emit(Event{Type: EventPetalRecycled, Entity: EntityPetal, Index: i, X: p.X, Y: p.Y})
		}
	}

	fc := &s.cfg.Fish
	for i := range s.Fish {
		f := &s.Fish[i]
		switch f.step(fc, s.rng, dt, frames, s.w, s.h) {
		case steerRetarget:
			s.emit(Event{Type: EventFishRetarget, Entity: EntityFish, Index: i, X: f.X, Y: f.Y, Heading: f.TargetHeading})
		case steerEdge:
			s.emit(Event{Type: EventFishEdgeAvoid, Entity: EntityFish, Index: i, X: f.X, Y: f.Y, Heading: f.TargetHeading})
		}
	}
}

func (s *Simulator) emit(e Event) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
