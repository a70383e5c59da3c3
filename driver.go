package koipond

import (
	"errors"
	"fmt"
)

// DriverState is the lifecycle state of a Driver.
type DriverState uint8

const (
	DriverIdle    DriverState = iota // created, not yet mounted
	DriverRunning                    // mounted; one frame scheduled at a time
	DriverStopped                    // unmounted or self-terminated; final
)

// String returns the state's name.
func (s DriverState) String() string {
	switch s {
	case DriverIdle:
		return "idle"
	case DriverRunning:
		return "running"
	case DriverStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyMounted is returned by Mount on a running driver.
	ErrAlreadyMounted = errors.New("koipond: driver already mounted")
	// ErrDriverStopped is returned by Mount on a stopped driver. A remount
	// needs a fresh Driver.
	ErrDriverStopped = errors.New("koipond: driver stopped")
)

// Driver runs the simulate-then-render loop of one mounted animation. Each
// scheduled frame performs exactly one Simulator step followed by one Render,
// then schedules the next frame.
type Driver struct {
	cfg     Config
	surface Surface
	sched   Scheduler

	state  DriverState
	cancel func()
	detach func()

	noise    *NoiseGenerator
	sim      *Simulator
	renderer *Renderer
	fade     *Fade
	marquee  *Marquee
	sink     EventSink
}

// NewDriver returns an idle driver for surface, scheduling frames on sched.
func NewDriver(cfg Config, surface Surface, sched Scheduler) *Driver {
	return &Driver{cfg: cfg, surface: surface, sched: sched}
}

// SetEventSink routes simulator and driver events to sink. It takes effect
// immediately, including for a running driver.
func (d *Driver) SetEventSink(sink EventSink) {
	d.sink = sink
	if d.sim != nil {
		d.sim.SetEventSink(sink)
	}
}

// SetMarquee attaches an image strip to be drawn on mount.
func (d *Driver) SetMarquee(m *Marquee) {
	d.marquee = m
	if d.renderer != nil {
		d.renderer.SetMarquee(m)
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() DriverState {
	return d.state
}

// Simulator returns the mounted simulator, or nil before Mount.
func (d *Driver) Simulator() *Simulator {
	return d.sim
}

// Renderer returns the mounted renderer, or nil before Mount.
func (d *Driver) Renderer() *Renderer {
	return d.renderer
}

// Mount sizes the animation from the surface, builds the noise generator and
// entity collections, and schedules the first frame.
func (d *Driver) Mount() error {
	switch d.state {
	case DriverRunning:
		return ErrAlreadyMounted
	case DriverStopped:
		return ErrDriverStopped
	}
	w, h, ok := d.surface.Size()
	if !ok {
		return fmt.Errorf("mount: %w", ErrSurfaceUnavailable)
	}

	d.noise = NewNoise(d.cfg.Seed)
	d.sim = NewSimulator(d.cfg, w, h)
	d.sim.SetEventSink(d.sink)
	d.renderer = NewRenderer(d.noise, d.cfg)
	d.renderer.SetMarquee(d.marquee)
	d.fade = NewFade(d.cfg.Fade)
	d.renderer.SetOpacity(d.fade.Value())

	if rn, ok := d.surface.(ResizeNotifier); ok {
		d.detach = rn.OnResize(d.resize)
	}
	d.setState(DriverRunning)
	d.cancel = d.sched.RequestFrame(d.frame)
	return nil
}

// Unmount cancels the pending frame, detaches the resize listener and stops
// the driver for good. It is safe to call more than once.
func (d *Driver) Unmount() {
	if d.state == DriverStopped {
		return
	}
	d.stop()
}

func (d *Driver) stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.detach != nil {
		d.detach()
		d.detach = nil
	}
	d.setState(DriverStopped)
}

func (d *Driver) frame(dt float64) {
	d.cancel = nil
	if d.state != DriverRunning {
		return
	}
	// Surfaces without a resize listener are tracked here.
	if w, h, ok := d.surface.Size(); ok {
		d.sim.Resize(w, h)
	}
	d.sim.Step(dt)
	d.renderer.SetOpacity(d.fade.Update(dt))
	if err := d.renderer.Render(d.surface, d.sim); err != nil {
		warnf("frame %d skipped, stopping: %v", d.sim.Frame(), err)
		d.stop()
		return
	}
	d.cancel = d.sched.RequestFrame(d.frame)
}

// resize is the surface's resize listener.
func (d *Driver) resize(w, h int) {
	if d.state == DriverRunning {
		d.sim.Resize(w, h)
	}
}

func (d *Driver) setState(s DriverState) {
	if d.state == s {
		return
	}
	d.state = s
	if d.sink != nil {
		d.sink.EmitEvent(Event{Type: EventDriverState, State: s, Index: -1})
	}
}
