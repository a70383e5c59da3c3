package koipond

// Surface is the drawable area a Renderer paints into.
type Surface interface {
	// Size returns the surface size in pixels. ok is false when the surface
	// or its drawing context can no longer be used.
	Size() (w, h int, ok bool)
	// Submit hands over one compiled frame. The slice is reused by the next
	// frame; implementations that keep commands must copy them.
	Submit(cmds []RenderCommand)
}

// ResizeNotifier is implemented by surfaces that report size changes. The
// driver registers a listener on mount and calls detach on unmount.
type ResizeNotifier interface {
	OnResize(fn func(w, h int)) (detach func())
}

// BufferedSurface keeps the most recently submitted frame for a host to draw
// later. Its size is set by the host, usually from ebiten's Layout.
type BufferedSurface struct {
	w, h   int
	closed bool

	frame   []RenderCommand
	submits int

	listeners []*resizeListener
}

type resizeListener struct {
	fn func(w, h int)
}

// NewBufferedSurface returns an open surface of the given size.
func NewBufferedSurface(w, h int) *BufferedSurface {
	return &BufferedSurface{w: w, h: h}
}

// Size implements Surface.
func (s *BufferedSurface) Size() (w, h int, ok bool) {
	return s.w, s.h, !s.closed
}

// Submit implements Surface. The frame is copied.
func (s *BufferedSurface) Submit(cmds []RenderCommand) {
	s.frame = append(s.frame[:0], cmds...)
	s.submits++
}

// Frame returns the last submitted frame.
func (s *BufferedSurface) Frame() []RenderCommand {
	return s.frame
}

// Submits returns how many frames were submitted.
func (s *BufferedSurface) Submits() int {
	return s.submits
}

// SetSize changes the surface size and notifies resize listeners when it
// differs from the current one.
func (s *BufferedSurface) SetSize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	for _, l := range s.listeners {
		if l.fn != nil {
			l.fn(w, h)
		}
	}
}

// Close marks the surface unavailable and drops the buffered frame.
func (s *BufferedSurface) Close() {
	s.closed = true
	s.frame = nil
}

// Listeners returns the number of attached resize listeners.
func (s *BufferedSurface) Listeners() int {
	return len(s.listeners)
}

// OnResize implements ResizeNotifier.
func (s *BufferedSurface) OnResize(fn func(w, h int)) (detach func()) {
	l := &resizeListener{fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		for i, other := range s.listeners {
			if other == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
