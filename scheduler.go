package koipond

// FrameFunc is a frame callback. dt is the time since the previous frame in
// seconds.
type FrameFunc func(dt float64)

// Scheduler runs a callback on the next frame. The returned cancel func
// prevents the callback from running if it has not run yet; calling it more
// than once is harmless.
type Scheduler interface {
	RequestFrame(fn FrameFunc) (cancel func())
}

type frameRequest struct {
	fn        FrameFunc
	cancelled bool
}

// FrameQueue is a cooperative Scheduler pumped by its owner, one Advance per
// display frame. Callbacks requested while a frame runs wait for the next
// Advance, so a callback that reschedules itself runs once per frame.
type FrameQueue struct {
	pending []*frameRequest
	running []*frameRequest
}

// RequestFrame implements Scheduler.
func (q *FrameQueue) RequestFrame(fn FrameFunc) (cancel func()) {
	req := &frameRequest{fn: fn}
	q.pending = append(q.pending, req)
	return func() { req.cancelled = true }
}

// Advance runs every callback requested before this call that has not been
// cancelled, and returns how many ran.
func (q *FrameQueue) Advance(dt float64) int {
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i, req := range q.running {
		q.running[i] = nil
		if req.cancelled {
			continue
		}
		req.cancelled = true
		req.fn(dt)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Pending returns the number of queued callbacks that are not cancelled.
func (q *FrameQueue) Pending() int {
	n := 0
	for _, req := range q.pending {
		if !req.cancelled {
			n++
		}
	}
	return n
}
