package koipond

import "testing"

func TestBufferedSurfaceSubmitCopies(t *testing.T) {
	s := NewBufferedSurface(10, 10)
	cmds := []RenderCommand{{Type: CommandFill, Alpha: 1}}
	s.Submit(cmds)
	cmds[0].Alpha = 0.1
	if s.Frame()[0].Alpha != 1 || s.Submits() != 1 {
		t.Errorf("Submit kept a reference: %+v", s.Frame())
	}
}

func TestBufferedSurfaceResizeListeners(t *testing.T) {
	s := NewBufferedSurface(10, 10)
	var calls [][2]int
	detach := s.OnResize(func(w, h int) { calls = append(calls, [2]int{w, h}) })
	other := 0
	s.OnResize(func(int, int) { other++ })

	s.SetSize(10, 10)
	s.SetSize(20, 30)
	if len(calls) != 1 || calls[0] != [2]int{20, 30} {
		t.Errorf("calls = %v", calls)
	}

	detach()
	detach()
	s.SetSize(5, 5)
	if len(calls) != 1 || other != 2 || s.Listeners() != 1 {
		t.Errorf("after detach: calls=%v other=%d listeners=%d", calls, other, s.Listeners())
	}
}

func TestBufferedSurfaceClose(t *testing.T) {
	s := NewBufferedSurface(8, 6)
	s.Submit([]RenderCommand{{}})
	s.Close()
	if w, h, ok := s.Size(); ok || w != 8 || h != 6 {
		t.Errorf("Size() after Close = %d, %d, %v", w, h, ok)
	}
	if s.Frame() != nil {
		t.Error("Close kept the buffered frame")
	}
}
