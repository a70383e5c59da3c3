package koipond

import (
	"math"
	"testing"
)

func testFish(t *testing.T, n int, w, h float64) ([]Fish, *FishConfig) {
	t.Helper()
	cfg := DefaultConfig().Fish
	rng := testRNG()
	fish := make([]Fish, n)
	for i := range fish {
		fish[i] = newFish(&cfg, rng, i, w, h)
	}
	return fish, &cfg
}

func TestNewFishSpawnsInsideInset(t *testing.T) {
	const w, h = 800.0, 600.0
	fish, cfg := testFish(t, 50, w, h)
	for i, f := range fish {
		px, py := f.X*w, f.Y*h
		if px < cfg.SpawnInset || px > w-cfg.SpawnInset || py < cfg.SpawnInset || py > h-cfg.SpawnInset {
			t.Errorf("fish %d spawned at (%.1f, %.1f), inside the %v px inset", i, px, py, cfg.SpawnInset)
		}
		if f.NextTurn < cfg.TurnInterval.Min || f.NextTurn > cfg.TurnInterval.Max {
			t.Errorf("fish %d NextTurn = %v, outside %v", i, f.NextTurn, cfg.TurnInterval)
		}
		if n := len(f.Spots); n < int(cfg.Spots.Min) || n > int(cfg.Spots.Max) {
			t.Errorf("fish %d has %d spots", i, n)
		}
	}
}

func TestNewFishPaletteRoundRobin(t *testing.T) {
	fish, _ := testFish(t, 2*len(KoiPalettes), 800, 600)
	for i, f := range fish {
		if f.Palette != KoiPalettes[i%len(KoiPalettes)] {
			t.Fatalf("fish %d palette %q, want %q", i, f.Palette.Name, KoiPalettes[i%len(KoiPalettes)].Name)
		}
	}
}

func TestSpawnAxisSmallSurface(t *testing.T) {
	rng := testRNG()
	for range 100 {
		if v := spawnAxis(rng, 100, 150); v < 0 || v > 1 {
			t.Fatalf("spawnAxis on a short axis = %v", v)
		}
	}
	if v := spawnAxis(rng, 100, 0); v != 0.5 {
		t.Errorf("spawnAxis on a zero axis = %v, want 0.5", v)
	}
}

func TestFishTurnRateBounded(t *testing.T) {
	const w, h = 800.0, 600.0
	fish, cfg := testFish(t, 7, w, h)
	rng := testRNG()
	for _, dt := range []float64{ReferenceFrame, ReferenceFrame * 3, 0.25} {
		frames := dt / ReferenceFrame
		limit := maxTurn(cfg, frames) + 1e-9
		for step := range 2000 {
			for i := range fish {
				before := fish[i].Heading
				fish[i].step(cfg, rng, dt, frames, w, h)
				if d := math.Abs(wrapAngle(fish[i].Heading - before)); d > limit {
					t.Fatalf("dt=%v step %d fish %d turned %v, limit %v", dt, step, i, d, limit)
				}
			}
		}
	}
}

func TestFishLongStepNeverSnaps(t *testing.T) {
	const w, h = 800.0, 600.0
	cfg := DefaultConfig().Fish
	for _, dt := range []float64{1.5, 2, 5} {
		f := Fish{X: 0.5, Y: 0.5, Heading: 0, TargetHeading: 3, NextTurn: 100}
		f.step(&cfg, testRNG(), dt, dt/ReferenceFrame, w, h)
		if f.Heading <= 0 || f.Heading >= 3 {
			t.Errorf("dt=%v: heading %v, want strictly between 0 and the target 3", dt, f.Heading)
		}
	}
}

func TestFishTurnMatchesShortSteps(t *testing.T) {
	const w, h = 800.0, 600.0
	cfg := DefaultConfig().Fish
	long := Fish{X: 0.5, Y: 0.5, TargetHeading: 2, NextTurn: 100}
	short := long
	long.step(&cfg, testRNG(), 2, 120, w, h)
	for range 120 {
		short.step(&cfg, testRNG(), ReferenceFrame, 1, w, h)
	}
	if !approx(long.Heading, short.Heading, 1e-9) {
		t.Errorf("one 2s step heading %v, 120 short steps %v", long.Heading, short.Heading)
	}
}

func TestFishStaysInsideSurface(t *testing.T) {
	const w, h = 500.0, 300.0
	fish, cfg := testFish(t, 7, w, h)
	rng := testRNG()
	for step := range 20000 {
		for i := range fish {
			fish[i].step(cfg, rng, ReferenceFrame, 1, w, h)
			f := &fish[i]
			if f.X < 0 || f.X > 1 || f.Y < 0 || f.Y > 1 {
				t.Fatalf("step %d: fish %d at (%v, %v)", step, i, f.X, f.Y)
			}
		}
	}
}

func TestFishCornerSteersInward(t *testing.T) {
	const w, h = 800.0, 600.0
	cfg := DefaultConfig().Fish
	rng := testRNG()
	f := Fish{X: 5 / w, Y: 5 / h, Speed: 0.4, Heading: math.Pi * 1.25, TargetHeading: math.Pi * 1.25, NextTurn: 100}

	if got := f.step(&cfg, rng, ReferenceFrame, 1, w, h); got != steerEdge {
		t.Fatalf("steer = %v, want steerEdge", got)
	}
	if d := math.Abs(wrapAngle(f.TargetHeading - math.Pi/4)); d > cfg.EdgeJitter+1e-9 {
		t.Errorf("target heading %v, want π/4 ± %v", f.TargetHeading, cfg.EdgeJitter)
	}

	escaped := false
	for range 3000 {
		f.step(&cfg, rng, ReferenceFrame, 1, w, h)
		if f.X*w > cfg.EdgeMargin && f.Y*h > cfg.EdgeMargin {
			escaped = true
			break
		}
	}
	if !escaped {
		t.Errorf("fish still in the corner band at (%.1f, %.1f)", f.X*w, f.Y*h)
	}
}

func TestFishEdgeDirections(t *testing.T) {
	const w, h = 800.0, 600.0
	cfg := DefaultConfig().Fish
	cfg.EdgeJitter = 0
	tests := []struct {
		name   string
		x, y   float64
		target float64
	}{
		{"left", 10, 300, 0},
		{"right", 790, 300, math.Pi},
		{"top", 400, 10, math.Pi / 2},
		{"bottom", 400, 590, -math.Pi / 2},
		{"bottom-right", 790, 590, -3 * math.Pi / 4},
	}
	for _, tt := range tests {
		f := Fish{X: tt.x / w, Y: tt.y / h, Speed: 0.4, NextTurn: 100}
		f.step(&cfg, testRNG(), ReferenceFrame, 1, w, h)
		if !approx(f.TargetHeading, tt.target, 1e-9) {
			t.Errorf("%s: target heading %v, want %v", tt.name, f.TargetHeading, tt.target)
		}
	}
}

func TestFishEdgeOverridesTimer(t *testing.T) {
	const w, h = 800.0, 600.0
	cfg := DefaultConfig().Fish
	cfg.EdgeJitter = 0
	f := Fish{X: 10 / w, Y: 0.5, Speed: 0.4, TurnTimer: 9, NextTurn: 1}

	if got := f.step(&cfg, testRNG(), ReferenceFrame, 1, w, h); got != steerEdge {
		t.Fatalf("steer = %v, want steerEdge", got)
	}
	if f.TargetHeading != 0 {
		t.Errorf("target heading %v, want the edge heading 0", f.TargetHeading)
	}
	if f.TurnTimer != 0 {
		t.Errorf("turn timer %v, want reset to 0 by the periodic retarget", f.TurnTimer)
	}
}

func TestFishPeriodicRetarget(t *testing.T) {
	const w, h = 800.0, 600.0
	cfg := DefaultConfig().Fish
	f := Fish{X: 0.5, Y: 0.5, Speed: 0.4, Heading: 1, NextTurn: 0.5}

	steers := 0
	for range 60 {
		if f.step(&cfg, testRNG(), ReferenceFrame, 1, w, h) == steerRetarget {
			steers++
			if d := math.Abs(f.TargetHeading - f.Heading); d > cfg.TurnJitter+0.1 {
				t.Errorf("retarget %v from heading %v exceeds jitter", f.TargetHeading, f.Heading)
			}
			if f.NextTurn < cfg.TurnInterval.Min || f.NextTurn > cfg.TurnInterval.Max {
				t.Errorf("NextTurn = %v, outside %v", f.NextTurn, cfg.TurnInterval)
			}
		}
	}
	if steers != 1 {
		t.Errorf("retargets in one second = %d, want 1", steers)
	}
}

func TestFishZeroAreaKeepsPosition(t *testing.T) {
	cfg := DefaultConfig().Fish
	f := Fish{X: 0.3, Y: 0.7, Speed: 0.5, Heading: 1, NextTurn: 100}
	f.step(&cfg, testRNG(), ReferenceFrame, 1, 0, 0)
	if f.X != 0.3 || f.Y != 0.7 {
		t.Errorf("zero-area step moved the fish to (%v, %v)", f.X, f.Y)
	}
}

func TestFishTailPhaseWraps(t *testing.T) {
	cfg := DefaultConfig().Fish
	f := Fish{X: 0.5, Y: 0.5, TailPhase: 6.25, NextTurn: 100}
	f.step(&cfg, testRNG(), 0.1, 6, 800, 600)
	if f.TailPhase < 0 || f.TailPhase >= 2*math.Pi {
		t.Errorf("tail phase %v not wrapped", f.TailPhase)
	}
	tail, tail2, body := f.TailSwing()
	if math.Abs(tail) > 0.32 || math.Abs(tail2) > 0.2 || math.Abs(body) > 0.04 {
		t.Errorf("TailSwing() = (%v, %v, %v), over its amplitude", tail, tail2, body)
	}
	if math.Abs(f.FinSwing()) > 0.3 {
		t.Errorf("FinSwing() = %v, over its amplitude", f.FinSwing())
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi / 2, math.Pi / 2},
		{7 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); !approx(got, tt.want, 1e-12) {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
