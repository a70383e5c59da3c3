package koipond

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testGame(t *testing.T, script string) *Game {
	t.Helper()
	cfg := RunConfig{Width: 320, Height: 240, Scene: DefaultConfig(), ScreenshotDir: t.TempDir()}
	cfg.Scene.EntitySeed = 4
	if script != "" {
		cfg.TestScript = []byte(script)
	}
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.submitter.Dispose)
	return g
}

func TestGameMountsOnFirstUpdate(t *testing.T) {
	g := testGame(t, "")
	if g.Driver().State() != DriverIdle {
		t.Fatal("driver mounted before Update")
	}
	if w, h := g.Layout(400, 300); w != 400 || h != 300 {
		t.Errorf("Layout = %d x %d", w, h)
	}
	for range 3 {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if g.Driver().State() != DriverRunning {
		t.Fatalf("state = %v", g.Driver().State())
	}
	if w, h := g.Driver().Simulator().Size(); w != 400 || h != 300 {
		t.Errorf("simulator sized %v x %v, want the Layout size", w, h)
	}
	if g.surface.Submits() != 3 {
		t.Errorf("submits = %d", g.surface.Submits())
	}
	g.Draw(ebiten.NewImage(400, 300))

	g.Layout(200, 100)
	if w, _ := g.Driver().Simulator().Size(); w != 200 {
		t.Error("Layout did not resize the simulation")
	}
}

func TestGameUnmountStopsDrawing(t *testing.T) {
	g := testGame(t, "")
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	g.Unmount()
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.Driver().State() != DriverStopped || g.surface.Frame() != nil {
		t.Errorf("after Unmount: state=%v frame=%d", g.Driver().State(), len(g.surface.Frame()))
	}
}

func TestGameScriptTerminates(t *testing.T) {
	g := testGame(t, "steps:\n  - action: wait\n    frames: 2\n  - action: unmount\n")
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		err = g.Update()
	}
	if !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update = %v, want ebiten.Termination", err)
	}
	if g.Driver().State() != DriverStopped {
		t.Errorf("script unmount left state %v", g.Driver().State())
	}
}

func TestNewGameBadScript(t *testing.T) {
	_, err := NewGame(RunConfig{Scene: DefaultConfig(), TestScript: []byte("steps: []")})
	if err == nil {
		t.Fatal("expected a script error")
	}
}

func TestGameMountErrorOnClosedSurface(t *testing.T) {
	g := testGame(t, "")
	g.surface.Close()
	if err := g.Update(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("Update = %v, want ErrSurfaceUnavailable", err)
	}
}
