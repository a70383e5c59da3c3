package koipond

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ClearColor fills the screen before each frame. Blossom overlays are
	// usually run over a light background colour.
	ClearColor Color
	// ScreenshotDir receives screenshot PNGs. Defaults to "screenshots".
	ScreenshotDir string
	// TestScript, when set, is a step script run from Update. The game exits
	// once the script is done.
	TestScript []byte
	// Scene is the animation configuration.
	Scene Config
	// Events receives simulator and driver events.
	Events EventSink
}

// Game hosts a Driver in an Ebitengine game loop. It is the driver's Surface
// and Scheduler: Layout sizes the surface, Update pumps the frame queue and
// Draw submits the most recent frame.
type Game struct {
	cfg       RunConfig
	surface   *BufferedSurface
	queue     FrameQueue
	driver    *Driver
	submitter *Submitter

	fps    *fpsWidget
	shots  screenshots
	runner *TestRunner
}

// NewGame returns a game for cfg. The driver mounts on the first Update,
// once Layout has reported the window size.
func NewGame(cfg RunConfig) (*Game, error) {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{
		cfg:       cfg,
		surface:   NewBufferedSurface(cfg.Width, cfg.Height),
		submitter: NewSubmitter(),
		shots:     screenshots{dir: cfg.ScreenshotDir},
	}
	g.driver = NewDriver(cfg.Scene, g.surface, &g.queue)
	g.driver.SetEventSink(cfg.Events)
	if len(cfg.Scene.Marquee.Images) > 0 {
		g.driver.SetMarquee(LoadMarquee(cfg.Scene.Marquee))
	}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	if cfg.TestScript != nil {
		r, err := LoadTestScript(cfg.TestScript)
		if err != nil {
			return nil, err
		}
		g.runner = r
	}
	return g, nil
}

// Driver returns the hosted driver.
func (g *Game) Driver() *Driver {
	return g.driver
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.driver.State() == DriverIdle {
		if err := g.driver.Mount(); err != nil {
			return fmt.Errorf("koipond: %w", err)
		}
	}
	dt := 1 / float64(ebiten.TPS())
	if g.runner != nil {
		g.runner.step(g)
		if g.runner.Done() && len(g.shots.queue) == 0 {
			return ebiten.Termination
		}
	}
	g.queue.Advance(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.submitter.Submit(screen, g.surface.Frame())
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.shots.flush(screen)
}

// Layout implements ebiten.Game. The outside size becomes the surface size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surface.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Screenshot queues a labeled capture of the next drawn frame.
func (g *Game) Screenshot(label string) {
	g.shots.request(label)
}

// Resize changes the window size. The surface follows on the next Layout.
func (g *Game) Resize(w, h int) {
	ebiten.SetWindowSize(w, h)
}

// Unmount stops the animation and closes the surface, so nothing more is
// drawn.
func (g *Game) Unmount() {
	g.driver.Unmount()
	g.surface.Close()
}

// Run opens a window and runs the animation until the window is closed or a
// test script finishes.
func Run(cfg RunConfig) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	defer func() {
		g.Unmount()
		g.submitter.Dispose()
	}()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
