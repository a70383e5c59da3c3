// Package koipond renders an ambient koi pond and a falling cherry blossom
// overlay for [Ebitengine].
//
// A frame is produced in two halves. A [Simulator] advances koi, petals and
// plants by the elapsed time; a [Renderer] then compiles the scene into an
// ordered list of [RenderCommand] values through an immediate-mode [Canvas].
// Compiling never touches the GPU, so frames can be built and inspected in
// tests. A [Submitter] executes the commands on an *ebiten.Image.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	koipond.Run(koipond.RunConfig{
//		Title: "Koi", Width: 960, Height: 640,
//		Scene: koipond.DefaultConfig(),
//	})
//
// For full control, drive a [Driver] yourself. It needs a [Surface] to paint
// into and a [Scheduler] for frames:
//
//	surface := koipond.NewBufferedSurface(960, 640)
//	var frames koipond.FrameQueue
//	d := koipond.NewDriver(koipond.DefaultConfig(), surface, &frames)
//	if err := d.Mount(); err != nil {
//		log.Fatal(err)
//	}
//	frames.Advance(1.0 / 60) // one Step and one Render
//	d.Unmount()
//
// # Scenes
//
// [DefaultConfig] draws the full pond: noise water, stones, plants, koi in
// depth order, floating petals and light. [BlossomConfig] draws falling
// petals over a transparent background, optionally above an image
// [Marquee]. Every constant lives in [Config] and can be loaded from YAML
// with [LoadConfig].
//
// # Events
//
// An [EventSink] receives petal recycles, fish retargets and edge
// avoidance, and driver state changes. The koipond/ecs package publishes
// them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package koipond
