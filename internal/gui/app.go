// Package gui is the raylib front end: a resizable window showing the
// solar system with mouse picking and orbit controls.
package gui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

const (
	fontPath      = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	textureSlots  = 32 // every body, the ring and the skybox stay resident
	dragSpeed     = 0.005
	wheelStep     = 0.2
	minTimeScale  = 1.0 / 64
	maxTimeScale  = 1024.0
	defaultWidth  = 1280
	defaultHeight = 720
)

// Options configure the window.
type Options struct {
	Width, Height int
	FPS           int
	Theme         string
	AssetRoot     string // directory textures are resolved against
}

type App struct {
	driver     *sim.Driver
	world      *sim.World
	dispatcher *pick.Dispatcher
	renderer   *Renderer
	log        *log.Logger

	lastMouse rl.Vector2
	quit      bool
}

// Run opens the window and drives d until the window closes. It blocks and
// must be called from the main goroutine.
func Run(d *sim.Driver, opts Options, logger *log.Logger) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "orrery")
	defer rl.CloseWindow()
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}
	rl.SetExitKey(0)

	textures, err := assets.NewCache(opts.AssetRoot, textureSlots, loadTexture, rl.UnloadTexture)
	if err != nil {
		return err
	}
	defer textures.Purge()

	r := NewRenderer(viz.GetTheme(opts.Theme), loadFont(logger), textures, logger)
	defer r.Close()

	app := newApp(d, r, logger)
	return app.loop()
}

func newApp(d *sim.Driver, r *Renderer, logger *log.Logger) *App {
	w := d.World()
	r.Driver = d
	d.SetRenderer(r)
	return &App{
		driver:     d,
		world:      w,
		dispatcher: w.Dispatcher(screenViewport()),
		renderer:   r,
		log:        logger,
	}
}

func (a *App) loop() error {
	for !rl.WindowShouldClose() && !a.quit {
		a.input()
		if err := a.driver.Tick(float64(rl.GetFrameTime())); err != nil {
			a.log.Error("frame failed", "err", err)
			return err
		}
	}
	return nil
}

func (a *App) input() {
	if rl.IsWindowResized() {
		a.dispatcher.Resize(screenViewport())
	}

	a.keys()

	ctl := a.world.Controls
	mouse := rl.GetMousePosition()
	if mouse != a.lastMouse {
		a.dispatcher.Dispatch(pick.PointerMoved{X: float64(mouse.X), Y: float64(mouse.Y)})
		a.lastMouse = mouse
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if hit, ok := a.dispatcher.Dispatch(pick.PointerClicked{X: float64(mouse.X), Y: float64(mouse.Y)}); ok {
			a.log.Debug("selected", "body", hit.Body.Name, "distance", hit.Distance)
		}
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		ctl.Rotate(-float64(delta.X)*dragSpeed, -float64(delta.Y)*dragSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		ctl.Dolly(float64(wheel) * wheelStep)
	}
}

func (a *App) keys() {
	ctl := a.world.Controls
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeySpace):
		a.driver.TogglePause()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.world.UI.Close()
	case rl.IsKeyPressed(rl.KeyO):
		a.renderer.ShowOrbits = !a.renderer.ShowOrbits
	case rl.IsKeyPressed(rl.KeyT):
		a.renderer.Theme = viz.NextTheme(a.renderer.Theme.Name)
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.setTimeScale(a.driver.TimeScale() / 2)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.setTimeScale(a.driver.TimeScale() * 2)
	}

	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		ctl.Rotate(0.02, 0)
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		ctl.Rotate(-0.02, 0)
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		ctl.Rotate(0, -0.02)
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		ctl.Rotate(0, 0.02)
	}
}

func (a *App) setTimeScale(s float64) {
	if s < minTimeScale || s > maxTimeScale {
		return
	}
	if err := a.driver.SetTimeScale(s); err != nil {
		a.log.Warn("time scale rejected", "scale", s, "err", err)
	}
}

func screenViewport() scene.Viewport {
	return scene.Viewport{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

// loadFont falls back to the raylib default font when the system font is
// missing.
func loadFont(logger *log.Logger) rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		logger.Debug("using default font", "err", err)
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func loadTexture(path string) (rl.Texture2D, error) {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return tex, fmt.Errorf("load texture %s: no GPU texture", path)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex, nil
}
