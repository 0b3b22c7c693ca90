package bento

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// App composes one Grid, one Engine, and one Renderer per layout epoch and
// implements [ebiten.Game]. Each frame it feeds the pointer-derived hovered
// cell into the engine, steps the simulation, and draws the result. Resizes
// and clicks rebuild the Grid and Engine wholesale; there is no incremental
// layout migration.
type App struct {
	cfg      Config
	grid     *Grid
	engine   *Engine
	renderer *Renderer

	showFPS       bool
	width, height int
	updateFunc    func() error

	// ScreenshotDir receives PNG captures queued via Screenshot. Defaults
	// to "screenshots" under the working directory.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewApp validates cfg, generates the initial layout, and returns the app.
func NewApp(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		cfg:           cfg,
		renderer:      NewRenderer(),
		width:         int(cfg.Width),
		height:        int(cfg.Height),
		ScreenshotDir: "screenshots",
	}
	a.rebuild()
	return a, nil
}

// Config returns a pointer to the app's configuration. Physics tuning fields
// may be mutated live between frames; structural changes require
// [App.Regenerate].
func (a *App) Config() *Config {
	return &a.cfg
}

// Grid returns the current layout epoch's grid.
func (a *App) Grid() *Grid {
	return a.grid
}

// Engine returns the current layout epoch's physics engine.
func (a *App) Engine() *Engine {
	return a.engine
}

// Regenerate discards the current Grid and Engine and builds a fresh layout
// at rest, with a renderer fade-in. Safe to call between ticks.
func (a *App) Regenerate() {
	a.rebuild()
	a.renderer.FadeIn()
}

func (a *App) rebuild() {
	var rng *rand.Rand
	if a.cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(a.cfg.Seed, a.cfg.Seed<<32|a.cfg.Seed>>32))
	}
	a.grid = NewGrid(a.cfg, rng)
	a.engine = NewEngine(a.grid, &a.cfg)
	a.renderer.SetHover(-1)
}

// SetUpdateFunc registers a callback invoked at the start of every frame,
// before input processing and the physics tick. Returning an error stops the
// game loop.
func (a *App) SetUpdateFunc(fn func() error) {
	a.updateFunc = fn
}

// Update implements ebiten.Game: it reads input and advances the simulation
// one tick.
func (a *App) Update() error {
	if a.updateFunc != nil {
		if err := a.updateFunc(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.showFPS = !a.showFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.Screenshot("bento")
	}

	mx, my := ebiten.CursorPosition()
	click := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	a.step(float64(mx), float64(my), click, float32(1.0/float64(ebiten.TPS())))
	return nil
}

// step is the frame tick, separated from Update so tests can drive the app
// without a window: hit-test the pointer, feed hover state to the engine,
// advance the physics and the cosmetic tweens.
func (a *App) step(px, py float64, click bool, dt float32) {
	if click {
		a.Regenerate()
	}

	cell := a.grid.CellAt(px, py, a.cfg.Gap)
	a.engine.SetHover(cell)
	a.engine.Step()

	id := -1
	if cell != nil {
		id = cell.ID
	}
	a.renderer.SetHover(id)
	a.renderer.Update(dt)
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.grid, a.cfg.Gap)
	if a.showFPS {
		drawFPS(screen)
	}
	a.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A changed container size triggers a full
// regeneration at rest.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width = outsideWidth
		a.height = outsideHeight
		a.cfg.Width = float64(outsideWidth)
		a.cfg.Height = float64(outsideHeight)
		a.Regenerate()
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run creates a resizable window and runs the app's game loop until the
// window is closed. For full control, use App as an [ebiten.Game] directly.
func Run(app *App, rc RunConfig) error {
	if rc.Width <= 0 {
		rc.Width = int(app.cfg.Width)
	}
	if rc.Height <= 0 {
		rc.Height = int(app.cfg.Height)
	}
	if rc.Title == "" {
		rc.Title = "bento"
	}
	app.showFPS = rc.ShowFPS

	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(app)
}
