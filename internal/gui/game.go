// Package gui provides the window host using Ebitengine.
package gui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-orrery/internal/frame"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
)

// Config holds window host configuration.
type Config struct {
	Frame frame.Config

	Title  string
	Width  int
	Height int

	// ScrollStep is the number of pixels moved per wheel notch.
	ScrollStep float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Frame:      frame.DefaultConfig(),
		Title:      "Solar System",
		Width:      1024,
		Height:     768,
		ScrollStep: 48,
	}
}

// Game implements ebiten.Game. Update drains the catalog channel and
// samples input; Draw runs one frame of the driver.
type Game struct {
	ctx    context.Context
	app    *state.App
	driver *frame.Driver
	log    *logging.Logger
	cfg    Config

	loads <-chan state.LoadOutcome

	screen  screen
	outW    int
	outH    int
	scrollY float64

	// Pointer sampled in Update. latched keeps a press that started and
	// ended between two frames.
	cursorX int
	cursorY int
	down    bool
	latched bool

	lastMode     state.ViewMode
	lastSelected string
}

// New creates a window host. Catalog loads arrive on loads; the channel
// may be nil when the catalog is assigned up front.
func New(app *state.App, cfg Config, log *logging.Logger, loads <-chan state.LoadOutcome) *Game {
	if log == nil {
		log = logging.Discard()
	}
	return &Game{
		ctx:    context.Background(),
		app:    app,
		driver: frame.New(app, cfg.Frame, log.Named("frame")),
		log:    log,
		cfg:    cfg,
		loads:  loads,
	}
}

// Run opens the window and blocks until it is closed or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	g.ctx = ctx
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	select {
	case out, ok := <-g.loads:
		if ok {
			g.applyCatalog(out)
		} else {
			g.loads = nil
		}
	default:
	}

	g.cursorX, g.cursorY = ebiten.CursorPosition()
	g.down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.latched = true
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scrollY -= dy * g.cfg.ScrollStep
		g.clampScroll()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.driver.Back()
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		_ = g.driver.Request(state.ModeScale)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		_ = g.driver.Request(state.ModeDistance)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		_ = g.driver.Request(state.ModeCredits)
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.copySelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.scrollY = 0
	}
	return nil
}

func (g *Game) applyCatalog(out state.LoadOutcome) {
	if err := g.app.SetCatalog(out); err != nil {
		g.log.Warn("catalog from %s ignored: %v", out.Origin, err)
		return
	}
	if out.Err != nil {
		g.log.Error("catalog load from %s failed: %v", out.Origin, out.Err)
		return
	}
	g.log.Info("catalog loaded from %s: %d planets in %s",
		out.Origin, out.Catalog.Len(), out.Duration.Round(time.Millisecond))
}

func (g *Game) copySelected() {
	p := g.driver.Selected()
	if p == nil {
		return
	}
	if err := clipboard.WriteAll(p.Details()); err != nil {
		g.log.Warn("clipboard: %v", err)
		return
	}
	g.log.Info("copied %s details to clipboard", p.Name)
}

func (g *Game) clampScroll() {
	_, h := g.screen.Size()
	limit := float64(h - g.outH)
	if g.scrollY > limit {
		g.scrollY = limit
	}
	if g.scrollY < 0 {
		g.scrollY = 0
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(dst *ebiten.Image) {
	ptr := frame.Pointer{
		Pos:  geom.Pt(float64(g.cursorX), float64(g.cursorY)+g.scrollY),
		Down: g.down || g.latched,
	}
	g.latched = false

	g.screen.dst = dst
	g.screen.offY = g.scrollY
	g.screen.viewH = float64(g.outH)

	vp := frame.Viewport{Width: float64(g.outW), Height: float64(g.outH)}
	g.driver.Frame(&g.screen, vp, ptr)

	mode := g.driver.Mode()
	selected := ""
	if p := g.driver.Selected(); p != nil {
		selected = p.Name
	}
	if mode != g.lastMode || selected != g.lastSelected {
		g.scrollY = 0
		g.lastMode = mode
		g.lastSelected = selected
	}
	g.clampScroll()
}

// Layout implements ebiten.Game. The screen follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
