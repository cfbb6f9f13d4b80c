//go:build ebiten

package app

import (
	"image/color"

	"lbm2d/internal/core"
	"lbm2d/internal/render"
	"lbm2d/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type modeToggler interface {
	ToggleMode()
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	halted   bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:      sim,
		painter:  gp,
		hud:      ui.NewHUD(sim, hudWidth),
		overlay:  ui.NewOverlay(sim, scale),
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.halted = false
}

// Update handles per-frame logic and advances the simulation. A diverged
// simulation halts stepping until it is reset.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(core.ClockSeed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if t, ok := g.sim.(modeToggler); ok {
			t.ToggleMode()
		}
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	if !g.halted && (!g.paused || g.tickOnce) {
		if err := g.sim.Step(); err != nil {
			core.Logf("%s: halted: %v", g.sim.Name(), err)
			g.halted = true
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	var palette []color.RGBA
	if p, ok := g.sim.(core.PaletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.viewWidth() + g.hudWidth, s.H * g.scale
}

func (g *Game) viewWidth() int {
	return g.sim.Size().W * g.scale
}
