//go:build ebiten

package app

import (
	"log"

	"wavefloat/internal/render"
	"wavefloat/internal/sims/floating"
	"wavefloat/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var interactionKeys = map[ebiten.Key]floating.Interaction{
	ebiten.KeyQ: floating.NorthWest,
	ebiten.KeyW: floating.NorthEast,
	ebiten.KeyA: floating.SouthWest,
	ebiten.KeyS: floating.SouthEast,
}

// Game adapts a floating world to the ebiten.Game interface.
type Game struct {
	world   *floating.World
	painter *render.SurfacePainter
	hud     *ui.HUD

	scale    int
	hudWidth int
	showHUD  bool
	paused   bool
	tickOnce bool

	reload <-chan floating.Config
}

// New constructs a Game for w. Configs received on reload replace the world
// between frames; reload may be nil.
func New(w *floating.World, scale, hudWidth int, reload <-chan floating.Config) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{scale: scale, hudWidth: hudWidth, showHUD: hudWidth > 0, reload: reload}
	g.setWorld(w)
	return g
}

func (g *Game) setWorld(w *floating.World) {
	g.world = w
	size := w.Size()
	canvas := render.NewCanvas(size.H, size.W, g.scale, render.DefaultPalette())
	g.painter = render.NewSurfacePainter(canvas)
	g.hud = ui.NewHUD(w, g.hudWidth)
}

// Update handles per-frame input and advances the world by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.applyReload()

	for key, zone := range interactionKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.world.Interact(zone); err != nil {
				log.Printf("app: interact %s: %v", zone, err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) && g.hudWidth > 0 {
		g.showHUD = !g.showHUD
	}

	if g.showHUD {
		g.hud.Update(g.viewWidth())
	}

	if !g.paused || g.tickOnce {
		g.world.Step(1 / float64(ebiten.TPS()))
		g.tickOnce = false
	}
	g.hud.SetStatus(Status(g.world, g.paused))
	return nil
}

func (g *Game) applyReload() {
	if g.reload == nil {
		return
	}
	select {
	case cfg := <-g.reload:
		w, err := floating.New(cfg)
		if err != nil {
			log.Printf("app: reload: %v", err)
			return
		}
		g.setWorld(w)
		log.Printf("app: reloaded scene %q", cfg.Name)
	default:
	}
}

// Draw renders the shaded surface, the bodies and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.painter.Blit(screen, g.world.Field(), g.world.Bodies()); err != nil {
		log.Printf("app: draw: %v", err)
	}
	if g.showHUD {
		g.hud.Draw(screen, g.viewWidth(), g.scale)
	}
}

func (g *Game) viewWidth() int { return g.world.Size().W * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.viewWidth()
	if g.showHUD {
		w += g.hudWidth
	}
	return w, g.world.Size().H * g.scale
}
