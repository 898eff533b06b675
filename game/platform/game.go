// Package platform runs the shooter on ebiten: it polls input into the
// snapshot systems read, advances the scheduler once per ebiten tick and
// draws the scene the render systems maintain.
package platform

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/input"
	"github.com/plus3/tickecs/game/render"
)

// Overlay is an immediate-mode UI drawn over the scene, such as the ImGui
// debug backend.
type Overlay interface {
	Frame(fn func())
	DrawOverlay(screen *ebiten.Image)
	Resize(width, height int)
}

// CaptureFunc reports whether the overlay wants the mouse and keyboard.
type CaptureFunc func() (mouse, keyboard bool)

type Options struct {
	Scheduler *ecs.Scheduler
	Scene     *render.Scene
	Poller    *Poller
	Renderer  *Renderer
	// TicksPerSecond fixes the simulation step; it should match ebiten.TPS.
	TicksPerSecond int
	Overlay        Overlay
	Capture        CaptureFunc
	Logger         *zap.Logger
}

// Game implements ebiten.Game.
type Game struct {
	scheduler *ecs.Scheduler
	scene     *render.Scene
	poller    *Poller
	renderer  *Renderer
	step      time.Duration
	overlay   Overlay
	capture   CaptureFunc
	logger    *zap.Logger
}

func NewGame(opts Options) *Game {
	tps := opts.TicksPerSecond
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		scheduler: opts.Scheduler,
		scene:     opts.Scene,
		poller:    opts.Poller,
		renderer:  opts.Renderer,
		step:      time.Second / time.Duration(tps),
		overlay:   opts.Overlay,
		capture:   opts.Capture,
		logger:    logger,
	}
}

func (g *Game) Update() error {
	var mouse, keyboard bool
	if g.capture != nil {
		mouse, keyboard = g.capture()
	}
	g.poller.Poll(mouse, keyboard)

	if g.poller.State().Pressed(input.KeyEscape) {
		g.logger.Info("quit requested", zap.Uint64("frame", g.scheduler.Frame()))
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.Frame(g.tick)
	} else {
		g.tick()
	}
	return nil
}

func (g *Game) tick() {
	g.scheduler.Step(g.step)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene)
	if g.overlay != nil {
		g.overlay.DrawOverlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
