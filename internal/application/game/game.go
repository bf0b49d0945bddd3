// Package game provides the ebiten wrapper that drives the duel scenes.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/swordduel/internal/application/scene"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

// Game implements ebiten.Game. It hands every tick to the current duel
// scene and manages scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
	}
	g.current.OnEnter()
	return g
}

// Configure applies the display settings to the ebiten window and matches
// the tick length to the configured framerate.
func (g *Game) Configure(display config.DisplayConfig, title string) {
	scale := max(display.Scale, 1)
	ebiten.SetWindowSize(g.screenW*scale, g.screenH*scale)
	ebiten.SetWindowTitle(title)
	if display.Framerate > 0 {
		ebiten.SetTPS(display.Framerate)
		g.dt = 1.0 / float64(display.Framerate)
	}
}

// Update updates the current scene and handles scene transitions.
// A player quitting the duel (scene.ErrQuit) closes the window cleanly.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// DT returns the delta time passed to the scene
func (g *Game) DT() float64 {
	return g.dt
}
