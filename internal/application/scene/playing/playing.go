// Package playing provides the duel scene.
package playing

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/swordduel/internal/application/match"
	"github.com/younwookim/swordduel/internal/application/scene"
	"github.com/younwookim/swordduel/internal/application/state"
	"github.com/younwookim/swordduel/internal/application/system"
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorSolid   = color.RGBA{80, 80, 100, 255}
	colorDecor   = color.RGBA{50, 50, 70, 255}
	colorBlade   = color.RGBA{220, 220, 235, 255}
	colorDead    = color.RGBA{90, 90, 90, 255}
	colorBlood   = color.RGBA{200, 30, 30, 255}
	colorSpark   = color.RGBA{255, 220, 90, 255}
	colorDust    = color.RGBA{160, 150, 130, 255}
	colorBox     = color.RGBA{100, 200, 100, 96}
	colorOverlay = color.RGBA{0, 0, 0, 128}
	colorHalt    = color.RGBA{100, 0, 0, 180}

	colorPlayers = [2]color.RGBA{
		{100, 200, 100, 255},
		{100, 160, 230, 255},
	}
)

// Builder creates a fresh match, e.g. after the assets changed on disk
type Builder func() (*match.Match, error)

// Playing is the duel scene
type Playing struct {
	build   Builder
	match   *match.Match
	state   state.GameState
	changes <-chan string
	log     *slog.Logger

	screenW int
	screenH int
	debug   bool
}

// New creates the scene and builds its first match. changes may be nil;
// otherwise every value received rebuilds the match.
func New(build Builder, screenW, screenH int, changes <-chan string, logger *slog.Logger) (*Playing, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m, err := build()
	if err != nil {
		return nil, fmt.Errorf("failed to build match: %w", err)
	}
	return &Playing{
		build:   build,
		match:   m,
		state:   state.Live(m.Locked()),
		changes: changes,
		log:     logger,
		screenW: screenW,
		screenH: screenH,
	}, nil
}

// Match returns the running match
func (p *Playing) Match() *match.Match { return p.match }

// State returns the scene state
func (p *Playing) State() state.GameState { return p.state }

// Update advances the match (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.pollChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		p.debug = !p.debug
	}

	switch p.state {
	case state.StateCountdown, state.StateFighting:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
		}
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.Live(p.match.Locked())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
	case state.StateHalted:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.reload("restart")
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
	}

	if p.state.Ticking() {
		p.tick(dt)
	}
	return nil, nil
}

func (p *Playing) tick(dt float64) {
	if err := p.match.Tick(dt); err != nil {
		// The window stays open on the halt overlay
		p.state = state.StateHalted
		return
	}
	if p.state == state.StateCountdown && !p.match.Locked() {
		p.state = state.StateFighting
	}
}

// pollChanges rebuilds the match once per burst of asset changes
func (p *Playing) pollChanges() {
	if p.changes == nil {
		return
	}
	changed := ""
	for {
		select {
		case name, ok := <-p.changes:
			if ok {
				changed = name
				continue
			}
			p.changes = nil
		default:
		}
		if changed != "" {
			p.reload(changed)
		}
		return
	}
}

// reload swaps in a fresh match. A broken asset keeps the current one.
func (p *Playing) reload(reason string) {
	m, err := p.build()
	if err != nil {
		p.log.Warn("reload failed, keeping current match", "reason", reason, "error", err)
		return
	}
	p.log.Info("match reloaded", "reason", reason, "old_match_id", p.match.ID.String())
	p.match = m
	p.state = state.Live(m.Locked())
}

// Draw renders the duel
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	for _, e := range p.drawList() {
		p.drawEntity(screen, e)
	}
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateHalted:
		p.drawHaltOverlay(screen)
	}
}

// drawList returns the world entities back to front: the level, loose
// swords, the duelists and the particles on top
func (p *Playing) drawList() []entity.Entity {
	level := p.match.Level()
	swords := p.match.Swords()
	emitters := p.match.Emitters()
	players := p.match.Players()

	list := make([]entity.Entity, 0, len(level.Obstacles)+len(swords)+len(players)+len(emitters))
	for _, o := range level.Obstacles {
		list = append(list, o)
	}
	for i := range swords {
		list = append(list, &swords[i])
	}
	for _, pl := range players {
		list = append(list, pl)
	}
	for _, e := range emitters {
		list = append(list, e)
	}
	return list
}

func (p *Playing) drawEntity(screen *ebiten.Image, e entity.Entity) {
	switch e.Kind() {
	case entity.KindObstacle:
		drawObstacle(screen, e.(entity.Obstacle))
	case entity.KindSword:
		length := p.match.Config().Sword.Length
		s := e.(*entity.Sword)
		drawSegment(screen, s.Pos(), s.Tip(length), colorBlade)
	case entity.KindPlayer:
		p.drawPlayer(screen, e.(*entity.Player))
	case entity.KindParticleEmitter:
		drawEmitter(screen, e.(entity.Emitter))
	}
}

func drawObstacle(screen *ebiten.Image, o entity.Obstacle) {
	c := colorSolid
	if o.Decor {
		c = colorDecor
	}
	ebitenutil.DrawRect(screen, float64(o.X), float64(o.Y), float64(o.W), float64(o.H), c)
}

func (p *Playing) drawPlayer(screen *ebiten.Image, pl *entity.Player) {
	f, err := pl.Anim.CurrentFrame(pl.Facing)
	if err != nil {
		return
	}
	c := colorPlayers[pl.Side]
	if !pl.Alive {
		c = colorDead
	}

	origin := pl.Pixel()
	for _, pt := range f.Outline {
		ebitenutil.DrawRect(screen, float64(origin.X+pt.X), float64(origin.Y+pt.Y), 1, 1, c)
	}

	if p.debug {
		box := pl.WorldBox()
		ebitenutil.DrawRect(screen, float64(box.X), float64(box.Y), float64(box.W), float64(box.H), colorBox)
	}

	if !pl.Armed() || !f.HasGrip {
		return
	}
	grip := origin.Add(f.Grip)
	tip := system.SwordTip(grip, f.Angle, pl.Facing, p.match.Config().Sword.Length)
	drawSegment(screen, grip, tip, colorBlade)
}

func drawEmitter(screen *ebiten.Image, e entity.Emitter) {
	c := colorDust
	switch e.Particle {
	case entity.ParticleBlood:
		c = colorBlood
	case entity.ParticleSpark:
		c = colorSpark
	}
	// Particles spread out as the emitter ages
	spread := 2 + int((1-min(e.TTL, 1))*8)
	for _, d := range [...]geom.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: -1}} {
		x := e.Pos.X + d.X*spread
		y := e.Pos.Y + d.Y*spread
		ebitenutil.DrawRect(screen, float64(x), float64(y), 2, 2, c)
	}
}

func drawSegment(screen *ebiten.Image, a, b geom.Point, c color.Color) {
	ebitenutil.DrawLine(screen, float64(a.X), float64(a.Y), float64(b.X), float64(b.Y), c)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	score := p.match.Score()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("P1 %d : %d P2", score[0], score[1]), p.screenW/2-30, 4)
	ebitenutil.DebugPrintAt(screen, "ESC: Pause | TAB: Debug", 4, p.screenH-16)

	if label := p.match.Countdown(); label != "" {
		// The debug font is 6 px wide
		ebitenutil.DebugPrintAt(screen, label, p.screenW/2-len(label)*3, p.screenH/3)
	}

	if p.debug {
		snap := p.match.Snapshot()
		info := fmt.Sprintf("tick %d  clash %v  disarm %s", p.match.Ticks(), snap.SwordsColliding, snap.Disarm)
		ebitenutil.DebugPrintAt(screen, info, 4, p.screenH-32)
	}
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)

	text := "PAUSED\n\nESC to resume\nQ to quit"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawHaltOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorHalt)

	text := fmt.Sprintf("MATCH HALTED\n\n%v\n\nR to restart\nQ to quit", p.match.Err())
	ebitenutil.DebugPrintAt(screen, text, 8, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.log.Info("duel started", "match_id", p.match.ID.String())
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	score := p.match.Score()
	p.log.Info("duel ended", "match_id", p.match.ID.String(), "ticks", p.match.Ticks(),
		"score", fmt.Sprintf("%d-%d", score[0], score[1]))
}
