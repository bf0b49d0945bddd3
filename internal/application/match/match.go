// Package match wires the combat systems into one duel and advances it tick by tick.
package match

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/younwookim/swordduel/internal/application/system"
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
	"github.com/younwookim/swordduel/internal/ecs"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

// Deps are the collaborators a match is built from
type Deps struct {
	Assets *config.Assets
	Inputs [2]system.Input
	Audio  system.Audio
	Logger *slog.Logger
}

// Match is one duel between two players on a level
type Match struct {
	ID uuid.UUID

	log    *slog.Logger
	config *config.GameConfig
	level  *entity.Level
	inputs [2]system.Input
	audio  system.Audio

	players [2]*entity.Player
	world   *ecs.World
	engine  *system.CollisionEngine
	physics *system.PhysicsSystem
	combat  *system.CombatSystem

	countdown Countdown
	snapshot  system.Snapshot
	score     [2]int
	ticks     uint64
	err       error
}

// New creates a match with both players armed at their spawns, facing each other
func New(d Deps) (*Match, error) {
	if d.Assets == nil || d.Assets.Game == nil || d.Assets.Frames == nil || d.Assets.Level == nil {
		return nil, fmt.Errorf("%w: incomplete assets", entity.ErrInvalidArgument)
	}
	cfg := d.Assets.Game
	level := d.Assets.Level

	timing := d.Assets.Timing
	if timing == nil {
		t, err := cfg.Timing()
		if err != nil {
			return nil, err
		}
		timing = t
	}

	id := uuid.New()
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("match_id", id.String())

	audio := d.Audio
	if audio == nil {
		audio = NewLogAudio(logger)
	}
	inputs := d.Inputs
	for i := range inputs {
		if inputs[i] == nil {
			inputs[i] = system.NoInput{}
		}
	}

	m := &Match{
		ID:        id,
		log:       logger,
		config:    cfg,
		level:     level,
		inputs:    inputs,
		audio:     audio,
		countdown: NewCountdown(cfg.Round),
	}

	for side := range m.players {
		spawn := level.Spawn(side)
		facing := geom.Right
		if level.Spawn(1-side).X < spawn.X {
			facing = geom.Left
		}
		p, err := entity.NewPlayer(side, spawn, facing, d.Assets.Frames, timing)
		if err != nil {
			return nil, fmt.Errorf("failed to create player %d: %w", side+1, err)
		}
		m.players[side] = p
	}

	m.world = ecs.NewWorld(level, ecs.Config{
		Gravity:      cfg.Physics.Gravity,
		MaxFallSpeed: cfg.Physics.MaxFallSpeed,
		ThrowGravity: cfg.Sword.ThrowGravity,
		ThrowSpeed:   cfg.Sword.ThrowSpeed,
		EmitterTTL:   cfg.Combat.EmitterTTL,
	})
	m.engine = system.NewCollisionEngine(level, cfg)
	m.physics = system.NewPhysicsSystem(cfg)
	m.combat = system.NewCombatSystem(cfg, level, m.physics, m.world)

	m.log.Info("match created", "level", level.Name)
	return m, nil
}

// Tick advances the match by dt seconds. The order is fixed: bodies, the
// world pool, collision detection, then each player's state machine, and
// finally the queued requests. The first error halts the match for good.
// While the opening countdown runs the world moves but the controls are ignored.
func (m *Match) Tick(dt float64) error {
	if m.err != nil {
		return m.err
	}

	inputs := m.inputs
	if m.countdown.Locked() {
		inputs = [2]system.Input{system.NoInput{}, system.NoInput{}}
	}

	for _, p := range m.players {
		if err := m.physics.Integrate(&p.Body, dt); err != nil {
			return m.halt(fmt.Errorf("player %d: %w", p.Side+1, err))
		}
	}
	m.world.Update(dt)

	snap, err := m.engine.Detect(m.players[0], m.players[1], m.world.Swords())
	if err != nil {
		return m.halt(err)
	}

	for i, p := range m.players {
		if err := m.combat.Update(p, m.players[1-i], &snap, inputs[i], dt); err != nil {
			return m.halt(err)
		}
	}

	m.flush(m.combat.Drain())
	m.snapshot = snap
	if m.countdown.Advance(dt * 1000) {
		m.log.Info("round started", "tick", m.ticks)
	}
	m.ticks++
	return nil
}

func (m *Match) halt(err error) error {
	m.err = fmt.Errorf("match halted at tick %d: %w", m.ticks, err)
	m.log.Error("match halted", "tick", m.ticks, "error", err)
	return m.err
}

// flush carries out the requests queued by the state machine, in order
func (m *Match) flush(reqs []system.Request) {
	for _, r := range reqs {
		switch r := r.(type) {
		case system.PlaySound:
			m.audio.Play(r.Sound)
		case system.DropSword:
			m.world.DropSword(r.Pos, r.Dir, r.Side)
		case system.ThrowSword:
			id := m.world.ThrowSword(r.Pos, r.Dir, r.Side)
			m.log.Debug("sword thrown", "player", r.Side+1, "sword", id)
		case system.GroundSword:
			m.world.GroundSword(r.ID)
		case system.SpawnParticles:
			m.world.SpawnEmitter(r.Pos, r.Kind)
		case system.Killed:
			if r.Killer >= 0 && r.Killer < len(m.score) {
				m.score[r.Killer]++
			}
			m.log.Info("player killed",
				"victim", r.Victim+1,
				"killer", r.Killer+1,
				"cause", r.Cause,
				"score", fmt.Sprintf("%d-%d", m.score[0], m.score[1]),
			)
		case system.Disarmed:
			m.log.Info("player disarmed", "player", r.Side+1)
		case system.Respawned:
			m.log.Debug("player respawned", "player", r.Side+1, "x", r.Pos.X, "y", r.Pos.Y)
		}
	}
}

// Err returns the error that halted the match, nil while it runs
func (m *Match) Err() error { return m.err }

// Players returns both duelists
func (m *Match) Players() [2]*entity.Player { return m.players }

// Level returns the arena
func (m *Match) Level() *entity.Level { return m.level }

// Swords returns the loose swords in the world pool
func (m *Match) Swords() []entity.Sword { return m.world.Swords() }

// Emitters returns the live particle emitters
func (m *Match) Emitters() []entity.Emitter { return m.world.Emitters() }

// Snapshot returns the collision snapshot of the last tick
func (m *Match) Snapshot() system.Snapshot { return m.snapshot }

// Locked reports whether the opening countdown still holds the controls
func (m *Match) Locked() bool { return m.countdown.Locked() }

// Countdown returns the countdown text to show, empty once the round is on
func (m *Match) Countdown() string { return m.countdown.Label() }

// Score returns the kills per side
func (m *Match) Score() [2]int { return m.score }

// Ticks returns the number of completed ticks
func (m *Match) Ticks() uint64 { return m.ticks }

// Config returns the game configuration the match runs on
func (m *Match) Config() *config.GameConfig { return m.config }
