package system_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/younwookim/swordduel/internal/application/system"
	"github.com/younwookim/swordduel/internal/application/system/mocks"
	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

const tickDuration = time.Second / 60

// keyboard is the key state a mocked Input reports for one player
type keyboard struct {
	down     map[system.Action]bool
	pressed  map[system.Action]bool
	released map[system.Action]bool
	held     map[system.Action]time.Duration
}

func newKeyboard() *keyboard {
	return &keyboard{
		down:     make(map[system.Action]bool),
		pressed:  make(map[system.Action]bool),
		released: make(map[system.Action]bool),
		held:     make(map[system.Action]time.Duration),
	}
}

func (k *keyboard) press(a system.Action) {
	k.down[a] = true
	k.pressed[a] = true
	k.held[a] = 0
}

func (k *keyboard) release(a system.Action) {
	k.down[a] = false
	k.released[a] = true
	k.held[a] = 0
}

// endTick clears the edges and ages held keys
func (k *keyboard) endTick() {
	clear(k.pressed)
	clear(k.released)
	for a, down := range k.down {
		if down {
			k.held[a] += tickDuration
		}
	}
}

func mockInput(ctrl *gomock.Controller, k *keyboard) *mocks.MockInput {
	in := mocks.NewMockInput(ctrl)
	in.EXPECT().IsKeyDown(gomock.Any()).DoAndReturn(func(a system.Action) bool {
		return k.down[a]
	}).AnyTimes()
	in.EXPECT().IsKeyPressedThisTick(gomock.Any()).DoAndReturn(func(a system.Action) bool {
		return k.pressed[a]
	}).AnyTimes()
	in.EXPECT().IsKeyReleasedThisTick(gomock.Any()).DoAndReturn(func(a system.Action) bool {
		return k.released[a]
	}).AnyTimes()
	in.EXPECT().HeldDuration(gomock.Any()).DoAndReturn(func(a system.Action) time.Duration {
		return k.held[a]
	}).AnyTimes()
	return in
}

// duel runs the physics, collision and combat steps the way a match does
type duel struct {
	t        *testing.T
	level    *entity.Level
	physics  *system.PhysicsSystem
	engine   *system.CollisionEngine
	combat   *system.CombatSystem
	pool     *mocks.MockSwordPool
	players  [2]*entity.Player
	keys     [2]*keyboard
	inputs   [2]system.Input
	requests []system.Request
}

func newDuel(t *testing.T, x1, x2 int) *duel {
	t.Helper()
	return newDuelWith(t, system.NewTestConfig(), x1, x2)
}

func newDuelWith(t *testing.T, cfg *config.GameConfig, x1, x2 int) *duel {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := system.NewTestStore(t, nil)

	d := &duel{
		t:       t,
		level:   system.NewTestLevel(),
		physics: system.NewPhysicsSystem(cfg),
		pool:    mocks.NewMockSwordPool(ctrl),
	}
	d.engine = system.NewCollisionEngine(d.level, cfg)
	d.combat = system.NewCombatSystem(cfg, d.level, d.physics, d.pool)

	d.players[0] = system.NewTestPlayer(t, store, 0, x1, 170, geom.Right, anim.IdleMid)
	d.players[1] = system.NewTestPlayer(t, store, 1, x2, 170, geom.Left, anim.IdleMid)
	for i, p := range d.players {
		d.physics.SnapToGround(&p.Body, &d.level.Obstacles[0], p.FeetOffset())
		d.keys[i] = newKeyboard()
		d.inputs[i] = mockInput(ctrl, d.keys[i])
	}
	return d
}

func (d *duel) tick() system.Snapshot {
	d.t.Helper()
	for _, p := range d.players {
		require.NoError(d.t, d.physics.Integrate(&p.Body, system.TestTick))
	}
	snap, err := d.engine.Detect(d.players[0], d.players[1], nil)
	require.NoError(d.t, err)
	for i, p := range d.players {
		require.NoError(d.t, d.combat.Update(p, d.players[1-i], &snap, d.inputs[i], system.TestTick))
	}
	d.requests = append(d.requests, d.combat.Drain()...)
	for _, k := range d.keys {
		k.endTick()
	}
	return snap
}

func (d *duel) run(n int) {
	d.t.Helper()
	for range n {
		d.tick()
	}
}

// grounded is a snapshot where both players stand on the floor
func (d *duel) grounded() system.Snapshot {
	var snap system.Snapshot
	for i := range snap.Players {
		snap.Players[i].OnGround = true
		snap.Players[i].Ground = &d.level.Obstacles[0]
	}
	return snap
}

func TestCombat_StabKillsAndRespawns(t *testing.T) {
	d := newDuel(t, 100, 135)
	p1, p2 := d.players[0], d.players[1]
	p2.Stance = anim.StanceHigh
	p2.Anim.Set(anim.IdleHigh)

	d.keys[0].press(system.ActionStab)
	d.tick()
	assert.Equal(t, anim.StabMid, p1.Anim.ID())
	assert.Contains(t, d.requests, system.PlaySound{Sound: system.SoundSwing})

	snap := d.tick()
	assert.True(t, snap.WasStruck(1))
	assert.False(t, p2.Alive)
	assert.Equal(t, anim.Dying, p2.Anim.ID())
	assert.False(t, p2.Armed())
	assert.Contains(t, d.requests, system.Killed{Victim: 1, Killer: 0, Cause: "sword"})
	assert.Contains(t, d.requests, system.PlaySound{Sound: system.SoundHit})
	assert.Contains(t, d.requests, system.DropSword{Side: 1, Pos: geom.Point{X: 143, Y: 185}, Dir: geom.Left})
	assert.True(t, p1.Alive)

	// The thrust plays out and the winner returns to its guard
	d.run(10)
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
	assert.False(t, p2.Alive)

	d.run(60)
	assert.True(t, p2.Alive)
	assert.True(t, p2.Armed())
	assert.Equal(t, geom.Point{X: 240, Y: 170}, p2.Pixel())
	assert.Equal(t, geom.Left, p2.Facing)
	assert.Equal(t, anim.IdleMid, p2.Anim.ID())
	assert.Contains(t, d.requests, system.Respawned{Side: 1, Pos: geom.Point{X: 240, Y: 170}})
}

func TestCombat_BlockedStabKnocksBack(t *testing.T) {
	d := newDuel(t, 100, 135)
	p1, p2 := d.players[0], d.players[1]
	p2.Anim.Set(anim.HoldUp)

	d.keys[0].press(system.ActionStab)
	d.tick()
	require.Equal(t, anim.StabMid, p1.Anim.ID())

	snap := d.tick()
	assert.True(t, snap.Players[0].Blocked)
	assert.True(t, p2.Alive)
	assert.Equal(t, -1, p1.KnockbackSign())
	assert.Contains(t, d.requests, system.PlaySound{Sound: system.SoundBlock})
	assert.Contains(t, d.requests, system.SpawnParticles{Pos: geom.Point{X: 142, Y: 182}, Kind: entity.ParticleSpark})

	d.run(20)
	assert.True(t, p2.Alive)
	assert.Less(t, p1.PixelX(), 100)
	assert.Equal(t, anim.HoldUp, p2.Anim.ID())
}

func TestCombat_TapChangesStance(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]
	k := d.keys[0]

	tap := func(a system.Action) {
		k.press(a)
		d.tick()
		k.release(a)
		d.tick()
	}

	tap(system.ActionUp)
	assert.Equal(t, anim.StanceHigh, p1.Stance)
	assert.Equal(t, anim.IdleHigh, p1.Anim.ID())

	tap(system.ActionUp)
	assert.Equal(t, anim.StanceHigh, p1.Stance, "stance saturates")

	tap(system.ActionDown)
	tap(system.ActionDown)
	assert.Equal(t, anim.StanceLow, p1.Stance)
	assert.Equal(t, anim.IdleLow, p1.Anim.ID())
}

func TestCombat_HoldUpAndThrow(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]
	k := d.keys[0]

	k.press(system.ActionUp)
	d.run(5)
	assert.Equal(t, anim.IdleMid, p1.Anim.ID(), "a short press is not a hold")

	d.run(15)
	require.Equal(t, anim.HoldUp, p1.Anim.ID())
	assert.Equal(t, anim.StanceMid, p1.Stance)

	k.press(system.ActionStab)
	d.tick()
	assert.Equal(t, anim.Throw, p1.Anim.ID())
	assert.False(t, p1.Armed())
	assert.Contains(t, d.requests, system.ThrowSword{Side: 0, Pos: geom.Point{X: 54, Y: 198}, Dir: geom.Right})
	assert.Contains(t, d.requests, system.PlaySound{Sound: system.SoundThrow})

	k.release(system.ActionUp)
	d.run(15)
	assert.Equal(t, anim.Unarmed, p1.Anim.ID())
}

func TestCombat_HoldUpReleaseReturnsToGuard(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]
	k := d.keys[0]

	k.press(system.ActionUp)
	d.run(20)
	require.Equal(t, anim.HoldUp, p1.Anim.ID())

	k.release(system.ActionUp)
	d.tick()
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
	assert.Equal(t, anim.StanceMid, p1.Stance, "releasing a hold is not a tap")
}

func TestCombat_CrouchPicksUpSword(t *testing.T) {
	d := newDuel(t, 100, 250)
	p1 := d.players[0]
	p1.Sword = nil
	p1.Anim.Set(anim.Unarmed)

	found := entity.NewSword(1)
	found.ID = 5
	d.pool.EXPECT().NearestGroundSword(geom.Point{X: 108, Y: 200}, 16).Return(entity.EntityID(5), true).Times(1)
	d.pool.EXPECT().TakeSword(entity.EntityID(5), 0).Return(found, true).Times(1)

	d.keys[0].press(system.ActionDown)
	d.run(20)

	assert.Equal(t, anim.PickUp, p1.Anim.ID())
	assert.Same(t, found, p1.Sword)
	assert.Contains(t, d.requests, system.PlaySound{Sound: system.SoundPickup})

	d.run(20)
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
}

func TestCombat_CrouchWithNothingInReach(t *testing.T) {
	d := newDuel(t, 100, 250)
	p1 := d.players[0]
	p1.Sword = nil
	p1.Anim.Set(anim.Unarmed)

	d.pool.EXPECT().NearestGroundSword(gomock.Any(), gomock.Any()).Return(entity.EntityID(0), false).MinTimes(1)

	d.keys[0].press(system.ActionDown)
	d.run(25)
	assert.Equal(t, anim.Crouch, p1.Anim.ID())
	assert.False(t, p1.Armed())

	d.keys[0].release(system.ActionDown)
	d.tick()
	assert.Equal(t, anim.Unarmed, p1.Anim.ID())
}

func TestCombat_JumpArc(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]

	d.keys[0].press(system.ActionJump)
	d.tick()
	require.Equal(t, anim.JumpStart, p1.Anim.ID())
	assert.False(t, p1.OnGround)
	assert.Less(t, p1.VY, 0.0)

	seen := map[anim.ID]bool{}
	for range 120 {
		d.tick()
		seen[p1.Anim.ID()] = true
		if p1.OnGround {
			break
		}
	}

	assert.True(t, seen[anim.JumpPeak], "apex")
	assert.True(t, seen[anim.JumpEnd], "descent")
	assert.True(t, p1.OnGround)
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
	assert.Equal(t, 170, p1.PixelY())
	assert.Zero(t, p1.VY)
}

func TestCombat_DropKick(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]

	d.keys[0].press(system.ActionJump)
	d.run(10)
	require.False(t, p1.OnGround)

	d.keys[0].press(system.ActionStab)
	d.tick()
	assert.Equal(t, anim.DropKick, p1.Anim.ID())
	assert.Equal(t, 15000.0, p1.VX)

	// The kick loses speed in flight
	d.tick()
	assert.InDelta(t, 14800.0, p1.VX, 0.001)

	for range 120 {
		if p1.OnGround {
			break
		}
		d.tick()
	}
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
	assert.Zero(t, p1.VX)
}

func TestCombat_DropKickEndsAtWall(t *testing.T) {
	d := newDuel(t, 250, 40)
	p1 := d.players[0]
	require.Equal(t, geom.Right, p1.Facing)

	d.keys[0].press(system.ActionJump)
	d.tick()
	d.keys[0].press(system.ActionStab)
	d.tick()
	require.Equal(t, anim.DropKick, p1.Anim.ID())

	for range 30 {
		d.tick()
		if p1.Anim.ID() != anim.DropKick {
			break
		}
	}
	assert.Equal(t, anim.JumpEnd, p1.Anim.ID(), "the wall spends the kick")
	assert.Zero(t, p1.VX)
	assert.False(t, p1.OnGround)

	for range 120 {
		if p1.OnGround {
			break
		}
		d.tick()
	}
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
}

func TestCombat_DropKickRejectsBadSpeed(t *testing.T) {
	cfg := system.NewTestConfig()
	cfg.Movement.DropKickSpeed = math.Inf(1)
	d := newDuelWith(t, cfg, 40, 250)
	p1 := d.players[0]

	d.keys[0].press(system.ActionJump)
	d.run(5)
	require.False(t, p1.OnGround)
	before := p1.Anim.ID()

	d.keys[0].press(system.ActionStab)
	snap := d.grounded()
	snap.Players[0] = system.Contact{}
	err := d.combat.Update(p1, d.players[1], &snap, d.inputs[0], system.TestTick)
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
	assert.Equal(t, before, p1.Anim.ID(), "a rejected kick never starts")
	assert.Zero(t, p1.VX)
}

func TestCombat_HeldJumpRisesHigher(t *testing.T) {
	apex := func(hold bool) int {
		d := newDuel(t, 40, 250)
		p1 := d.players[0]
		d.keys[0].press(system.ActionJump)
		d.tick()
		if !hold {
			d.keys[0].release(system.ActionJump)
		}
		top := p1.PixelY()
		for range 120 {
			d.tick()
			top = min(top, p1.PixelY())
			if p1.OnGround {
				break
			}
		}
		require.True(t, p1.OnGround)
		return 170 - top
	}

	tap, held := apex(false), apex(true)
	assert.Greater(t, held, tap)
	assert.InDelta(t, 58, tap, 4, "330 px/s against 900 px/s²")
	// The extra speed is capped at half the launch speed
	assert.Less(t, held, 135)
}

func TestCombat_TapStepsHoldWalks(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]
	k := d.keys[0]

	k.press(system.ActionRight)
	d.tick()
	assert.Equal(t, anim.Step, p1.Anim.ID())
	assert.Greater(t, p1.VX, 0.0)

	k.release(system.ActionRight)
	d.tick()
	assert.Equal(t, anim.IdleMid, p1.Anim.ID(), "a tap is a single step")
	assert.Zero(t, p1.VX)

	k.press(system.ActionRight)
	d.run(7)
	assert.Equal(t, anim.Step, p1.Anim.ID(), "100 ms is still a step")
	d.tick()
	assert.Equal(t, anim.Walk, p1.Anim.ID())
	assert.Greater(t, p1.PixelX(), 40)
}

func TestCombat_StepKeepsTheGuard(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]

	d.keys[0].press(system.ActionRight)
	d.tick()
	require.Equal(t, anim.Step, p1.Anim.ID())

	d.keys[0].press(system.ActionStab)
	d.tick()
	assert.Equal(t, anim.StabMid, p1.Anim.ID(), "a step can be stabbed out of")
	assert.Zero(t, p1.VX)
}

func TestCombat_StabAgainOnFinalFrame(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]
	k := d.keys[0]

	k.press(system.ActionStab)
	d.tick()
	require.Equal(t, anim.StabMid, p1.Anim.ID())

	for range 20 {
		if p1.Anim.FinalFrame() {
			break
		}
		d.tick()
	}
	require.True(t, p1.Anim.FinalFrame())

	k.press(system.ActionStab)
	d.tick()
	assert.Equal(t, anim.StabMid, p1.Anim.ID())
	assert.Zero(t, p1.Anim.Frame(), "the thrust starts over")
	swings := 0
	for _, r := range d.requests {
		if r == (system.PlaySound{Sound: system.SoundSwing}) {
			swings++
		}
	}
	assert.Equal(t, 2, swings)

	// Without another press the thrust plays out
	d.run(15)
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
}

func TestCombat_WalkAndStop(t *testing.T) {
	d := newDuel(t, 40, 250)
	p1 := d.players[0]
	k := d.keys[0]

	k.press(system.ActionLeft)
	d.run(10)
	assert.Equal(t, anim.Walk, p1.Anim.ID())
	assert.Equal(t, geom.Left, p1.Facing)
	assert.Less(t, p1.PixelX(), 40)

	k.release(system.ActionLeft)
	d.tick()
	assert.Equal(t, anim.IdleMid, p1.Anim.ID())
	assert.Zero(t, p1.VX)
	assert.Equal(t, geom.Right, p1.Facing, "turns back to the opponent")
}

func TestCombat_WallStopsWalking(t *testing.T) {
	d := newDuel(t, 284, 40)
	p1 := d.players[0]

	d.keys[0].press(system.ActionRight)
	d.run(10)
	assert.Zero(t, p1.VX)
	assert.Equal(t, 284, p1.PixelX())
}

func TestCombat_Disarmed(t *testing.T) {
	d := newDuel(t, 100, 250)
	p1 := d.players[0]

	snap := d.grounded()
	snap.Disarm = system.P2DisarmsP1
	require.NoError(t, d.combat.Update(p1, d.players[1], &snap, d.inputs[0], system.TestTick))

	assert.False(t, p1.Armed())
	assert.Equal(t, anim.Unarmed, p1.Anim.ID())
	assert.Equal(t, []system.Request{
		system.DropSword{Side: 0, Pos: geom.Point{X: 108, Y: 185}, Dir: geom.Right},
		system.Disarmed{Side: 0},
	}, d.combat.Drain())
}

func TestCombat_ThrownSwordKills(t *testing.T) {
	d := newDuel(t, 100, 250)
	p2 := d.players[1]

	snap := d.grounded()
	snap.Players[1].ThrownHit = true
	snap.Players[1].ThrownBy = 7
	require.NoError(t, d.combat.Update(p2, d.players[0], &snap, d.inputs[1], system.TestTick))

	assert.False(t, p2.Alive)
	reqs := d.combat.Drain()
	require.NotEmpty(t, reqs)
	assert.Equal(t, system.GroundSword{ID: 7}, reqs[0])
	assert.Contains(t, reqs, system.Killed{Victim: 1, Killer: 0, Cause: "thrown"})
}

func TestCombat_KickPushesAway(t *testing.T) {
	d := newDuel(t, 100, 135)
	p2 := d.players[1]

	snap := d.grounded()
	snap.Players[1].Kicked = true
	require.NoError(t, d.combat.Update(p2, d.players[0], &snap, d.inputs[1], system.TestTick))

	assert.True(t, p2.Alive)
	assert.Equal(t, 1, p2.KnockbackSign())
	assert.Contains(t, d.combat.Drain(), system.PlaySound{Sound: system.SoundKick})
}

func TestCombat_ClashPushesBothBack(t *testing.T) {
	d := newDuel(t, 100, 140)
	p1, p2 := d.players[0], d.players[1]

	snap := d.tick()
	require.True(t, snap.SwordsColliding)

	assert.Equal(t, -1, p1.KnockbackSign())
	assert.Equal(t, 1, p2.KnockbackSign())
	assert.Contains(t, d.requests, system.PlaySound{Sound: system.SoundClash})
	assert.Contains(t, d.requests, system.SpawnParticles{Pos: geom.Point{X: 134, Y: 182}, Kind: entity.ParticleSpark})
}
