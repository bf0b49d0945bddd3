package system

import (
	"fmt"
	"time"

	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

// CombatSystem runs the player state machine. It turns input and the tick's
// collision snapshot into animation transitions, body changes and requests.
type CombatSystem struct {
	config  *config.GameConfig
	level   *entity.Level
	physics *PhysicsSystem
	pool    SwordPool

	holds  [2]holdState
	outbox []Request
}

// holdState remembers which hold events already fired for the current press
type holdState struct {
	up    bool
	down  bool
	boost float64 // upward speed the current jump may still gain
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.GameConfig, level *entity.Level, physics *PhysicsSystem, pool SwordPool) *CombatSystem {
	return &CombatSystem{
		config:  cfg,
		level:   level,
		physics: physics,
		pool:    pool,
		outbox:  make([]Request, 0, 16),
	}
}

// Drain returns the requests queued since the last call
func (s *CombatSystem) Drain() []Request {
	out := s.outbox
	s.outbox = make([]Request, 0, 16)
	return out
}

func (s *CombatSystem) emit(r Request) {
	s.outbox = append(s.outbox, r)
}

// Update runs one tick of the state machine for p
func (s *CombatSystem) Update(p, opp *entity.Player, snap *Snapshot, in Input, dt float64) error {
	if err := p.Anim.Advance(dt * 1000); err != nil {
		return fmt.Errorf("player %d: %w", p.Side+1, err)
	}

	t := snap.Players[p.Side].Terrain
	s.applyTerrain(p, t)

	if p.Alive {
		if err := s.applyOutcomes(p, opp, snap); err != nil {
			return fmt.Errorf("player %d: %w", p.Side+1, err)
		}
	}
	if !p.Alive {
		s.updateDead(p, opp, dt)
		return nil
	}

	if !s.chainStrike(p, opp, in) && p.Anim.IsLastFrame() {
		s.Fire(p, EvFrameComplete)
	}
	if p.OnGround {
		s.handleGround(p, opp, t, in)
		return nil
	}
	if err := s.handleAir(p, t, in, dt); err != nil {
		return fmt.Errorf("player %d: %w", p.Side+1, err)
	}
	return nil
}

// Fire applies the transition for ev, resolving pseudo-targets against the
// player. It returns false when the current state ignores the event.
func (s *CombatSystem) Fire(p *entity.Player, ev Event) bool {
	next, ok := Next(p.Anim.ID(), ev)
	if !ok {
		return false
	}
	p.Anim.Set(resolve(p, next))
	return true
}

func resolve(p *entity.Player, id anim.ID) anim.ID {
	switch id {
	case Rest:
		if !p.Armed() {
			return anim.Unarmed
		}
		return anim.Idle(p.Stance)
	case Strike:
		if !p.Armed() {
			return anim.Punch
		}
		return anim.Stab(p.Stance)
	}
	return id
}

// applyTerrain snaps to the ground and stops motion into walls and ceilings
func (s *CombatSystem) applyTerrain(p *entity.Player, t Terrain) {
	switch {
	case t.OnGround && p.VY >= 0:
		landed := !p.OnGround
		s.physics.SnapToGround(&p.Body, t.Ground, p.FeetOffset())
		if landed && p.Alive {
			if p.Anim.ID() == anim.DropKick {
				p.VX = 0
			}
			s.Fire(p, EvLand)
		}
	case !t.OnGround && p.OnGround:
		s.physics.LeaveGround(&p.Body)
	}

	// A drop kick into a wall is spent
	if p.Anim.ID() == anim.DropKick && ((t.WallLeft && p.Facing == geom.Left) || (t.WallRight && p.Facing == geom.Right)) {
		p.VX = 0
		s.Fire(p, EvWall)
	}
	if (t.WallLeft && p.VX < 0) || (t.WallRight && p.VX > 0) {
		p.VX = 0
	}
	if k := p.KnockbackSign(); (t.WallLeft && k < 0) || (t.WallRight && k > 0) {
		p.StopKnockback()
	}
	if t.HeadBump && p.VY < 0 {
		p.VY = 0
		s.holds[p.Side].boost = 0
	}
}

// applyOutcomes reacts to hits, blocks, clashes, kicks and disarms
func (s *CombatSystem) applyOutcomes(p, opp *entity.Player, snap *Snapshot) error {
	c := snap.Players[p.Side]

	if snap.WasStruck(p.Side) {
		return s.kill(p, opp.Side, "sword")
	}
	if c.ThrownHit {
		s.emit(GroundSword{ID: c.ThrownBy})
		return s.kill(p, opp.Side, "thrown")
	}

	if c.Blocked {
		s.knockback(p, c.Terrain, p.Facing.Opposite())
		s.emit(PlaySound{Sound: SoundBlock})
		s.emit(SpawnParticles{Pos: c.BlockPoint, Kind: entity.ParticleSpark})
	}
	if snap.SwordsColliding {
		s.knockback(p, c.Terrain, p.Facing.Opposite())
		if p.Side == 0 {
			s.emit(PlaySound{Sound: SoundClash})
			s.emit(SpawnParticles{Pos: snap.ClashPoint, Kind: entity.ParticleSpark})
		}
	}
	if c.Kicked {
		s.knockback(p, c.Terrain, away(p, opp))
		s.emit(PlaySound{Sound: SoundKick})
	}

	if snap.Disarm.Victim() == p.Side && p.Armed() {
		p.ReleaseSword()
		s.emit(DropSword{Side: p.Side, Pos: center(p.WorldBox()), Dir: p.Facing})
		s.emit(Disarmed{Side: p.Side})
		s.Fire(p, EvDisarmed)
	}
	return nil
}

func (s *CombatSystem) knockback(p *entity.Player, t Terrain, dir geom.Direction) {
	if (dir == geom.Left && t.WallLeft) || (dir == geom.Right && t.WallRight) {
		return
	}
	kb := s.config.Combat.Knockback
	p.StartKnockback(kb.Distance, dir, kb.Duration)
	s.Fire(p, EvKnockback)
}

func (s *CombatSystem) kill(p *entity.Player, killer int, cause string) error {
	sword, err := p.Kill(s.config.Combat.RespawnMs)
	if err != nil {
		return err
	}
	if sword != nil {
		s.emit(DropSword{Side: p.Side, Pos: center(p.WorldBox()), Dir: p.Facing})
	}
	s.Fire(p, EvKilled)
	s.holds[p.Side] = holdState{}

	s.emit(SpawnParticles{Pos: center(p.WorldBox()), Kind: entity.ParticleBlood})
	s.emit(PlaySound{Sound: SoundHit})
	s.emit(Killed{Victim: p.Side, Killer: killer, Cause: cause})
	return nil
}

// updateDead counts down the respawn timer while the dying animation plays
func (s *CombatSystem) updateDead(p, opp *entity.Player, dt float64) {
	p.RespawnMs -= dt * 1000
	if p.RespawnMs > 0 {
		return
	}
	spawn := s.level.Spawn(p.Side)
	facing := geom.Right
	if opp.PixelX() < spawn.X {
		facing = geom.Left
	}
	p.Respawn(spawn, facing)
	s.emit(Respawned{Side: p.Side, Pos: spawn})
}

func (s *CombatSystem) handleGround(p, opp *entity.Player, t Terrain, in Input) {
	dir := walkDir(in, t)

	if in.IsKeyPressedThisTick(ActionJump) && s.Fire(p, EvJump) {
		s.holds[p.Side].boost = s.physics.Jump(&p.Body)
		s.physics.Walk(&p.Body, dir)
		return
	}
	if in.IsKeyPressedThisTick(ActionStab) && s.handleStab(p, opp) {
		return
	}

	s.handleUp(p, in)
	s.handleDown(p, in)
	s.handleMovement(p, opp, dir, in)
}

func (s *CombatSystem) handleAir(p *entity.Player, t Terrain, in Input, dt float64) error {
	h := &s.holds[p.Side]
	if in.IsKeyDown(ActionJump) {
		left, err := s.physics.HoldJump(&p.Body, h.boost, dt)
		if err != nil {
			return err
		}
		h.boost = left
	} else {
		h.boost = 0
	}

	vy := p.VY / entity.PositionScale

	switch id := p.Anim.ID(); {
	case id == anim.JumpStart && vy > -s.config.Jump.PeakThreshold:
		s.Fire(p, EvPeak)
	case !anim.IsAirborne(id) && vy > s.config.Jump.FallThreshold:
		s.Fire(p, EvFall)
	case id == anim.JumpPeak && vy > s.config.Jump.FallThreshold:
		s.Fire(p, EvFall)
	}

	if _, ok := Next(p.Anim.ID(), EvAirStab); ok && in.IsKeyPressedThisTick(ActionStab) {
		vx := float64(p.Facing.Sign()) * s.config.Movement.DropKickSpeed * entity.PositionScale
		if err := p.SetVelocity(vx, p.VY); err != nil {
			return fmt.Errorf("drop kick: %w", err)
		}
		s.Fire(p, EvAirStab)
		h.boost = 0
		s.emit(PlaySound{Sound: SoundSwing})
		return nil
	}
	if p.Anim.ID() == anim.DropKick {
		s.physics.Decelerate(&p.Body, s.config.Movement.DropKickDecel, dt)
		return nil
	}
	s.physics.Walk(&p.Body, walkDir(in, t))
	return nil
}

// chainStrike replays a stab or punch when the key is pressed again on its
// final frame, so a held flurry never drops back to the guard in between.
func (s *CombatSystem) chainStrike(p, opp *entity.Player, in Input) bool {
	id := p.Anim.ID()
	if !p.OnGround || !(anim.IsStab(id) || id == anim.Punch) || !p.Anim.FinalFrame() {
		return false
	}
	if !in.IsKeyPressedThisTick(ActionStab) {
		return false
	}
	p.Anim.Restart()
	p.Facing = toward(p, opp)
	if p.Armed() {
		s.emit(PlaySound{Sound: SoundSwing})
	} else {
		s.emit(PlaySound{Sound: SoundPunch})
	}
	return true
}

// handleStab starts a thrust, a punch or, from the block pose, a throw
func (s *CombatSystem) handleStab(p, opp *entity.Player) bool {
	if p.Anim.ID() == anim.HoldUp {
		hand := s.handPos(p)
		if !p.Armed() || !s.Fire(p, EvStab) {
			return false
		}
		p.ReleaseSword()
		p.VX = 0
		s.emit(ThrowSword{Side: p.Side, Pos: hand, Dir: p.Facing})
		s.emit(PlaySound{Sound: SoundThrow})
		return true
	}

	if !s.Fire(p, EvStab) {
		return false
	}
	p.VX = 0
	p.Facing = toward(p, opp)
	if p.Armed() {
		s.emit(PlaySound{Sound: SoundSwing})
	} else {
		s.emit(PlaySound{Sound: SoundPunch})
	}
	return true
}

// handPos is where a thrown sword leaves the hand
func (s *CombatSystem) handPos(p *entity.Player) geom.Point {
	f, err := p.Anim.CurrentFrame(p.Facing)
	if err != nil || !f.HasGrip {
		return center(p.WorldBox())
	}
	return p.Pixel().Add(f.Grip)
}

// handleUp raises the stance on a tap and enters the block pose on a hold
func (s *CombatSystem) handleUp(p *entity.Player, in Input) {
	h := &s.holds[p.Side]

	if in.IsKeyDown(ActionUp) && !h.up && p.Armed() && in.HeldDuration(ActionUp) >= s.holdThreshold() {
		h.up = s.Fire(p, EvHoldUp)
	}
	if !in.IsKeyReleasedThisTick(ActionUp) {
		return
	}
	if h.up {
		s.Fire(p, EvReleaseUp)
	} else if p.Armed() && anim.IsIdle(p.Anim.ID()) {
		p.Stance = p.Stance.Raise()
		s.Fire(p, EvTapUp)
	}
	h.up = false
}

// handleDown lowers the stance on a tap and crouches on a hold. A crouching
// unarmed player picks up a sword lying within reach.
func (s *CombatSystem) handleDown(p *entity.Player, in Input) {
	h := &s.holds[p.Side]

	if in.IsKeyDown(ActionDown) && !h.down && in.HeldDuration(ActionDown) >= s.holdThreshold() {
		if h.down = s.Fire(p, EvHoldDown); h.down {
			p.VX = 0
		}
	}
	if h.down && !p.Armed() && p.Anim.ID() == anim.Crouch {
		s.pickUp(p)
	}
	if !in.IsKeyReleasedThisTick(ActionDown) {
		return
	}
	if h.down {
		s.Fire(p, EvReleaseDown)
	} else if p.Armed() && anim.IsIdle(p.Anim.ID()) {
		p.Stance = p.Stance.Lower()
		s.Fire(p, EvTapDown)
	}
	h.down = false
}

func (s *CombatSystem) pickUp(p *entity.Player) {
	box := p.WorldBox()
	feet := geom.Point{X: box.X + box.W/2, Y: box.Bottom()}

	id, ok := s.pool.NearestGroundSword(feet, s.config.Collision.PickupReach)
	if !ok {
		return
	}
	sword, ok := s.pool.TakeSword(id, p.Side)
	if !ok {
		return
	}
	p.Sword = sword
	s.Fire(p, EvPickUp)
	s.emit(PlaySound{Sound: SoundPickup})
}

// handleMovement walks the player. A fresh press shows the step pose, a key
// held past the step threshold walks. While moving the facing follows the
// keys; otherwise the player turns towards the opponent.
func (s *CombatSystem) handleMovement(p, opp *entity.Player, dir int, in Input) {
	id := p.Anim.ID()
	if !anim.IsMoving(id) && id != anim.Unarmed && !anim.IsIdle(id) {
		p.VX = 0
		return
	}

	if dir == 0 {
		s.physics.Walk(&p.Body, 0)
		s.Fire(p, EvStop)
		p.Facing = toward(p, opp)
		return
	}

	s.physics.Walk(&p.Body, dir)
	key := ActionRight
	p.Facing = geom.Right
	if dir < 0 {
		key = ActionLeft
		p.Facing = geom.Left
	}
	if in.HeldDuration(key) > millis(s.config.Movement.StepThresholdMs) {
		s.Fire(p, EvWalk)
	} else {
		s.Fire(p, EvMove)
	}
}

func (s *CombatSystem) holdThreshold() time.Duration {
	return millis(s.config.Combat.HoldThresholdMs)
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// walkDir returns -1, 0 or +1 from the movement keys. Both keys cancel out,
// and a wall on the requested side stops the walk.
func walkDir(in Input, t Terrain) int {
	left, right := in.IsKeyDown(ActionLeft), in.IsKeyDown(ActionRight)
	switch {
	case left && !right && !t.WallLeft:
		return -1
	case right && !left && !t.WallRight:
		return 1
	}
	return 0
}

func toward(p, opp *entity.Player) geom.Direction {
	if opp.X < p.X {
		return geom.Left
	}
	return geom.Right
}

func away(p, opp *entity.Player) geom.Direction {
	return toward(p, opp).Opposite()
}

func center(r geom.Rect) geom.Point {
	return geom.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
