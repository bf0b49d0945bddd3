package entity

import (
	"fmt"

	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// Player represents one of the two duelists
type Player struct {
	Body

	Side      int // 0 = player one, 1 = player two
	Alive     bool
	Sword     *Sword // nil while disarmed, after a throw and while dead
	Stance    anim.Stance
	Anim      anim.State
	RespawnMs float64 // time left before a dead player respawns

	// Box is the outline extent relative to the body position. It is taken
	// once from the idle frame (both facings) and used for terrain collision.
	Box geom.Rect
}

// NewPlayer creates an armed player standing at spawn (pixel coordinates)
func NewPlayer(side int, spawn geom.Point, facing geom.Direction, store *anim.Store, timing *anim.Timing) (*Player, error) {
	if side < 0 || side > 1 {
		return nil, fmt.Errorf("%w: player side %d", ErrInvalidArgument, side)
	}
	idle, err := store.Get(anim.IdleMid, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to derive player box: %w", err)
	}

	p := &Player{
		Body: Body{
			X:      spawn.X * PositionScale,
			Y:      spawn.Y * PositionScale,
			Facing: facing,
		},
		Side:   side,
		Alive:  true,
		Sword:  NewSword(side),
		Stance: anim.StanceMid,
		Anim:   anim.NewState(store, timing, anim.IdleMid),
		Box:    union(idle.Bounds(geom.Right), idle.Bounds(geom.Left)),
	}
	return p, nil
}

func union(a, b geom.Rect) geom.Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.Right(), b.Right()), max(a.Bottom(), b.Bottom())
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Kind implements Entity
func (p *Player) Kind() Kind { return KindPlayer }

// WorldBox returns the collision box in world pixels
func (p *Player) WorldBox() geom.Rect {
	return p.Box.Translate(p.Pixel())
}

// FeetOffset is the distance from the body position to the bottom of the box
func (p *Player) FeetOffset() int {
	return p.Box.Bottom()
}

// Armed reports whether the player holds a sword
func (p *Player) Armed() bool {
	return p.Sword != nil
}

// ReleaseSword takes the sword out of the player's hand
func (p *Player) ReleaseSword() *Sword {
	s := p.Sword
	p.Sword = nil
	return s
}

// SetRespawnMs sets the respawn delay. Negative or non-finite delays are
// rejected and leave the timer untouched.
func (p *Player) SetRespawnMs(ms float64) error {
	if ms < 0 || !finite(ms) {
		return fmt.Errorf("%w: respawn delay %v ms", ErrInvalidArgument, ms)
	}
	p.RespawnMs = ms
	return nil
}

// Kill marks the player dead and returns the sword that was dropped, if any.
// A bad respawn delay fails before the player is touched.
func (p *Player) Kill(respawnMs float64) (*Sword, error) {
	if err := p.SetRespawnMs(respawnMs); err != nil {
		return nil, err
	}
	p.Alive = false
	p.VX = 0
	p.StopKnockback()
	p.Anim.Set(anim.Dying)
	return p.ReleaseSword(), nil
}

// Respawn brings a dead player back at spawn with a fresh sword
func (p *Player) Respawn(spawn geom.Point, facing geom.Direction) {
	p.SetPixelPos(spawn.X, spawn.Y)
	p.VX, p.VY = 0, 0
	p.Facing = facing
	p.OnGround = false
	p.Ground = nil
	p.StopKnockback()
	p.Alive = true
	p.RespawnMs = 0
	p.Sword = NewSword(p.Side)
	p.Stance = anim.StanceMid
	p.Anim.Set(anim.IdleMid)
}
