package entity

import (
	"math"

	"github.com/younwookim/swordduel/internal/domain/geom"
)

// SwordState is the life-cycle stage of a sword
type SwordState int

const (
	SwordHeld SwordState = iota
	SwordThrown
	SwordOnGround
)

// String returns the string representation of the sword state
func (s SwordState) String() string {
	switch s {
	case SwordHeld:
		return "held"
	case SwordThrown:
		return "thrown"
	case SwordOnGround:
		return "on_ground"
	default:
		return "unknown"
	}
}

// Sword is a blade either held by a player or loose in the world pool.
// While loose, X/Y is the grip position in pixels.
type Sword struct {
	ID    EntityID // assigned by the world pool, zero while held
	State SwordState
	Owner int // side that last held the sword

	X, Y   float64
	VX, VY float64 // pixels per second
	RemX   float64 // Sub-pixel remainder
	RemY   float64
	Dir    geom.Direction

	Resting bool // on the ground and no longer falling
}

// NewSword creates a held sword for a side
func NewSword(owner int) *Sword {
	return &Sword{State: SwordHeld, Owner: owner}
}

// Kind implements Entity
func (s *Sword) Kind() Kind { return KindSword }

// Pos returns the grip position in pixels
func (s *Sword) Pos() geom.Point {
	return geom.Point{X: int(math.Round(s.X)), Y: int(math.Round(s.Y))}
}

// Tip returns the blade tip of a loose sword; loose swords lie flat
func (s *Sword) Tip(length int) geom.Point {
	p := s.Pos()
	return geom.Point{X: p.X + length*s.Dir.Sign(), Y: p.Y}
}

// Throw launches the sword horizontally from pos
func (s *Sword) Throw(pos geom.Point, dir geom.Direction, speed float64) {
	s.State = SwordThrown
	s.X, s.Y = float64(pos.X), float64(pos.Y)
	s.VX = speed * float64(dir.Sign())
	s.VY = 0
	s.RemX, s.RemY = 0, 0
	s.Dir = dir
	s.Resting = false
}

// Drop lets the sword fall from pos
func (s *Sword) Drop(pos geom.Point, dir geom.Direction) {
	s.State = SwordOnGround
	s.X, s.Y = float64(pos.X), float64(pos.Y)
	s.VX, s.VY = 0, 0
	s.RemX, s.RemY = 0, 0
	s.Dir = dir
	s.Resting = false
}

// Update applies gravity to a loose sword (movement handled separately)
func (s *Sword) Update(dt, gravity, maxFallSpeed float64) {
	if s.State == SwordHeld || s.Resting {
		return
	}
	s.VY += gravity * dt
	if s.VY > maxFallSpeed {
		s.VY = maxFallSpeed
	}
}

// ApplyVelocity calculates pixels to move and accumulates remainder
func (s *Sword) ApplyVelocity(dt float64) (dx, dy int) {
	moveX := s.VX*dt + s.RemX
	moveY := s.VY*dt + s.RemY

	dx = int(moveX)
	dy = int(moveY)

	s.RemX = moveX - float64(dx)
	s.RemY = moveY - float64(dy)

	return dx, dy
}

// Land settles the sword on a surface at y
func (s *Sword) Land(y int) {
	s.State = SwordOnGround
	s.Y = float64(y)
	s.VX, s.VY = 0, 0
	s.RemX, s.RemY = 0, 0
	s.Resting = true
}

// StopHorizontal kills the horizontal motion after hitting a wall
func (s *Sword) StopHorizontal() {
	s.VX = 0
	s.RemX = 0
	if s.State == SwordThrown {
		s.State = SwordOnGround
	}
}
