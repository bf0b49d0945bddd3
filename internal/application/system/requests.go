package system

import (
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

//go:generate go tool mockgen -destination=./mocks/requests_mock.go -package=mocks . Audio,SwordPool

// Request is a side effect the combat code asks the match to carry out
// after the tick. Requests are queued in order and flushed once per tick.
type Request interface {
	isRequest()
}

// PlaySound asks for a sound effect
type PlaySound struct {
	Sound Sound
}

func (PlaySound) isRequest() {}

// DropSword puts a released sword into the world pool
type DropSword struct {
	Side int
	Pos  geom.Point
	Dir  geom.Direction
}

func (DropSword) isRequest() {}

// ThrowSword launches a sword into the world pool
type ThrowSword struct {
	Side int
	Pos  geom.Point
	Dir  geom.Direction
}

func (ThrowSword) isRequest() {}

// GroundSword stops a thrown sword after it struck a player
type GroundSword struct {
	ID entity.EntityID
}

func (GroundSword) isRequest() {}

// SpawnParticles starts a particle emitter
type SpawnParticles struct {
	Pos  geom.Point
	Kind entity.ParticleKind
}

func (SpawnParticles) isRequest() {}

// Killed reports a death; Killer is -1 when nobody scored
type Killed struct {
	Victim int
	Killer int
	Cause  string
}

func (Killed) isRequest() {}

// Disarmed reports a sword knocked out of a player's hand
type Disarmed struct {
	Side int
}

func (Disarmed) isRequest() {}

// Respawned reports a player back in the arena
type Respawned struct {
	Side int
	Pos  geom.Point
}

func (Respawned) isRequest() {}

// Sound identifies a sound effect
type Sound int

const (
	SoundSwing Sound = iota
	SoundPunch
	SoundHit
	SoundBlock
	SoundClash
	SoundThrow
	SoundPickup
	SoundKick
)

// String returns the string representation of the sound
func (s Sound) String() string {
	switch s {
	case SoundSwing:
		return "swing"
	case SoundPunch:
		return "punch"
	case SoundHit:
		return "hit"
	case SoundBlock:
		return "block"
	case SoundClash:
		return "clash"
	case SoundThrow:
		return "throw"
	case SoundPickup:
		return "pickup"
	case SoundKick:
		return "kick"
	default:
		return "unknown"
	}
}

// Audio plays sound effects
type Audio interface {
	Play(s Sound)
}

// SwordPool is the part of the world pool the combat code reads from
type SwordPool interface {
	NearestGroundSword(pos geom.Point, reach int) (entity.EntityID, bool)
	TakeSword(id entity.EntityID, side int) (*entity.Sword, bool)
}
