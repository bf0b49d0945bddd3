package entity

import (
	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// ErrInvalidArgument is returned when a caller passes a value that would corrupt entity state.
var ErrInvalidArgument = anim.ErrInvalidArgument

// EntityID is a unique identifier for an entity
type EntityID uint32

// Kind tags the closed set of entity variants the world knows about.
type Kind int

const (
	KindPlayer Kind = iota
	KindSword
	KindObstacle
	KindParticleEmitter
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindSword:
		return "Sword"
	case KindObstacle:
		return "Obstacle"
	case KindParticleEmitter:
		return "ParticleEmitter"
	default:
		return "Unknown"
	}
}

// Entity is implemented by every world entity variant.
// The renderer dispatches on Kind to pick how to draw each entity.
type Entity interface {
	Kind() Kind
}

// Obstacle is a static level rectangle. Decor obstacles are drawn but never collide.
type Obstacle struct {
	geom.Rect
	Decor bool
}

// Kind implements Entity
func (Obstacle) Kind() Kind { return KindObstacle }

// Level holds the immutable geometry of the arena
type Level struct {
	Name      string
	Width     int
	Height    int
	Obstacles []Obstacle
	Spawns    [2]geom.Point
}

// Spawn returns the spawn point for the given side (0 or 1)
func (l *Level) Spawn(side int) geom.Point {
	if side < 0 || side > 1 {
		return l.Spawns[0]
	}
	return l.Spawns[side]
}

// Solids returns the obstacles that take part in terrain collision, in level order
func (l *Level) Solids() []Obstacle {
	solids := make([]Obstacle, 0, len(l.Obstacles))
	for _, o := range l.Obstacles {
		if !o.Decor {
			solids = append(solids, o)
		}
	}
	return solids
}

// ParticleKind selects the visual of a particle emitter
type ParticleKind int

const (
	ParticleBlood ParticleKind = iota
	ParticleSpark
	ParticleDust
)

// Emitter is a short-lived particle source requested by the combat code
type Emitter struct {
	Pos      geom.Point
	Particle ParticleKind
	TTL      float64 // seconds
}

// Kind implements Entity
func (Emitter) Kind() Kind { return KindParticleEmitter }
