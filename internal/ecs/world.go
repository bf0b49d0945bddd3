// Package ecs is the world pool: the short-lived entities (loose swords and
// particle emitters) that players create during a match.
package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// Config holds world pool physics in pixels per second
type Config struct {
	Gravity      float64
	MaxFallSpeed float64
	ThrowGravity float64 // gravity applied to a sword in flight
	ThrowSpeed   float64
	EmitterTTL   float64 // seconds
}

// World holds the pooled entities on top of a donburi world
type World struct {
	world  donburi.World
	nextID entity.EntityID
	cfg    Config

	solids []entity.Obstacle
	width  int
	height int
}

// NewWorld creates an empty pool for a level
func NewWorld(level *entity.Level, cfg Config) *World {
	return &World{
		world:  donburi.NewWorld(),
		nextID: 1, // 0 is "nil"
		cfg:    cfg,
		solids: level.Solids(),
		width:  level.Width,
		height: level.Height,
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DropSword puts a falling sword into the pool at pos
func (w *World) DropSword(pos geom.Point, dir geom.Direction, owner int) entity.EntityID {
	s := entity.NewSword(owner)
	s.Drop(pos, dir)
	return w.addSword(s)
}

// ThrowSword launches a sword from pos
func (w *World) ThrowSword(pos geom.Point, dir geom.Direction, owner int) entity.EntityID {
	s := entity.NewSword(owner)
	s.Throw(pos, dir, w.cfg.ThrowSpeed)
	return w.addSword(s)
}

func (w *World) addSword(s *entity.Sword) entity.EntityID {
	s.ID = w.NewEntity()
	e := w.world.Create(Sword, LooseSword)
	Sword.SetValue(w.world.Entry(e), *s)
	return s.ID
}

// SpawnEmitter starts a particle emitter at pos
func (w *World) SpawnEmitter(pos geom.Point, kind entity.ParticleKind) entity.EntityID {
	id := w.NewEntity()
	e := w.world.Create(Emitter, ParticleEmitter)
	Emitter.SetValue(w.world.Entry(e), EmitterData{
		ID:      id,
		Emitter: entity.Emitter{Pos: pos, Particle: kind, TTL: w.cfg.EmitterTTL},
	})
	return id
}

// GroundSword stops a thrown sword in mid-air and lets it fall
func (w *World) GroundSword(id entity.EntityID) bool {
	entry := w.findSword(id)
	if entry == nil {
		return false
	}
	s := Sword.Get(entry)
	s.StopHorizontal()
	s.State = entity.SwordOnGround
	return true
}

// TakeSword removes a grounded sword from the pool and hands it to side
func (w *World) TakeSword(id entity.EntityID, side int) (*entity.Sword, bool) {
	entry := w.findSword(id)
	if entry == nil {
		return nil, false
	}
	s := *Sword.Get(entry)
	if s.State != entity.SwordOnGround {
		return nil, false
	}
	w.world.Remove(entry.Entity())

	return entity.NewSword(side), true
}

// NearestGroundSword returns the grounded sword closest to pos horizontally,
// within reach pixels on x and y.
func (w *World) NearestGroundSword(pos geom.Point, reach int) (entity.EntityID, bool) {
	var (
		best     entity.EntityID
		bestDist = -1
	)
	Sword.Each(w.world, func(entry *donburi.Entry) {
		s := Sword.Get(entry)
		if s.State != entity.SwordOnGround {
			return
		}
		p := s.Pos()
		dx, dy := geom.Abs(p.X-pos.X), geom.Abs(p.Y-pos.Y)
		if dx > reach || dy > reach {
			return
		}
		if bestDist < 0 || dx < bestDist {
			best, bestDist = s.ID, dx
		}
	})
	return best, bestDist >= 0
}

func (w *World) findSword(id entity.EntityID) *donburi.Entry {
	var found *donburi.Entry
	Sword.Each(w.world, func(entry *donburi.Entry) {
		if found == nil && Sword.Get(entry).ID == id {
			found = entry
		}
	})
	return found
}

// Swords returns a snapshot of every loose sword
func (w *World) Swords() []entity.Sword {
	var swords []entity.Sword
	Sword.Each(w.world, func(entry *donburi.Entry) {
		swords = append(swords, *Sword.Get(entry))
	})
	return swords
}

// Emitters returns a snapshot of every live emitter
func (w *World) Emitters() []entity.Emitter {
	var emitters []entity.Emitter
	Emitter.Each(w.world, func(entry *donburi.Entry) {
		emitters = append(emitters, Emitter.Get(entry).Emitter)
	})
	return emitters
}

// Len returns the number of pooled entities
func (w *World) Len() int {
	return w.world.Len()
}
