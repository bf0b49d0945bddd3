package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// Update advances loose swords and emitter lifetimes by dt seconds
func (w *World) Update(dt float64) {
	w.updateSwords(dt)
	w.updateEmitters(dt)
}

func (w *World) updateSwords(dt float64) {
	toDestroy := make([]donburi.Entity, 0)

	Sword.Each(w.world, func(entry *donburi.Entry) {
		s := Sword.Get(entry)
		if s.Resting {
			return
		}

		gravity := w.cfg.Gravity
		if s.State == entity.SwordThrown {
			gravity = w.cfg.ThrowGravity
		}
		s.Update(dt, gravity, w.cfg.MaxFallSpeed)
		dx, dy := s.ApplyVelocity(dt)

		// Pixel stepping for collision detection
		for range geom.Abs(dx) {
			next := s.Pos().Add(geom.Point{X: geom.Sign(dx)})
			if w.isSolidAt(next) {
				s.StopHorizontal()
				break
			}
			s.X += float64(geom.Sign(dx))
		}
		for range geom.Abs(dy) {
			next := s.Pos().Add(geom.Point{Y: geom.Sign(dy)})
			if w.isSolidAt(next) {
				if dy > 0 {
					s.Land(s.Pos().Y)
				} else {
					s.VY = 0
					s.RemY = 0
				}
				break
			}
			s.Y += float64(geom.Sign(dy))
		}

		if w.outOfBounds(s.Pos()) {
			toDestroy = append(toDestroy, entry.Entity())
		}
	})

	for _, e := range toDestroy {
		w.world.Remove(e)
	}
}

func (w *World) updateEmitters(dt float64) {
	toDestroy := make([]donburi.Entity, 0)

	Emitter.Each(w.world, func(entry *donburi.Entry) {
		em := Emitter.Get(entry)
		em.TTL -= dt
		if em.TTL <= 0 {
			toDestroy = append(toDestroy, entry.Entity())
		}
	})

	for _, e := range toDestroy {
		w.world.Remove(e)
	}
}

func (w *World) isSolidAt(p geom.Point) bool {
	for _, o := range w.solids {
		if p.X >= o.X && p.X < o.Right() && p.Y >= o.Y && p.Y < o.Bottom() {
			return true
		}
	}
	return false
}

func (w *World) outOfBounds(p geom.Point) bool {
	return p.X < 0 || p.X > w.width || p.Y > w.height
}
