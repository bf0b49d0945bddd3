package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/swordduel/internal/domain/entity"
)

// Components stored in the world pool. Players and obstacles live outside the
// pool; only loose swords and particle emitters are pooled.
var (
	Sword   = donburi.NewComponentType[entity.Sword]()
	Emitter = donburi.NewComponentType[EmitterData]()
)

// Tags
var (
	LooseSword      = donburi.NewTag().SetName("LooseSword")
	ParticleEmitter = donburi.NewTag().SetName("ParticleEmitter")
)

// EmitterData is an emitter plus its pool identity
type EmitterData struct {
	ID entity.EntityID
	entity.Emitter
}
