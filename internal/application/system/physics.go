package system

import (
	"fmt"
	"math"

	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

// PhysicsSystem integrates player bodies. Terrain contacts are not resolved
// here: the collision engine reports them and the combat system reacts.
type PhysicsSystem struct {
	config *config.GameConfig
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.GameConfig) *PhysicsSystem {
	return &PhysicsSystem{config: cfg}
}

// Integrate advances a body by dt seconds
func (s *PhysicsSystem) Integrate(body *entity.Body, dt float64) error {
	if err := body.CheckVelocity(); err != nil {
		return err
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt %v", entity.ErrInvalidArgument, dt)
	}

	s.applyGravity(body, dt)

	dx, dy := body.ApplyVelocity(dt)
	dx += body.KnockbackStep(dt)

	body.X += dx
	body.Y += dy
	return nil
}

// applyGravity accelerates an airborne body, clamped to the max fall speed
func (s *PhysicsSystem) applyGravity(body *entity.Body, dt float64) {
	if body.OnGround {
		return
	}

	body.VY += s.config.Physics.Gravity * entity.PositionScale * dt

	maxFall := s.config.Physics.MaxFallSpeed * entity.PositionScale
	if body.VY > maxFall {
		body.VY = maxFall
	}
}

// SnapToGround stands the body on top of an obstacle. feet is the distance
// from the body position to the bottom of its collision box.
func (s *PhysicsSystem) SnapToGround(body *entity.Body, ground *entity.Obstacle, feet int) {
	body.Y = (ground.Y - feet) * entity.PositionScale
	body.VY = 0
	body.OnGround = true
	body.Ground = ground
}

// LeaveGround clears the ground contact
func (s *PhysicsSystem) LeaveGround(body *entity.Body) {
	body.OnGround = false
	body.Ground = nil
}

// Jump launches a grounded body upwards. It returns the extra upward speed
// the jump may still gain while the key stays held.
func (s *PhysicsSystem) Jump(body *entity.Body) float64 {
	body.VY = -s.config.Jump.Force * entity.PositionScale
	s.LeaveGround(body)
	return max(s.config.Jump.MaxHoldScale-1, 0) * s.config.Jump.Force * entity.PositionScale
}

// HoldJump pushes a rising body further up, spending at most budget of
// extra speed. It returns the budget left.
func (s *PhysicsSystem) HoldJump(body *entity.Body, budget, dt float64) (float64, error) {
	if budget <= 0 || body.VY >= 0 {
		return 0, nil
	}
	dv := min(s.config.Jump.HoldAccel*entity.PositionScale*dt, budget)
	if err := body.SetVelocity(body.VX, body.VY-dv); err != nil {
		return 0, err
	}
	return budget - dv, nil
}

// Decelerate slows the horizontal speed towards zero without reversing it
func (s *PhysicsSystem) Decelerate(body *entity.Body, decel, dt float64) {
	dv := decel * entity.PositionScale * dt
	switch {
	case body.VX > dv:
		body.VX -= dv
	case body.VX < -dv:
		body.VX += dv
	default:
		body.VX = 0
	}
}

// Walk sets the horizontal speed towards dir, zero when dir is 0
func (s *PhysicsSystem) Walk(body *entity.Body, dir int) {
	body.VX = float64(dir) * s.config.Movement.WalkSpeed * entity.PositionScale
}
