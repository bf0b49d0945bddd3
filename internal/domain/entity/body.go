package entity

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/swordduel/internal/domain/geom"
)

// PositionScale is the internal position scale factor.
// 1 pixel = 100 internal units. This provides 0.01 pixel precision.
const PositionScale = 100

// Body represents the physical body of an entity
// Position is stored at 100x scale for sub-pixel precision without floats.
// Velocity is stored as float in 100x scale units per second.
type Body struct {
	X, Y   int     // 100x scaled position (divide by PositionScale for pixels)
	VX, VY float64 // 100x scaled velocity (units per second)

	Facing   geom.Direction
	OnGround bool
	Ground   *Obstacle // obstacle the body stands on, nil while airborne

	knockback     *gween.Tween
	knockbackDone int // scaled units already applied
	knockbackSign int
}

// PixelX returns the pixel X position (internal X / PositionScale)
func (b *Body) PixelX() int {
	return b.X / PositionScale
}

// PixelY returns the pixel Y position (internal Y / PositionScale)
func (b *Body) PixelY() int {
	return b.Y / PositionScale
}

// Pixel returns the pixel position
func (b *Body) Pixel() geom.Point {
	return geom.Point{X: b.PixelX(), Y: b.PixelY()}
}

// SetPixelPos sets the position from pixel coordinates (converts to 100x scale)
func (b *Body) SetPixelPos(x, y int) {
	b.X = x * PositionScale
	b.Y = y * PositionScale
}

// SetVelocity sets both velocity components. Non-finite values are rejected
// and leave the body untouched.
func (b *Body) SetVelocity(vx, vy float64) error {
	if !finite(vx) || !finite(vy) {
		return fmt.Errorf("%w: velocity (%v, %v)", ErrInvalidArgument, vx, vy)
	}
	b.VX, b.VY = vx, vy
	return nil
}

// CheckVelocity reports a non-finite velocity
func (b *Body) CheckVelocity() error {
	if !finite(b.VX) || !finite(b.VY) {
		return fmt.Errorf("%w: velocity (%v, %v)", ErrInvalidArgument, b.VX, b.VY)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ApplyVelocity applies velocity to position, returning integer units to move.
// With 100x scale, no remainder accumulation is needed as precision is built-in.
func (b *Body) ApplyVelocity(dt float64) (dx, dy int) {
	dx = int(b.VX * dt)
	dy = int(b.VY * dt)
	return dx, dy
}

// StartKnockback pushes the body distance pixels towards dir over duration seconds.
// A knockback already in progress is replaced.
func (b *Body) StartKnockback(distance float64, dir geom.Direction, duration float64) {
	if distance <= 0 || duration <= 0 {
		return
	}
	end := float32(distance * float64(dir.Sign()) * PositionScale)
	b.knockback = gween.New(0, end, float32(duration), ease.OutQuad)
	b.knockbackDone = 0
	b.knockbackSign = dir.Sign()
}

// KnockbackStep advances the knockback tween and returns the horizontal
// displacement in scaled units for this step.
func (b *Body) KnockbackStep(dt float64) int {
	if b.knockback == nil {
		return 0
	}
	cur, finished := b.knockback.Update(float32(dt))
	delta := int(cur) - b.knockbackDone
	b.knockbackDone = int(cur)
	if finished {
		b.StopKnockback()
	}
	return delta
}

// InKnockback reports whether a knockback tween is running
func (b *Body) InKnockback() bool {
	return b.knockback != nil
}

// KnockbackSign returns the push direction (-1 or +1), 0 when not knocked back
func (b *Body) KnockbackSign() int {
	if b.knockback == nil {
		return 0
	}
	return b.knockbackSign
}

// StopKnockback cancels a running knockback, e.g. when hitting a wall
func (b *Body) StopKnockback() {
	b.knockback = nil
	b.knockbackDone = 0
	b.knockbackSign = 0
}
