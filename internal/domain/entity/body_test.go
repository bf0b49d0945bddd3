package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/swordduel/internal/domain/geom"
)

func TestBody_PositionScale(t *testing.T) {
	// 1 pixel = 100 internal units
	assert.Equal(t, 100, PositionScale, "PositionScale should be 100")
}

func TestBody_PixelPosition(t *testing.T) {
	tests := []struct {
		name       string
		x, y       int // Internal 100x scaled position
		wantPixelX int
		wantPixelY int
	}{
		{name: "zero position", x: 0, y: 0, wantPixelX: 0, wantPixelY: 0},
		{name: "exact pixel boundary", x: 100, y: 200, wantPixelX: 1, wantPixelY: 2},
		{name: "sub-pixel position rounds down", x: 150, y: 250, wantPixelX: 1, wantPixelY: 2},
		{name: "large position", x: 32000, y: 24000, wantPixelX: 320, wantPixelY: 240},
		{name: "negative position", x: -100, y: -200, wantPixelX: -1, wantPixelY: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{X: tt.x, Y: tt.y}

			assert.Equal(t, tt.wantPixelX, b.PixelX(), "PixelX mismatch")
			assert.Equal(t, tt.wantPixelY, b.PixelY(), "PixelY mismatch")
			assert.Equal(t, geom.Point{X: tt.wantPixelX, Y: tt.wantPixelY}, b.Pixel())
		})
	}
}

func TestBody_SetPixelPos(t *testing.T) {
	tests := []struct {
		name   string
		pixelX int
		pixelY int
		wantX  int // Expected internal 100x scaled position
		wantY  int
	}{
		{name: "zero position", pixelX: 0, pixelY: 0, wantX: 0, wantY: 0},
		{name: "positive position", pixelX: 100, pixelY: 200, wantX: 10000, wantY: 20000},
		{name: "negative position", pixelX: -10, pixelY: -20, wantX: -1000, wantY: -2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{}
			b.SetPixelPos(tt.pixelX, tt.pixelY)

			assert.Equal(t, tt.wantX, b.X, "X mismatch")
			assert.Equal(t, tt.wantY, b.Y, "Y mismatch")
		})
	}
}

func TestBody_ApplyVelocity(t *testing.T) {
	// Velocities are in 100x units per second
	tests := []struct {
		name   string
		vx, vy float64
		dt     float64
		wantDX int
		wantDY int
	}{
		{name: "stationary", vx: 0, vy: 0, dt: 1.0 / 60.0, wantDX: 0, wantDY: 0},
		{name: "walk speed 120 pixels/sec", vx: 12000, vy: 0, dt: 1.0 / 60.0, wantDX: 200, wantDY: 0},
		{name: "falling 800 pixels/sec", vx: 0, vy: 80000, dt: 1.0 / 60.0, wantDX: 0, wantDY: 1333},
		{name: "negative velocity", vx: -100, vy: -50, dt: 0.016, wantDX: -1, wantDY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{VX: tt.vx, VY: tt.vy}

			dx, dy := b.ApplyVelocity(tt.dt)

			assert.Equal(t, tt.wantDX, dx, "dx mismatch")
			assert.Equal(t, tt.wantDY, dy, "dy mismatch")
		})
	}
}

func TestBody_SetVelocity(t *testing.T) {
	b := &Body{VX: 10, VY: 20}

	err := b.SetVelocity(math.NaN(), 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 10.0, b.VX, "rejected velocity leaves the body untouched")

	err = b.SetVelocity(0, math.Inf(1))
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	require.NoError(t, b.SetVelocity(-300, 50))
	assert.Equal(t, -300.0, b.VX)
	assert.NoError(t, b.CheckVelocity())

	b.VY = math.Inf(-1)
	assert.Error(t, b.CheckVelocity())
}

func TestBody_Knockback(t *testing.T) {
	b := &Body{}
	b.StartKnockback(10, geom.Left, 0.2)
	require.True(t, b.InKnockback())

	total := 0
	for i := 0; i < 20 && b.InKnockback(); i++ {
		step := b.KnockbackStep(0.02)
		assert.LessOrEqual(t, step, 0, "knockback to the left never moves right")
		total += step
	}

	assert.False(t, b.InKnockback())
	assert.Equal(t, -10*PositionScale, total)
	assert.Equal(t, 0, b.KnockbackStep(0.02))
}

func TestBody_KnockbackIgnoresZero(t *testing.T) {
	b := &Body{}
	b.StartKnockback(0, geom.Right, 0.2)
	assert.False(t, b.InKnockback())

	b.StartKnockback(5, geom.Right, 0.2)
	b.StopKnockback()
	assert.False(t, b.InKnockback())
}
