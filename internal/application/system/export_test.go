package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

// Fixtures shared with the external system_test package.

// TestTick is one frame at 60 fps
const TestTick = 1.0 / 60

// BoxGeometry is a 16x32 frame whose body spans x 2..12 and rows 0..30,
// listed as a left and a right point per row.
func BoxGeometry(grip *geom.Point, angle float64) anim.Geometry {
	outline := make([]geom.Point, 0, 62)
	for y := 0; y <= 30; y++ {
		outline = append(outline, geom.Point{X: 2, Y: y}, geom.Point{X: 12, Y: y})
	}
	return anim.NewGeometry(16, 32, outline, grip, angle)
}

func gripAt(x, y int) *geom.Point {
	return &geom.Point{X: x, Y: y}
}

// NewTestStore registers three frames per animation. Idle grips sit at
// x 14, stab grips reach further at x 22; the row depends on the stance.
func NewTestStore(t *testing.T, override map[anim.ID]anim.Geometry) *anim.Store {
	t.Helper()

	geometry := map[anim.ID]anim.Geometry{
		anim.IdleLow:  BoxGeometry(gripAt(14, 20), 0),
		anim.IdleMid:  BoxGeometry(gripAt(14, 12), 0),
		anim.IdleHigh: BoxGeometry(gripAt(14, 4), 0),
		anim.StabLow:  BoxGeometry(gripAt(22, 20), 0),
		anim.StabMid:  BoxGeometry(gripAt(22, 12), 0),
		anim.StabHigh: BoxGeometry(gripAt(22, 4), 0),
		anim.HoldUp:   BoxGeometry(gripAt(14, 28), -90),
		anim.Unarmed:  BoxGeometry(nil, 0),
		anim.Punch:    BoxGeometry(nil, 0),
		anim.PickUp:   BoxGeometry(nil, 0),
		anim.Dying:    BoxGeometry(nil, 0),
	}
	for id, g := range override {
		geometry[id] = g
	}

	store := anim.NewStore()
	for _, id := range anim.All() {
		g, ok := geometry[id]
		if !ok {
			g = BoxGeometry(gripAt(14, 12), 0)
		}
		require.NoError(t, store.Register(id, g, g, g))
	}
	store.Seal()
	return store
}

// NewTestConfig mirrors the shipped game.json
func NewTestConfig() *config.GameConfig {
	return &config.GameConfig{
		Physics:  config.PhysicsSettings{Gravity: 900, MaxFallSpeed: 420},
		Movement: config.MovementConfig{WalkSpeed: 90, StepThresholdMs: 100, DropKickSpeed: 150, DropKickDecel: 120},
		Jump: config.JumpConfig{
			Force:         330,
			PeakThreshold: 60,
			FallThreshold: 60,
			HoldAccel:     600,
			MaxHoldScale:  1.5,
		},
		Collision: config.CollisionConfig{
			GroundTolerance: 3,
			WallTolerance:   3,
			WallBand:        6,
			ClashYTolerance: 2,
			PickupReach:     16,
			CellSize:        16,
		},
		Sword: config.SwordConfig{Length: 20, ThrowSpeed: 260, ThrowGravity: 120},
		Combat: config.CombatConfig{
			HoldThresholdMs: 250,
			RespawnMs:       1000,
			EmitterTTL:      0.4,
			Knockback:       config.KnockbackConfig{Distance: 12, Duration: 0.2},
		},
	}
}

// NewTestLevel is a 400x240 arena: floor at y 200, a wall at x 300 and a
// low ceiling block over x 100..160.
func NewTestLevel() *entity.Level {
	return &entity.Level{
		Name:   "test",
		Width:  400,
		Height: 240,
		Obstacles: []entity.Obstacle{
			{Rect: geom.Rect{X: 0, Y: 200, W: 400, H: 40}},
			{Rect: geom.Rect{X: 300, Y: 0, W: 20, H: 200}},
			{Rect: geom.Rect{X: 100, Y: 100, W: 60, H: 10}},
			{Rect: geom.Rect{X: 200, Y: 120, W: 40, H: 40}, Decor: true},
		},
		Spawns: [2]geom.Point{{X: 60, Y: 170}, {X: 240, Y: 170}},
	}
}

// NewTestPlayer places an armed player at a pixel position in the given animation
func NewTestPlayer(t *testing.T, store *anim.Store, side, x, y int, facing geom.Direction, id anim.ID) *entity.Player {
	t.Helper()
	p, err := entity.NewPlayer(side, geom.Point{X: x, Y: y}, facing, store, anim.DefaultTiming())
	require.NoError(t, err)
	p.Anim.Set(id)
	return p
}
