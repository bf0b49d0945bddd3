package system

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

//go:generate go tool mockgen -destination=./mocks/input_mock.go -package=mocks . Input

// Action is a logical player control
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionStab
	ActionJump

	actionCount
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionStab:
		return "stab"
	case ActionJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Input is one player's view of the keyboard for the current tick
type Input interface {
	IsKeyDown(a Action) bool
	IsKeyPressedThisTick(a Action) bool
	IsKeyReleasedThisTick(a Action) bool
	HeldDuration(a Action) time.Duration
}

// Bindings maps every action to the keys that trigger it
type Bindings [actionCount][]ebiten.Key

// ParseBindings converts key names from game.json into ebiten keys
func ParseBindings(cfg config.ControlsConfig) (Bindings, error) {
	var b Bindings
	names := [actionCount][]string{
		ActionLeft:  cfg.Left,
		ActionRight: cfg.Right,
		ActionUp:    cfg.Up,
		ActionDown:  cfg.Down,
		ActionStab:  cfg.Stab,
		ActionJump:  cfg.Jump,
	}
	for a, keys := range names {
		if len(keys) == 0 {
			return b, fmt.Errorf("no key bound to %s", Action(a))
		}
		for _, name := range keys {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return b, fmt.Errorf("failed to parse key for %s: %w", Action(a), err)
			}
			b[a] = append(b[a], k)
		}
	}
	return b, nil
}

// EbitenInput reads a player's bindings from ebiten's keyboard state
type EbitenInput struct {
	bindings Bindings
}

// NewEbitenInput creates keyboard input for one player
func NewEbitenInput(bindings Bindings) *EbitenInput {
	return &EbitenInput{bindings: bindings}
}

// IsKeyDown reports whether any key of the action is held
func (in *EbitenInput) IsKeyDown(a Action) bool {
	for _, k := range in.keys(a) {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// IsKeyPressedThisTick reports whether a key of the action went down this tick
func (in *EbitenInput) IsKeyPressedThisTick(a Action) bool {
	for _, k := range in.keys(a) {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsKeyReleasedThisTick reports whether a key of the action went up this tick
func (in *EbitenInput) IsKeyReleasedThisTick(a Action) bool {
	for _, k := range in.keys(a) {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

// HeldDuration returns how long the action has been held, zero when released
func (in *EbitenInput) HeldDuration(a Action) time.Duration {
	ticks := 0
	for _, k := range in.keys(a) {
		ticks = max(ticks, inpututil.KeyPressDuration(k))
	}
	return ticksToDuration(ticks, ebiten.TPS())
}

func (in *EbitenInput) keys(a Action) []ebiten.Key {
	if a < 0 || a >= actionCount {
		return nil
	}
	return in.bindings[a]
}

func ticksToDuration(ticks, tps int) time.Duration {
	if ticks <= 0 || tps <= 0 {
		return 0
	}
	return time.Duration(ticks) * time.Second / time.Duration(tps)
}

// NoInput is a player that never touches the keyboard (headless runs)
type NoInput struct{}

func (NoInput) IsKeyDown(Action) bool { return false }
func (NoInput) IsKeyPressedThisTick(Action) bool { return false }
func (NoInput) IsKeyReleasedThisTick(Action) bool { return false }
func (NoInput) HeldDuration(Action) time.Duration { return 0 }
