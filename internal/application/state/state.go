// Package state holds the screen state of a duel.
package state

// GameState is where the duel on screen stands
type GameState int

const (
	// StateCountdown: the round is opening, both fighters wait for GO
	StateCountdown GameState = iota
	// StateFighting: the controls are live
	StateFighting
	StatePaused
	// StateHalted: the match hit an error and stopped for good
	StateHalted
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateCountdown:
		return "Countdown"
	case StateFighting:
		return "Fighting"
	case StatePaused:
		return "Paused"
	case StateHalted:
		return "Halted"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the match advances in this state. The world keeps
// moving during the countdown so both fighters settle before GO.
func (s GameState) Ticking() bool {
	return s == StateCountdown || s == StateFighting
}

// Live returns the running state for a match whose controls are locked or not
func Live(locked bool) GameState {
	if locked {
		return StateCountdown
	}
	return StateFighting
}
