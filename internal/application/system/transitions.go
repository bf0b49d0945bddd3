package system

import "github.com/younwookim/swordduel/internal/domain/anim"

// Event drives the player state machine
type Event int

const (
	// input
	EvMove Event = iota
	EvWalk
	EvStop
	EvTapUp
	EvTapDown
	EvHoldUp
	EvReleaseUp
	EvHoldDown
	EvReleaseDown
	EvStab
	EvJump
	EvAirStab
	EvPickUp

	// collision outcomes
	EvKilled
	EvKnockback
	EvDisarmed

	// animation and body
	EvFrameComplete
	EvLand
	EvPeak
	EvFall
	EvWall
)

var eventNames = map[Event]string{
	EvMove:          "move",
	EvWalk:          "walk",
	EvStop:          "stop",
	EvTapUp:         "tap_up",
	EvTapDown:       "tap_down",
	EvHoldUp:        "hold_up",
	EvReleaseUp:     "release_up",
	EvHoldDown:      "hold_down",
	EvReleaseDown:   "release_down",
	EvStab:          "stab",
	EvJump:          "jump",
	EvAirStab:       "air_stab",
	EvPickUp:        "pick_up",
	EvKilled:        "killed",
	EvKnockback:     "knockback",
	EvDisarmed:      "disarmed",
	EvFrameComplete: "frame_complete",
	EvLand:          "land",
	EvPeak:          "peak",
	EvFall:          "fall",
	EvWall:          "wall",
}

// String returns the string representation of the event
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Pseudo-targets resolved against the player when a transition fires
const (
	// Rest is the idle pose of the player's stance, or Unarmed without a sword
	Rest anim.ID = -1 - iota
	// Strike is the stab of the player's stance, or Punch without a sword
	Strike
)

type transitionKey struct {
	from anim.ID
	ev   Event
}

// Transitions is the state machine: (state, event) -> next state
var Transitions = buildTransitions()

func buildTransitions() map[transitionKey]anim.ID {
	t := make(map[transitionKey]anim.ID)
	on := func(target anim.ID, ev Event, from ...anim.ID) {
		for _, id := range from {
			t[transitionKey{id, ev}] = target
		}
	}

	resting := []anim.ID{anim.IdleLow, anim.IdleMid, anim.IdleHigh, anim.Unarmed}
	grounded := append(resting, anim.Step, anim.Walk)

	// A fresh press steps; holding on past the step threshold walks
	on(anim.Step, EvMove, resting...)
	on(anim.Walk, EvWalk, append(resting, anim.Step)...)
	on(Rest, EvTapUp, resting...)
	on(Rest, EvTapDown, resting...)
	on(anim.HoldUp, EvHoldUp, grounded...)
	on(anim.Crouch, EvHoldDown, grounded...)
	on(Strike, EvStab, grounded...)
	on(anim.JumpStart, EvJump, grounded...)
	on(anim.JumpEnd, EvFall, append(grounded, anim.HoldUp)...)

	on(Rest, EvStop, anim.Step, anim.Walk)
	on(Rest, EvKnockback, anim.Step, anim.Walk)

	on(Rest, EvReleaseUp, anim.HoldUp)
	on(anim.Throw, EvStab, anim.HoldUp)

	on(Rest, EvReleaseDown, anim.Crouch)
	on(anim.PickUp, EvPickUp, anim.Crouch)

	on(Rest, EvFrameComplete, anim.StabLow, anim.StabMid, anim.StabHigh,
		anim.Throw, anim.Punch, anim.PickUp)

	on(anim.JumpPeak, EvPeak, anim.JumpStart)
	on(anim.JumpEnd, EvFall, anim.JumpPeak)
	on(anim.DropKick, EvAirStab, anim.JumpStart, anim.JumpPeak, anim.JumpEnd)
	on(anim.JumpEnd, EvWall, anim.DropKick)
	on(Rest, EvLand, anim.JumpStart, anim.JumpPeak, anim.JumpEnd, anim.DropKick)

	for _, id := range anim.All() {
		if id != anim.Dying {
			on(anim.Dying, EvKilled, id)
		}
		if id != anim.Dying && id != anim.Unarmed {
			on(anim.Unarmed, EvDisarmed, id)
		}
	}
	return t
}

// Next looks up the transition for an event. ok is false when the state
// ignores the event.
func Next(from anim.ID, ev Event) (anim.ID, bool) {
	to, ok := Transitions[transitionKey{from, ev}]
	return to, ok
}
