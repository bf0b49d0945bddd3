// Package anim holds the animation identifiers, the per-frame hit-box geometry
// store and the per-player animation state.
package anim

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAnimation is returned when parsing an animation name fails
	ErrUnknownAnimation = errors.New("unknown animation")
	// ErrInvalidArgument is returned for values that would corrupt animation state
	ErrInvalidArgument = errors.New("invalid argument")
)

// ID identifies an animation. Animation identifiers double as the states of
// the player combat state machine.
type ID int

const (
	IdleLow ID = iota
	IdleMid
	IdleHigh
	Walk
	Step
	StabLow
	StabMid
	StabHigh
	HoldUp
	Throw
	Unarmed
	Punch
	Crouch
	PickUp
	JumpStart
	JumpPeak
	JumpEnd
	DropKick
	Dying

	count
)

var names = [count]string{
	IdleLow:   "idle_low",
	IdleMid:   "idle_mid",
	IdleHigh:  "idle_high",
	Walk:      "walk",
	Step:      "step",
	StabLow:   "stab_low",
	StabMid:   "stab_mid",
	StabHigh:  "stab_high",
	HoldUp:    "hold_up",
	Throw:     "throw",
	Unarmed:   "unarmed",
	Punch:     "punch",
	Crouch:    "crouch",
	PickUp:    "pick_up",
	JumpStart: "jump_start",
	JumpPeak:  "jump_peak",
	JumpEnd:   "jump_end",
	DropKick:  "drop_kick",
	Dying:     "dying",
}

// All returns every animation identifier in declaration order
func All() []ID {
	ids := make([]ID, 0, count)
	for id := ID(0); id < count; id++ {
		ids = append(ids, id)
	}
	return ids
}

// String returns the asset name of the animation
func (id ID) String() string {
	if id < 0 || id >= count {
		return fmt.Sprintf("anim(%d)", int(id))
	}
	return names[id]
}

// ParseID converts an asset name back into an ID
func ParseID(name string) (ID, error) {
	for id, n := range names {
		if n == name {
			return ID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
}

// Stance is the height at which an armed player holds the sword
type Stance int

const (
	StanceLow Stance = iota
	StanceMid
	StanceHigh
)

// Raise returns the next higher stance, saturating at High
func (s Stance) Raise() Stance {
	if s >= StanceHigh {
		return StanceHigh
	}
	return s + 1
}

// Lower returns the next lower stance, saturating at Low
func (s Stance) Lower() Stance {
	if s <= StanceLow {
		return StanceLow
	}
	return s - 1
}

// Idle returns the idle animation for a stance
func Idle(s Stance) ID {
	switch s {
	case StanceLow:
		return IdleLow
	case StanceHigh:
		return IdleHigh
	default:
		return IdleMid
	}
}

// Stab returns the stab animation for a stance
func Stab(s Stance) ID {
	switch s {
	case StanceLow:
		return StabLow
	case StanceHigh:
		return StabHigh
	default:
		return StabMid
	}
}

// IsIdle reports whether id is one of the armed idle poses
func IsIdle(id ID) bool {
	return id == IdleLow || id == IdleMid || id == IdleHigh
}

// IsStab reports whether id is one of the sword thrusts
func IsStab(id ID) bool {
	return id == StabLow || id == StabMid || id == StabHigh
}

// IsMoving reports whether id is a grounded move: a short step or a walk
func IsMoving(id ID) bool {
	return id == Step || id == Walk
}

// IsAirborne reports whether id belongs to the jump sequence
func IsAirborne(id ID) bool {
	return id == JumpStart || id == JumpPeak || id == JumpEnd || id == DropKick
}

// StabSuspended reports whether a sword held in this animation cannot stab.
// A step keeps the blade in its stance, so unlike Walk it still stabs.
func StabSuspended(id ID) bool {
	switch id {
	case Walk, HoldUp, JumpStart, JumpPeak, JumpEnd, Dying, Unarmed:
		return true
	}
	return false
}

// SwordBearing reports whether a player may hold a sword while in this animation.
// Frames of these animations must carry a grip point.
func SwordBearing(id ID) bool {
	switch id {
	case Unarmed, Punch, PickUp, Dying:
		return false
	}
	return true
}

// Attackable reports whether frames of this animation take part in body collision.
func Attackable(id ID) bool {
	return id != Dying
}
