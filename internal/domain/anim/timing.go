package anim

import "fmt"

// Clip describes how an animation plays back
type Clip struct {
	FrameMs float64
	Loop    bool
}

// Timing is the per-animation frame duration table
type Timing struct {
	clips map[ID]Clip
}

// DefaultFrameMs is used for animations missing from the table
const DefaultFrameMs = 100.0

// DefaultTiming returns the built-in playback table
func DefaultTiming() *Timing {
	return &Timing{clips: map[ID]Clip{
		IdleLow:   {FrameMs: 150, Loop: true},
		IdleMid:   {FrameMs: 150, Loop: true},
		IdleHigh:  {FrameMs: 150, Loop: true},
		Walk:      {FrameMs: 80, Loop: true},
		Step:      {FrameMs: 50},
		StabLow:   {FrameMs: 50},
		StabMid:   {FrameMs: 50},
		StabHigh:  {FrameMs: 50},
		HoldUp:    {FrameMs: 120, Loop: true},
		Throw:     {FrameMs: 60},
		Unarmed:   {FrameMs: 150, Loop: true},
		Punch:     {FrameMs: 60},
		Crouch:    {FrameMs: 100},
		PickUp:    {FrameMs: 80},
		JumpStart: {FrameMs: 80},
		JumpPeak:  {FrameMs: 80},
		JumpEnd:   {FrameMs: 80},
		DropKick:  {FrameMs: 70},
		Dying:     {FrameMs: 120},
	}}
}

// Set overrides the playback of one animation
func (t *Timing) Set(id ID, clip Clip) error {
	if clip.FrameMs <= 0 {
		return fmt.Errorf("%w: frame duration for %s must be positive, got %v", ErrInvalidArgument, id, clip.FrameMs)
	}
	t.clips[id] = clip
	return nil
}

// Clip returns the playback for id
func (t *Timing) Clip(id ID) Clip {
	if c, ok := t.clips[id]; ok {
		return c
	}
	return Clip{FrameMs: DefaultFrameMs}
}
