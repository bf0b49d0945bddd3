package anim

import (
	"fmt"
	"math"

	"github.com/younwookim/swordduel/internal/domain/geom"
)

// State tracks the animation one player is playing
type State struct {
	store  *Store
	timing *Timing

	id      ID
	frame   int
	elapsed float64 // ms accumulated on the current frame
	loop    bool
	done    bool
}

// NewState creates a state playing id from its first frame
func NewState(store *Store, timing *Timing, id ID) State {
	return State{
		store:  store,
		timing: timing,
		id:     id,
		loop:   timing.Clip(id).Loop,
	}
}

// ID returns the current animation
func (s *State) ID() ID { return s.id }

// Frame returns the current frame index
func (s *State) Frame() int { return s.frame }

// Elapsed returns the time spent on the current frame in ms
func (s *State) Elapsed() float64 { return s.elapsed }

// Loops reports whether the current animation wraps around
func (s *State) Loops() bool { return s.loop }

// IsLastFrame reports whether a non-looping animation has played its final frame to the end
func (s *State) IsLastFrame() bool { return s.done }

// FinalFrame reports whether the current frame is the last one of the animation
func (s *State) FinalFrame() bool {
	return s.frame == s.store.FrameCount(s.id)-1
}

// Set switches to another animation, restarting it. Setting the animation
// already playing keeps its progress.
func (s *State) Set(id ID) {
	if id == s.id {
		return
	}
	s.id = id
	s.frame = 0
	s.elapsed = 0
	s.done = false
	s.loop = s.timing.Clip(id).Loop
}

// Restart replays the current animation from its first frame
func (s *State) Restart() {
	s.frame = 0
	s.elapsed = 0
	s.done = false
}

// Advance moves the animation forward by elapsedMs
func (s *State) Advance(elapsedMs float64) error {
	if elapsedMs < 0 || math.IsNaN(elapsedMs) || math.IsInf(elapsedMs, 0) {
		return fmt.Errorf("%w: elapsed %v ms", ErrInvalidArgument, elapsedMs)
	}
	n := s.store.FrameCount(s.id)
	if n == 0 {
		return fmt.Errorf("advance %s: %w", s.id, ErrNotFound)
	}
	if s.done {
		return nil
	}

	frameMs := s.timing.Clip(s.id).FrameMs
	s.elapsed += elapsedMs
	for s.elapsed >= frameMs {
		s.elapsed -= frameMs
		switch {
		case s.frame < n-1:
			s.frame++
		case s.loop:
			s.frame = 0
		default:
			s.frame = n - 1
			s.elapsed = 0
			s.done = true
			return nil
		}
	}
	return nil
}

// CurrentFrame returns the geometry of the current frame seen with the given facing
func (s *State) CurrentFrame(dir geom.Direction) (Frame, error) {
	g, err := s.store.Get(s.id, s.frame)
	if err != nil {
		return Frame{}, err
	}
	return g.View(dir), nil
}
