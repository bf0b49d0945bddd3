package anim

import (
	"errors"
	"fmt"

	"github.com/younwookim/swordduel/internal/domain/geom"
)

var (
	// ErrNotFound is returned for (animation, frame) pairs that were never registered
	ErrNotFound = errors.New("frame not found")
	// ErrMissingOutline marks a frame that can be hit but has no body outline
	ErrMissingOutline = errors.New("frame has no body outline")
	// ErrMissingGrip marks a sword-bearing frame without a sword grip point
	ErrMissingGrip = errors.New("frame has no sword grip")
	// ErrSealed is returned when registering into a store that is already in use
	ErrSealed = errors.New("frame store is sealed")
)

// Geometry is the static hit-box data of one animation frame.
// Mirrored coordinates are computed once at construction as width - x.
type Geometry struct {
	width, height int

	outline         []geom.Point
	outlineMirrored []geom.Point

	grip         geom.Point
	gripMirrored geom.Point
	hasGrip      bool

	angle float64 // degrees, 0 points forward, positive turns down

	bounds         geom.Rect
	boundsMirrored geom.Rect
}

// NewGeometry builds the frame data. grip may be nil for frames without a sword.
func NewGeometry(width, height int, outline []geom.Point, grip *geom.Point, angle float64) Geometry {
	g := Geometry{
		width:           width,
		height:          height,
		outline:         append([]geom.Point(nil), outline...),
		outlineMirrored: make([]geom.Point, len(outline)),
		angle:           angle,
	}
	for i, p := range outline {
		g.outlineMirrored[i] = mirror(p, width)
	}
	if grip != nil {
		g.hasGrip = true
		g.grip = *grip
		g.gripMirrored = mirror(*grip, width)
	}
	g.bounds = boundsOf(g.outline)
	g.boundsMirrored = boundsOf(g.outlineMirrored)
	return g
}

func mirror(p geom.Point, width int) geom.Point {
	return geom.Point{X: width - p.X, Y: p.Y}
}

func boundsOf(points []geom.Point) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return geom.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Width returns the frame width used for mirroring
func (g Geometry) Width() int { return g.width }

// Height returns the frame height
func (g Geometry) Height() int { return g.height }

// HasOutline reports whether the frame defines body outline points
func (g Geometry) HasOutline() bool { return len(g.outline) > 0 }

// HasGrip reports whether the frame defines a sword grip
func (g Geometry) HasGrip() bool { return g.hasGrip }

// SwordAngle returns the sword angle in degrees
func (g Geometry) SwordAngle() float64 { return g.angle }

// Outline returns the body outline for a facing. The slice is shared; callers must not modify it.
func (g Geometry) Outline(dir geom.Direction) []geom.Point {
	if dir == geom.Left {
		return g.outlineMirrored
	}
	return g.outline
}

// Grip returns the sword grip for a facing
func (g Geometry) Grip(dir geom.Direction) (geom.Point, bool) {
	if dir == geom.Left {
		return g.gripMirrored, g.hasGrip
	}
	return g.grip, g.hasGrip
}

// Bounds returns the min/max extents of the outline for a facing
func (g Geometry) Bounds(dir geom.Direction) geom.Rect {
	if dir == geom.Left {
		return g.boundsMirrored
	}
	return g.bounds
}

// View returns the frame as seen with the given facing
func (g Geometry) View(dir geom.Direction) Frame {
	grip, ok := g.Grip(dir)
	return Frame{
		Outline: g.Outline(dir),
		Grip:    grip,
		HasGrip: ok,
		Angle:   g.angle,
		Bounds:  g.Bounds(dir),
		Width:   g.width,
		Height:  g.height,
	}
}

// Frame is a Geometry resolved for one facing
type Frame struct {
	Outline []geom.Point
	Grip    geom.Point
	HasGrip bool
	Angle   float64
	Bounds  geom.Rect
	Width   int
	Height  int
}

// Store holds the frame geometry of every animation. It is filled once at
// asset-load time, sealed, and then shared read-only by both players.
type Store struct {
	frames map[ID][]Geometry
	sealed bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{frames: make(map[ID][]Geometry)}
}

// Register sets the frames of an animation
func (s *Store) Register(id ID, frames ...Geometry) error {
	if s.sealed {
		return fmt.Errorf("register %s: %w", id, ErrSealed)
	}
	if len(frames) == 0 {
		return fmt.Errorf("register %s: %w: no frames", id, ErrInvalidArgument)
	}
	s.frames[id] = append([]Geometry(nil), frames...)
	return nil
}

// Seal makes the store read-only
func (s *Store) Seal() { s.sealed = true }

// Get returns the geometry of one frame
func (s *Store) Get(id ID, index int) (Geometry, error) {
	frames, ok := s.frames[id]
	if !ok || index < 0 || index >= len(frames) {
		return Geometry{}, fmt.Errorf("%w: %s frame %d", ErrNotFound, id, index)
	}
	return frames[index], nil
}

// FrameCount returns the number of frames registered for id
func (s *Store) FrameCount(id ID) int {
	return len(s.frames[id])
}

// Validate checks the asset rules the collision engine relies on: every
// animation is registered, every attackable frame has an outline, and every
// sword-bearing frame has a grip when swords have a length.
func (s *Store) Validate(swordLength int) error {
	for _, id := range All() {
		frames, ok := s.frames[id]
		if !ok {
			return fmt.Errorf("validate %s: %w", id, ErrNotFound)
		}
		for i, g := range frames {
			if Attackable(id) && !g.HasOutline() {
				return fmt.Errorf("validate %s frame %d: %w", id, i, ErrMissingOutline)
			}
			if swordLength > 0 && SwordBearing(id) && !g.HasGrip() {
				return fmt.Errorf("validate %s frame %d: %w", id, i, ErrMissingGrip)
			}
		}
	}
	return nil
}
