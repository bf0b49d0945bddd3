package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// ErrBadFrame is returned for frame entries that cannot be turned into geometry
var ErrBadFrame = errors.New("bad frame spec")

// FramesSpec is the root of frames.yaml
type FramesSpec struct {
	Animations map[string][]FrameSpec `yaml:"animations"`
}

// FrameSpec describes one animation frame.
// Outline points may be listed explicitly, or generated from Box: one left
// and one right edge point for every row of the box, top to bottom.
type FrameSpec struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Outline [][]int `yaml:"outline"`
	Box     []int   `yaml:"box"` // x, y, w, h
	Grip    []int   `yaml:"grip"`
	Angle   float64 `yaml:"angle"`
	Repeat  int     `yaml:"repeat"` // emit this frame n times
}

// BuildStore converts the parsed spec into a sealed frame store after
// checking it with Validate.
func BuildStore(spec *FramesSpec, swordLength int) (*anim.Store, error) {
	store := anim.NewStore()
	for name, frames := range spec.Animations {
		id, err := anim.ParseID(name)
		if err != nil {
			return nil, err
		}
		geometry := make([]anim.Geometry, 0, len(frames))
		for i, f := range frames {
			g, err := f.geometry()
			if err != nil {
				return nil, fmt.Errorf("%s frame %d: %w", name, i, err)
			}
			for range max(f.Repeat, 1) {
				geometry = append(geometry, g)
			}
		}
		if err := store.Register(id, geometry...); err != nil {
			return nil, err
		}
	}
	if err := store.Validate(swordLength); err != nil {
		return nil, err
	}
	store.Seal()
	return store, nil
}

func (f FrameSpec) geometry() (anim.Geometry, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return anim.Geometry{}, fmt.Errorf("%w: size %dx%d", ErrBadFrame, f.Width, f.Height)
	}

	var outline []geom.Point
	for _, p := range f.Outline {
		pt, err := point(p)
		if err != nil {
			return anim.Geometry{}, err
		}
		outline = append(outline, pt)
	}
	if len(f.Box) > 0 {
		if len(f.Box) != 4 || f.Box[2] < 0 || f.Box[3] < 0 {
			return anim.Geometry{}, fmt.Errorf("%w: box %v", ErrBadFrame, f.Box)
		}
		x, y, w, h := f.Box[0], f.Box[1], f.Box[2], f.Box[3]
		for row := y; row <= y+h; row++ {
			outline = append(outline, geom.Point{X: x, Y: row}, geom.Point{X: x + w, Y: row})
		}
	}

	var grip *geom.Point
	if len(f.Grip) > 0 {
		pt, err := point(f.Grip)
		if err != nil {
			return anim.Geometry{}, err
		}
		grip = &pt
	}
	return anim.NewGeometry(f.Width, f.Height, outline, grip, f.Angle), nil
}

func point(p []int) (geom.Point, error) {
	if len(p) != 2 {
		return geom.Point{}, fmt.Errorf("%w: point %v", ErrBadFrame, p)
	}
	return geom.Point{X: p[0], Y: p[1]}, nil
}
