package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
)

// ErrBadLevel is returned for levels that cannot host a duel
var ErrBadLevel = errors.New("bad level")

// Object groups and properties read from the TMX file
const (
	groupObstacles = "obstacles"
	groupSpawns    = "spawns"
	propKind       = "kind"
	propSide       = "side"
	kindDecor      = "decor"
)

// LoadLevel parses levels/<name>.tmx. Obstacles keep the order of the
// obstacles object group; spawns are keyed by their side property.
func (l *Loader) LoadLevel(name string) (*entity.Level, error) {
	path := "levels/" + name + ".tmx"
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}

	level := &entity.Level{
		Name:   name,
		Width:  m.Width * m.TileWidth,
		Height: m.Height * m.TileHeight,
	}

	var seen [2]bool
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case groupObstacles:
			for _, o := range og.Objects {
				kind := o.Properties.GetString(propKind)
				if kind != "" && kind != "solid" && kind != kindDecor {
					return nil, fmt.Errorf("%w: %s: obstacle %d has kind %q", ErrBadLevel, name, o.ID, kind)
				}
				level.Obstacles = append(level.Obstacles, entity.Obstacle{
					Rect: geom.Rect{
						X: round(o.X), Y: round(o.Y),
						W: round(o.Width), H: round(o.Height),
					},
					Decor: kind == kindDecor,
				})
			}
		case groupSpawns:
			for _, o := range og.Objects {
				side := o.Properties.GetInt(propSide)
				if side < 0 || side > 1 {
					return nil, fmt.Errorf("%w: %s: spawn %d has side %d", ErrBadLevel, name, o.ID, side)
				}
				level.Spawns[side] = geom.Point{X: round(o.X), Y: round(o.Y)}
				seen[side] = true
			}
		}
	}

	if !seen[0] || !seen[1] {
		return nil, fmt.Errorf("%w: %s: both spawns are required", ErrBadLevel, name)
	}
	if len(level.Solids()) == 0 {
		return nil, fmt.Errorf("%w: %s: no solid obstacles", ErrBadLevel, name)
	}
	return level, nil
}

func round(v float64) int {
	return int(math.Round(v))
}
