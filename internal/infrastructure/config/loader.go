package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/entity"
)

// Assets holds everything a match is built from
type Assets struct {
	Game   *GameConfig
	Timing *anim.Timing
	Frames *anim.Store
	Level  *entity.Level
}

// Loader loads game configuration from files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}

	return &cfg, nil
}

// Timing builds the animation playback table: built-in defaults overridden
// by the animations section.
func (cfg *GameConfig) Timing() (*anim.Timing, error) {
	timing := anim.DefaultTiming()
	for name, a := range cfg.Animations {
		id, err := anim.ParseID(name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse animations: %w", err)
		}
		if err := timing.Set(id, anim.Clip{FrameMs: a.FrameMs, Loop: a.Loop}); err != nil {
			return nil, fmt.Errorf("failed to parse animations: %w", err)
		}
	}
	return timing, nil
}

// LoadFrames loads frames.yaml into a validated, sealed store
func (l *Loader) LoadFrames(swordLength int) (*anim.Store, error) {
	data, err := fs.ReadFile(l.fsys, "frames.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read frames.yaml: %w", err)
	}

	var spec FramesSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse frames.yaml: %w", err)
	}

	store, err := BuildStore(&spec, swordLength)
	if err != nil {
		return nil, fmt.Errorf("invalid frames.yaml: %w", err)
	}
	return store, nil
}

// LoadAll loads the game config, frame geometry and the named level
func (l *Loader) LoadAll(level string) (*Assets, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	timing, err := game.Timing()
	if err != nil {
		return nil, err
	}

	frames, err := l.LoadFrames(game.Sword.Length)
	if err != nil {
		return nil, err
	}

	lvl, err := l.LoadLevel(level)
	if err != nil {
		return nil, err
	}

	return &Assets{
		Game:   game,
		Timing: timing,
		Frames: frames,
		Level:  lvl,
	}, nil
}
