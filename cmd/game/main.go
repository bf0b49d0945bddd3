package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/swordduel/internal/application/game"
	"github.com/younwookim/swordduel/internal/application/match"
	"github.com/younwookim/swordduel/internal/application/scene/playing"
	"github.com/younwookim/swordduel/internal/application/system"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

type options struct {
	configDir string
	level     string
	headless  bool
	ticks     int
	watch     bool
	verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Load assets from this directory instead of the embedded ones")
	flag.StringVar(&opts.level, "level", "arena", "Level to load from levels/<name>.tmx")
	flag.BoolVar(&opts.headless, "headless", false, "Run the match without a window")
	flag.IntVar(&opts.ticks, "ticks", 0, "Stop a headless match after this many ticks (0 = until interrupted)")
	flag.BoolVar(&opts.watch, "watch", false, "Rebuild the match when an asset under -config changes")
	flag.BoolVar(&opts.verbose, "v", false, "Log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}

	assets, err := loader.LoadAll(opts.level)
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}
	logger.Info("assets loaded", "source", loader.BasePath(), "level", opts.level)

	var changes <-chan string
	if opts.watch {
		if opts.configDir == "" {
			return errors.New("-watch needs -config")
		}
		w, err := config.NewWatcher(opts.configDir, filepath.Join(opts.configDir, "levels"))
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", opts.configDir, err)
		}
		defer w.Close()
		go logWatchErrors(w.Errors, logger)
		changes = w.Events
	}

	if opts.headless {
		return runHeadless(opts, loader, assets, changes, logger)
	}
	return runWindowed(opts, loader, assets, changes, logger)
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func logWatchErrors(errs <-chan error, logger *slog.Logger) {
	for err := range errs {
		logger.Warn("asset watcher", "error", err)
	}
}

// builder returns a match factory. The first call uses the assets already
// loaded, later calls reload them from disk.
func builder(opts options, loader *config.Loader, assets *config.Assets, inputs func(*config.Assets) ([2]system.Input, error), logger *slog.Logger) playing.Builder {
	return func() (*match.Match, error) {
		a := assets
		if a == nil {
			var err error
			if a, err = loader.LoadAll(opts.level); err != nil {
				return nil, err
			}
		}
		assets = nil

		in, err := inputs(a)
		if err != nil {
			return nil, err
		}
		return match.New(match.Deps{Assets: a, Inputs: in, Logger: logger})
	}
}

func keyboardInputs(a *config.Assets) ([2]system.Input, error) {
	var inputs [2]system.Input
	if len(a.Game.Controls) < len(inputs) {
		return inputs, fmt.Errorf("game.json binds %d players, need %d", len(a.Game.Controls), len(inputs))
	}
	for i := range inputs {
		b, err := system.ParseBindings(a.Game.Controls[i])
		if err != nil {
			return inputs, fmt.Errorf("player %d controls: %w", i+1, err)
		}
		inputs[i] = system.NewEbitenInput(b)
	}
	return inputs, nil
}

func noInputs(*config.Assets) ([2]system.Input, error) {
	return [2]system.Input{system.NoInput{}, system.NoInput{}}, nil
}

func runWindowed(opts options, loader *config.Loader, assets *config.Assets, changes <-chan string, logger *slog.Logger) error {
	display := assets.Game.Display
	build := builder(opts, loader, assets, keyboardInputs, logger)

	scene, err := playing.New(build, display.ScreenWidth, display.ScreenHeight, changes, logger)
	if err != nil {
		return err
	}

	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)
	g.Configure(display, "Sword Duel")
	return ebiten.RunGame(g)
}

func runHeadless(opts options, loader *config.Loader, assets *config.Assets, changes <-chan string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := builder(opts, loader, assets, noInputs, logger)
	m, err := build()
	if err != nil {
		return err
	}

	tick := func(dt float64) error {
		select {
		case name, ok := <-changes:
			if !ok {
				changes = nil
				break
			}
			next, err := build()
			if err != nil {
				logger.Warn("reload failed, keeping current match", "reason", name, "error", err)
				break
			}
			logger.Info("match reloaded", "reason", name)
			m = next
		default:
		}
		return m.Tick(dt)
	}

	driver := match.NewDriver(match.TickFunc(tick), assets.Game.Display.Framerate)
	driver.SetMaxTicks(opts.ticks)

	err = driver.Run(ctx)
	score := m.Score()
	logger.Info("match over", "ticks", m.Ticks(), "score", fmt.Sprintf("%d-%d", score[0], score[1]))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
