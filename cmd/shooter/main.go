// Command shooter runs the top-down shooter demo on ebiten.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/tickecs/ecs/debugui/ebiten"
	"github.com/plus3/tickecs/game/audio"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/config"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/level"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/platform"
	"github.com/plus3/tickecs/game/render"
	"github.com/plus3/tickecs/game/system"
)

func main() {
	if err := start(); err != nil {
		fmt.Fprintf(os.Stderr, "shooter: %v\n", err)
		os.Exit(1)
	}
}

// start parses flags, loads config and builds the logger, then runs the game.
// It returns instead of exiting so the deferred logger sync always runs.
func start() error {
	configPath := flag.String("config", "", "path to a TOML config file (default $"+config.EnvPath+")")
	levelPath := flag.String("level", "", "level file, overriding assets.level")
	debug := flag.Bool("debug", false, "show the ImGui entity inspector")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return err
	}
	if *levelPath != "" {
		cfg.Assets.Level = *levelPath
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *debug, logger); err != nil {
		logger.Error("shooter stopped", zap.Error(err))
		return err
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("logging.level: %w", err)
		}
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func run(cfg *config.Config, debug bool, logger *zap.Logger) error {
	lvl, err := level.LoadFile(filepath.Join(cfg.Assets.Root, cfg.Assets.Level))
	if err != nil {
		return err
	}

	registry := ecs.NewComponentRegistry()
	kinds := component.Register(registry)
	world := ecs.NewWorld(registry, ecs.WithLogger(logger.Named("ecs")))
	scheduler := ecs.NewScheduler(world)

	scene := render.NewScene()
	if lvl.Background.A != 0 {
		scene.Background = color.RGBA(lvl.Background)
	}
	scene.Camera.Zoom = cfg.Camera.Zoom
	bodies := physics.NewWorld(geom.V(cfg.Physics.Gravity[0], cfg.Physics.Gravity[1]))

	images := platform.NewImageCache(cfg.Assets.Root, cfg.Assets.LoadWorkers)
	sounds := platform.NewSoundCache(cfg.Assets.Root, cfg.Audio.SampleRate, cfg.Assets.LoadWorkers)
	preload(logger, images.Load, cfg.Player.Frames, cfg.Player.DefaultFrame)
	preload(logger, sounds.Load, []string{cfg.Player.ShootSound})

	player := audio.NewMuteable(platform.NewSoundPlayer(cfg.Audio.SampleRate, sounds))
	player.SetMuted(cfg.Audio.Muted)

	poller := platform.NewPoller(platform.DefaultKeys())
	if _, err := system.Install(world, kinds, system.Services{
		Scene:   scene,
		Physics: bodies,
		Input:   poller.State(),
		Audio:   player,
		Logger:  logger,
	}); err != nil {
		return err
	}

	spawned, err := lvl.Spawn(world, bodies)
	if err != nil {
		return err
	}
	playerId, err := lvl.SpawnPlayer(world, bodies, cfg.Player, cfg.Camera)
	if err != nil {
		return err
	}
	logger.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("entities", len(spawned)+1),
		zap.Stringer("player", playerId),
	)

	opts := platform.Options{
		Scheduler:      scheduler,
		Scene:          scene,
		Poller:         poller,
		Renderer:       platform.NewRenderer(images, logger.Named("render")),
		TicksPerSecond: cfg.Loop.TicksPerSecond,
		Logger:         logger,
	}

	if debug {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		imguiSystem, err := debugui.SpawnDebugUI(world, scheduler)
		if err != nil {
			return err
		}
		opts.Overlay = backend
		opts.Capture = func() (bool, bool) {
			state := imguiSystem.InputState()
			return state.WantCaptureMouse, state.WantCaptureKeyboard
		}
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetTPS(cfg.Loop.TicksPerSecond)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(platform.NewGame(opts)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	logger.Info("bye", zap.Uint64("frames", scheduler.Frame()))
	return nil
}

// preload warms a cache. A missing asset is not fatal: sprites without a
// texture are skipped and sounds load on first play.
func preload(logger *zap.Logger, load func(context.Context, ...string) error, paths []string, more ...string) {
	all := append(append([]string(nil), paths...), more...)
	if err := load(context.Background(), all...); err != nil {
		logger.Warn("preload assets", zap.Strings("paths", all), zap.Error(err))
	}
}
