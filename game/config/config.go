// Package config loads the shooter's TOML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable consulted when no -config flag is
// given.
const EnvPath = "TICKECS_CONFIG"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Loop    LoopConfig    `toml:"loop"`
	Logging LoggingConfig `toml:"logging"`
	Assets  AssetsConfig  `toml:"assets"`
	Audio   AudioConfig   `toml:"audio"`
	Physics PhysicsConfig `toml:"physics"`
	Player  PlayerConfig  `toml:"player"`
	Camera  CameraConfig  `toml:"camera"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type LoopConfig struct {
	TicksPerSecond int `toml:"ticks_per_second"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

type AssetsConfig struct {
	Root        string `toml:"root"`
	Level       string `toml:"level"`
	LoadWorkers int    `toml:"load_workers"`
}

type AudioConfig struct {
	Muted      bool `toml:"muted"`
	SampleRate int  `toml:"sample_rate"`
}

type PhysicsConfig struct {
	Gravity [2]float64 `toml:"gravity"`
}

type PlayerConfig struct {
	Speed            float64       `toml:"speed"`
	Radius           float64       `toml:"radius"`
	ShootSound       string        `toml:"shoot_sound"`
	ShootDuration    time.Duration `toml:"shoot_duration"`
	BulletSeparation float64       `toml:"bullet_separation"`
	BulletSpeed      float64       `toml:"bullet_speed"`
	BulletRadius     float64       `toml:"bullet_radius"`
	BulletLifetime   time.Duration `toml:"bullet_lifetime"`
	Frames           []string      `toml:"frames"`
	DefaultFrame     string        `toml:"default_frame"`
	FrameDuration    time.Duration `toml:"frame_duration"`
}

type CameraConfig struct {
	Zoom          float64 `toml:"zoom"`
	LerpSpeed     float64 `toml:"lerp_speed"`
	RotationSpeed float64 `toml:"rotation_speed"`
}

// Path picks the config file: the flag value if set, then $TICKECS_CONFIG.
// An empty result means run on defaults.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Loop.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second %d must be positive", c.Loop.TicksPerSecond)
	}
	if c.Player.FrameDuration <= 0 && len(c.Player.Frames) > 0 {
		return fmt.Errorf("frame_duration must be positive when frames are set")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "tickecs shooter",
			Width:  960,
			Height: 640,
		},
		Loop: LoopConfig{
			TicksPerSecond: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Assets: AssetsConfig{
			Root:        "assets",
			Level:       "level.yaml",
			LoadWorkers: 4,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
		},
		Player: PlayerConfig{
			Speed:            120,
			Radius:           12,
			ShootSound:       "shot.wav",
			ShootDuration:    400 * time.Millisecond,
			BulletSeparation: 20,
			BulletSpeed:      300,
			BulletRadius:     4,
			BulletLifetime:   3 * time.Second,
			Frames:           []string{"shoot1.png", "shoot2.png", "shoot3.png"},
			DefaultFrame:     "idle.png",
			FrameDuration:    100 * time.Millisecond,
		},
		Camera: CameraConfig{
			Zoom:          1,
			LerpSpeed:     8,
			RotationSpeed: 0.005,
		},
	}
}
