package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS         = 60
	DefaultDuration    = 30.0
	DefaultTimeScale   = 1.0
	DefaultLogLevel    = "info"
	DefaultTheme       = "cosmos"
	DefaultFOV         = 45.0
	DefaultNear        = 1.0
	DefaultFar         = 1500.0
	DefaultDamping     = 0.05
	DefaultCooldown    = 0.5
	DefaultSpawnChance = 0.02
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Seed            int64        `yaml:"seed"`
	FPS             int          `yaml:"fps"`
	Duration        float64      `yaml:"duration"`
	TimeScale       float64      `yaml:"time_scale"`
	LogLevel        string       `yaml:"log_level"`
	Theme           string       `yaml:"theme"`
	MetricsAddr     string       `yaml:"metrics_addr"`
	RandomizeOrbits bool         `yaml:"randomize_orbits"`
	Camera          CameraConfig `yaml:"camera"`
	Debris          DebrisConfig `yaml:"debris"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Damping  float64    `yaml:"damping"`
}

type DebrisConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Cooldown    float64 `yaml:"cooldown"`
	SpawnChance float64 `yaml:"spawn_chance"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:             DefaultFPS,
		Duration:        DefaultDuration,
		TimeScale:       DefaultTimeScale,
		LogLevel:        DefaultLogLevel,
		Theme:           DefaultTheme,
		RandomizeOrbits: true,
		Camera: CameraConfig{
			Position: [3]float64{0, 80, 250},
			FOV:      DefaultFOV,
			Near:     DefaultNear,
			Far:      DefaultFar,
			Damping:  DefaultDamping,
		},
		Debris: DebrisConfig{
			Enabled:     true,
			Cooldown:    DefaultCooldown,
			SpawnChance: DefaultSpawnChance,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative, got %f", ErrInvalid, c.Duration)
	case !(c.TimeScale > 0):
		return fmt.Errorf("%w: time_scale must be positive, got %f", ErrInvalid, c.TimeScale)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov must be in (0, 180), got %f", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes %f..%f", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Damping <= 0 || c.Camera.Damping > 1:
		return fmt.Errorf("%w: camera.damping must be in (0, 1], got %f", ErrInvalid, c.Camera.Damping)
	case c.Debris.Cooldown < 0:
		return fmt.Errorf("%w: debris.cooldown must not be negative, got %f", ErrInvalid, c.Debris.Cooldown)
	case c.Debris.SpawnChance < 0 || c.Debris.SpawnChance > 1:
		return fmt.Errorf("%w: debris.spawn_chance must be in [0, 1], got %f", ErrInvalid, c.Debris.SpawnChance)
	}
	return nil
}

// FrameInterval is the time between two display refreshes.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// Frames is the number of frames in a run of Duration seconds.
func (c *Config) Frames() int {
	return int(c.Duration * float64(c.FPS))
}
