package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.FPS)
	}
	if cfg.TimeScale != 1 {
		t.Errorf("expected time scale 1, got %f", cfg.TimeScale)
	}
	if cfg.Camera.Position != [3]float64{0, 80, 250} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	if !cfg.Debris.Enabled || cfg.Debris.Cooldown != 0.5 || cfg.Debris.SpawnChance != 0.02 {
		t.Errorf("unexpected debris config %+v", cfg.Debris)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("unexpected frame interval %v", cfg.FrameInterval())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative time scale", func(c *Config) { c.TimeScale = -0.5 }},
		{"zero time scale", func(c *Config) { c.TimeScale = 0 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.5 }},
		{"no damping", func(c *Config) { c.Camera.Damping = 0 }},
		{"negative cooldown", func(c *Config) { c.Debris.Cooldown = -1 }},
		{"chance above one", func(c *Config) { c.Debris.SpawnChance = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	data := []byte("seed: 42\ntime_scale: 2.5\ndebris:\n  enabled: false\ncamera:\n  fov: 60\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 42 || cfg.TimeScale != 2.5 || cfg.Camera.FOV != 60 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Debris.Enabled {
		t.Error("debris should be disabled")
	}
	if cfg.FPS != DefaultFPS || cfg.Debris.Cooldown != DefaultCooldown {
		t.Error("unspecified keys should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("fps: [1, 2"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("fps: -3\n"), 0644)
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("timelapse")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed config:\n%+v\n%+v", loaded, cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("meteor-shower")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Debris.SpawnChance != 0.3 {
		t.Errorf("expected spawn chance 0.3, got %f", cfg.Debris.SpawnChance)
	}

	cfg.Debris.SpawnChance = 1
	if GetPreset("meteor-shower").Debris.SpawnChance != 0.3 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"calm", "default", "meteor-shower", "timelapse"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
