package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"meteor-shower": preset(func(c *Config) {
		c.Debris.Cooldown = 0.1
		c.Debris.SpawnChance = 0.3
	}),
	"calm": preset(func(c *Config) {
		c.Debris.Enabled = false
		c.Camera.Position = [3]float64{0, 300, 120}
	}),
	"timelapse": preset(func(c *Config) {
		c.TimeScale = 20
		c.Duration = 120
		c.Camera.Position = [3]float64{0, 420, 420}
	}),
}

func preset(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
