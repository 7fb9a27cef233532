package config

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"short": withOverrides(func(c *Config) {
		c.Duration = 1.0
		c.Snapshot = 100
	}),
	"displaced": withOverrides(func(c *Config) {
		c.Duration = 2.0
		c.InitState = InitState{X: 0.5, Y: -0.25, Z: 1.0}
	}),
	"kicked": withOverrides(func(c *Config) {
		c.Duration = 2.0
		c.InitState = InitState{VX: 0.5, VY: 0.5}
	}),
	"fine": withOverrides(func(c *Config) {
		c.Dt = 1e-4
		c.Duration = 1.0
		c.Snapshot = 1000
		c.InitState = InitState{X: 0.5, Y: -0.25, Z: 1.0}
	}),
}

func withOverrides(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
