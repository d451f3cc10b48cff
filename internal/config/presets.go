package config

// Presets are complete configurations keyed by name.
var Presets = map[string]*Config{
	"breeze": DefaultConfig(),
	"gust": func() *Config {
		c := DefaultConfig()
		c.Wind.BaseForce = 40
		c.Wind.Direction = Vec3{0.6, 0, -0.6}
		return c
	}(),
	"still": func() *Config {
		c := DefaultConfig()
		c.Wind.Enabled = false
		c.Cloth.InitialVelocity = Vec3{}
		return c
	}(),
	"banner": func() *Config {
		c := DefaultConfig()
		c.Cloth.Variant = "banner"
		c.Cloth.Width, c.Cloth.Height = 2, 1
		c.Cloth.Cols = 16
		c.Cloth.Pin = "anchor"
		return c
	}(),
	"freefall": func() *Config {
		c := DefaultConfig()
		c.Cloth.Pin = "none"
		c.Wind.Enabled = false
		c.Sim.Duration = 2
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
