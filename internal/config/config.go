// Package config handles scatter tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Scatter ScatterConfig `yaml:"scatter"`
	Input   InputConfig   `yaml:"input"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScatterConfig holds the placement options handed to a session.
type ScatterConfig struct {
	AlignToNormal bool    `yaml:"align_to_normal"`
	RandomSpin    bool    `yaml:"random_spin"`
	RandomScale   bool    `yaml:"random_scale"`
	ScaleMin      float64 `yaml:"scale_min"`
	ScaleMax      float64 `yaml:"scale_max"`
	Density       int     `yaml:"density"` // 0 = sparse .. 10 = dense
	Seed          int64   `yaml:"seed"`    // 0 = derive from time
}

// InputConfig holds target and source selection.
type InputConfig struct {
	MeshPath string `yaml:"mesh_path"` // OBJ file; empty = built-in demo plane
	Block    string `yaml:"block"`     // block name to instance; empty = duplicate geometry
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scatter: ScatterConfig{
			AlignToNormal: false,
			RandomSpin:    true,
			RandomScale:   true,
			ScaleMin:      0.8,
			ScaleMax:      1.2,
			Density:       5,
			Seed:          0,
		},
		Input: InputConfig{},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Clamp forces out-of-range values back into their valid ranges.
func (c *Config) Clamp() {
	if c.Scatter.Density < 0 {
		c.Scatter.Density = 0
	}
	if c.Scatter.Density > 10 {
		c.Scatter.Density = 10
	}
	if c.Scatter.ScaleMin <= 0 {
		c.Scatter.ScaleMin = 0.8
	}
	if c.Scatter.ScaleMax < c.Scatter.ScaleMin {
		c.Scatter.ScaleMax = c.Scatter.ScaleMin
	}
}
