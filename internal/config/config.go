// Package config handles configuration loading and management for the
// meshprep tools.
package config

// Config holds all tool settings.
type Config struct {
	Weld     WeldConfig     `yaml:"weld"`
	Surfaces SurfacesConfig `yaml:"surfaces"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WeldConfig holds vertex welding parameters.
type WeldConfig struct {
	AngleDeg  float64 `yaml:"angle_deg"` // max face angle for a smooth edge
	Precision int     `yaml:"precision"` // decimal digits for position rounding
}

// SurfacesConfig holds surface segmentation parameters.
type SurfacesConfig struct {
	AngleDeg float64 `yaml:"angle_deg"`
	FirstID  uint32  `yaml:"first_id"`
}

// ViewerConfig holds display settings for the preview window.
type ViewerConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Weld: WeldConfig{
			AngleDeg:  1.0,
			Precision: 4,
		},
		Surfaces: SurfacesConfig{
			AngleDeg: 1.0,
			FirstID:  0,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
