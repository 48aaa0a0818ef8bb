// Package config loads editor settings from an optional darkroom.yaml file,
// falling back to built-in defaults for anything unset.
package config

import (
	"time"

	"github.com/spf13/viper"

	derrors "github.com/go-darkroom/darkroom/pkg/errors"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Backend BackendConfig `mapstructure:"backend"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Preview PreviewConfig `mapstructure:"preview"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

type BackendConfig struct {
	// DebounceInterval is how long parameter changes coalesce before a
	// backend call fires.
	DebounceInterval time.Duration `mapstructure:"debounce_interval"`
	// IndicatorDelay is how long a segmentation call must stay pending
	// before the analyzing indicator appears.
	IndicatorDelay time.Duration `mapstructure:"indicator_delay"`
}

type EditorConfig struct {
	// HitRadius is the handle hit-test radius in display pixels.
	HitRadius float64 `mapstructure:"hit_radius"`
	// BrushSize is the initial brush diameter in display pixels.
	BrushSize float64 `mapstructure:"brush_size"`
}

type PreviewConfig struct {
	// FadeDuration is the crossfade length for incoming preview frames.
	FadeDuration time.Duration `mapstructure:"fade_duration"`
	// LongEdge is the preview resolution cap in pixels.
	LongEdge int `mapstructure:"long_edge"`
}

// Load reads the config at the given path.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, derrors.E("config.Load", derrors.KindConfig, err).WithPath(configPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, derrors.E("config.Load", derrors.KindConfig, err).WithPath(configPath)
	}

	return &cfg, nil
}

// New loads darkroom.yaml from the working directory, falling back to the
// built-in defaults when the file is absent or unreadable.
func New() *Config {
	cfg, err := Load("darkroom.yaml")
	if err != nil {
		return Default()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.mode", "development")

	v.SetDefault("backend.debounce_interval", 100*time.Millisecond)
	v.SetDefault("backend.indicator_delay", 200*time.Millisecond)

	v.SetDefault("editor.hit_radius", 12.0)
	v.SetDefault("editor.brush_size", 48.0)

	v.SetDefault("preview.fade_duration", 180*time.Millisecond)
	v.SetDefault("preview.long_edge", 1280)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Mode: "development"},
		Backend: BackendConfig{
			DebounceInterval: 100 * time.Millisecond,
			IndicatorDelay:   200 * time.Millisecond,
		},
		Editor: EditorConfig{
			HitRadius: 12,
			BrushSize: 48,
		},
		Preview: PreviewConfig{
			FadeDuration: 180 * time.Millisecond,
			LongEdge:     1280,
		},
	}
}
