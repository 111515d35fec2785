// Package config loads pipeline configuration from an optional YAML file and
// GLYPHPREP_* environment overrides. All constants live here; components
// receive them explicitly and hold no process-wide state.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Tiles     TilesConfig     `mapstructure:"tiles"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Negatives NegativesConfig `mapstructure:"negatives"`
	Masks     MasksConfig     `mapstructure:"masks"`
}

type TilesConfig struct {
	Zoom       int           `mapstructure:"zoom"`
	TileWidth  int           `mapstructure:"tile_width"`
	TileHeight int           `mapstructure:"tile_height"`
	Layer      string        `mapstructure:"layer"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type PathsConfig struct {
	Sites     string `mapstructure:"sites"`
	Images    string `mapstructure:"images"`
	Negatives string `mapstructure:"negatives"`
	Masks     string `mapstructure:"masks"`
}

type NegativesConfig struct {
	OffsetRadius      float64 `mapstructure:"offset_radius"`
	DistanceThreshold float64 `mapstructure:"distance_threshold"`
	PerSite           int     `mapstructure:"per_site"`
	MaxImages         int     `mapstructure:"max_images"`
	MaxAttempts       int     `mapstructure:"max_attempts"`
	EdgeDensity       float64 `mapstructure:"edge_density"`
	CSV               string  `mapstructure:"csv"`
}

type MasksConfig struct {
	LinePaddingPx int `mapstructure:"line_padding_px"`
}

// Load reads configuration with defaults, an optional config.yaml, and
// environment overrides (GLYPHPREP_TILES_ZOOM -> tiles.zoom).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// a missing default file is fine, a malformed one is not
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("GLYPHPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tiles.zoom", 20)
	v.SetDefault("tiles.tile_width", 8)
	v.SetDefault("tiles.tile_height", 8)
	v.SetDefault("tiles.layer", "s")
	v.SetDefault("tiles.timeout", 30*time.Second)

	v.SetDefault("paths.sites", "amazon_geoglyphs.csv")
	v.SetDefault("paths.images", "images")
	v.SetDefault("paths.negatives", "negatives")
	v.SetDefault("paths.masks", "masks")

	v.SetDefault("negatives.offset_radius", 0.003)
	v.SetDefault("negatives.distance_threshold", 0.001)
	v.SetDefault("negatives.per_site", 1)
	v.SetDefault("negatives.max_images", 1500)
	v.SetDefault("negatives.max_attempts", 1000)
	v.SetDefault("negatives.edge_density", 0.01)
	v.SetDefault("negatives.csv", "negative_samples.csv")

	v.SetDefault("masks.line_padding_px", 3)
}

// Validate checks that the configuration is usable before any I/O starts.
func (c *Config) Validate() error {
	var errs []string

	if c.Tiles.Zoom < 0 || c.Tiles.Zoom > 23 {
		errs = append(errs, fmt.Sprintf("tiles.zoom must be 0-23, got %d", c.Tiles.Zoom))
	}
	if c.Tiles.TileWidth < 1 || c.Tiles.TileHeight < 1 {
		errs = append(errs, "tiles.tile_width and tiles.tile_height must be positive")
	}
	switch c.Tiles.Layer {
	case "v", "p", "r", "s", "t", "y":
	default:
		errs = append(errs, fmt.Sprintf("tiles.layer must be one of v/p/r/s/t/y, got %q", c.Tiles.Layer))
	}
	if c.Negatives.OffsetRadius <= 0 {
		errs = append(errs, "negatives.offset_radius must be positive")
	}
	if c.Negatives.DistanceThreshold < 0 {
		errs = append(errs, "negatives.distance_threshold must not be negative")
	}
	if c.Negatives.PerSite < 1 {
		errs = append(errs, "negatives.per_site must be at least 1")
	}
	if c.Negatives.MaxImages < 1 {
		errs = append(errs, "negatives.max_images must be at least 1")
	}
	if c.Negatives.MaxAttempts < 1 {
		errs = append(errs, "negatives.max_attempts must be at least 1")
	}
	if c.Masks.LinePaddingPx < 1 {
		errs = append(errs, "masks.line_padding_px must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
