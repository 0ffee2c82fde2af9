package config

import (
	"math"
	"os"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// EnvPrefix is prepended to every key when reading environment overrides,
// e.g. RAYTRACER_WIDTH=640
const EnvPrefix = "RAYTRACER"

// Config holds the render settings shared by all commands
type Config struct {
	Output      string  `yaml:"output" mapstructure:"output"`             // Path of the PPM file to write
	Width       int     `yaml:"width" mapstructure:"width"`               // Image width in pixels
	AspectRatio float64 `yaml:"aspect_ratio" mapstructure:"aspect_ratio"` // Width divided by height
	Workers     int     `yaml:"workers" mapstructure:"workers"`           // Row workers; 1 renders sequentially, 0 uses every CPU
	LogLevel    string  `yaml:"log_level" mapstructure:"log_level"`       // zerolog level name
	Scene       string  `yaml:"scene" mapstructure:"scene"`               // Built-in scene name or YAML scene path
	SwatchSize  int     `yaml:"swatch_size" mapstructure:"swatch_size"`   // Edge of the square test pattern
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"output":       "output",
	"width":        "width",
	"aspect-ratio": "aspect_ratio",
	"workers":      "workers",
	"log-level":    "log_level",
	"scene":        "scene",
	"size":         "swatch_size",
}

// Default returns a 1920x1080 render of the sphere scene to image.ppm
func Default() *Config {
	return &Config{
		Output:      "image.ppm",
		Width:       1920,
		AspectRatio: 16.0 / 9.0,
		Workers:     1,
		LogLevel:    "info",
		Scene:       "sphere",
		SwatchSize:  1024,
	}
}

// NewViper returns a viper instance carrying the defaults and reading
// RAYTRACER_* environment overrides
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("width", d.Width)
	v.SetDefault("aspect_ratio", d.AspectRatio)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("scene", d.Scene)
	v.SetDefault("swatch_size", d.SwatchSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds whichever known flags exist in flags. Flags take precedence
// over the environment and the config file once set on the command line.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errorsmod.Wrapf(core.ErrInvalidConfig, "bind flag %s: %s", name, err)
		}
	}
	return nil
}

// Load reads the optional YAML file at path into v and returns the validated
// configuration. An empty path uses defaults, environment and flags only.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errorsmod.Wrapf(core.ErrInvalidConfig, "read %s: %s", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidConfig, "decode: %s", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Height returns the image height, truncated: 1920 at 16:9 gives 1080
func (c *Config) Height() int {
	return int(float64(c.Width) / c.AspectRatio)
}

// Level returns the parsed log level
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Output == "" {
		return errorsmod.Wrap(core.ErrInvalidConfig, "output cannot be empty")
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "aspect ratio %v must be positive", c.AspectRatio)
	}
	if c.Width < 2 || c.Height() < 2 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "image %dx%d, need at least 2x2", c.Width, c.Height())
	}
	if c.Workers < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "workers %d cannot be negative", c.Workers)
	}
	if c.SwatchSize < 2 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "swatch size %d, need at least 2", c.SwatchSize)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "log level %q: %s", c.LogLevel, err)
	}
	return nil
}

// Save writes the configuration as YAML
func Save(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "encode: %s", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errorsmod.Wrapf(core.ErrSinkUnavailable, "write %s: %s", path, err)
	}
	return nil
}
