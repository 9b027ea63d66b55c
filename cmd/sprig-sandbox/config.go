package main

import (
	"log/slog"
	"os"

	"github.com/phanxgames/sprig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the sandbox configuration. Every field can be set from the YAML
// file passed with -config; command-line flags take precedence.
type Config struct {
	Backend  string `yaml:"backend"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Quads    int    `yaml:"quads"`
	AssetDir string `yaml:"assetDir"`
	Catalog  string `yaml:"catalog"`
	// Atlas is a TexturePacker JSON file, relative to AssetDir, whose frames
	// are cut from the texture named AtlasSheet.
	Atlas      string `yaml:"atlas"`
	AtlasSheet string `yaml:"atlasSheet"`
	// Frames is the number of frames rendered by the headless backend.
	Frames        int        `yaml:"frames"`
	Seed          int64      `yaml:"seed"`
	LogLevel      string     `yaml:"logLevel"`
	ClearColor    [4]float32 `yaml:"clearColor,flow"`
	ScreenshotDir string     `yaml:"screenshotDir"`
	Dump          bool       `yaml:"dump"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Backend:       sprig.BackendEbiten,
		Width:         1280,
		Height:        720,
		Quads:         10_000,
		AssetDir:      ".",
		Frames:        120,
		Seed:          1,
		LogLevel:      "info",
		ClearColor:    [4]float32{0.06, 0.06, 0.09, 1},
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Quads < 0 {
		return errors.Errorf("invalid quad count %d", c.Quads)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return l, nil
}

func (c *Config) clearColor() sprig.Color {
	return sprig.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}
