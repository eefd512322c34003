// Package config loads the exporter settings from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oomer/blendmaxwell/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the exporter settings.
type Config struct {
	// Plugin id stored in exported scenes. Descriptions that carry their
	// own id keep it unless this is set.
	PluginID string `yaml:"plugin_id"`

	Logging  LoggingConfig  `yaml:"logging"`
	Textures TexturesConfig `yaml:"textures"`
	Export   ExportConfig   `yaml:"export"`
	Preview  PreviewConfig  `yaml:"preview"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`

	// Appended to in addition to stdout.
	File string `yaml:"file"`
}

// TexturesConfig holds texture validation settings.
type TexturesConfig struct {
	// Decode the header of every referenced texture while exporting.
	Inspect bool `yaml:"inspect"`
}

// ExportConfig holds scene export flags.
type ExportConfig struct {
	EraseUnusedMaterials bool `yaml:"erase_unused_materials"`

	// Compile into the existing output scene when present.
	Append bool `yaml:"append"`
}

// PreviewConfig holds material swatch settings.
type PreviewConfig struct {
	Size int `yaml:"size"`
}

// Default returns the settings used when no file is supplied.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "notice",
		},
		Textures: TexturesConfig{
			Inspect: true,
		},
		Export: ExportConfig{
			EraseUnusedMaterials: false,
		},
		Preview: PreviewConfig{
			Size: 128,
		},
	}
}

// Load reads the settings at path on top of the defaults. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed by the YAML schema.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Preview.Size <= 0 {
		return fmt.Errorf("config: preview size must be positive; got %d", c.Preview.Size)
	}
	return nil
}

// SaveTo writes the settings to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
