// SPDX-License-Identifier: MIT

// Package config loads genomectl settings from YAML.
//
// A missing file is not an error: Load("") returns Default(). Values present
// in the file override the defaults; unknown keys are rejected.
//
//	log:
//	  level: debug
//	  development: true
//	archive:
//	  backend: dir
//	  path: ./genomes
//	sampler:
//	  seed: 42
//	  stop_probability: 0.25
//	metrics:
//	  namespace: genograph
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full genomectl configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Archive ArchiveConfig `yaml:"archive"`
	Sampler SamplerConfig `yaml:"sampler"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// ArchiveConfig selects where genomes are saved.
type ArchiveConfig struct {
	Backend string `yaml:"backend" validate:"oneof=badger dir memory"`
	Path    string `yaml:"path" validate:"required_unless=Backend memory"`
}

// SamplerConfig seeds the path sampler.
type SamplerConfig struct {
	Seed            int64   `yaml:"seed"`
	StopProbability float64 `yaml:"stop_probability" validate:"gte=0,lte=1"`
}

// MetricsConfig names the Prometheus namespace.
type MetricsConfig struct {
	Namespace string `yaml:"namespace" validate:"required"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info"},
		Archive: ArchiveConfig{Backend: "memory"},
		Sampler: SamplerConfig{Seed: 1, StopProbability: 0.3},
		Metrics: MetricsConfig{Namespace: "genograph"},
	}
}

// Load reads path over the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// NewLogger builds a zap logger for c. Development mode uses the console
// encoder; otherwise JSON.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
