// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads rxedit configuration.
//
// Configuration comes from a single YAML file named by the --config flag
// or the RXEDIT_CONFIG environment variable. With neither set the defaults
// are used. Values in the file are merged over the defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/blinklabs-io/rxedit/marshal"
	"github.com/blinklabs-io/rxedit/schema"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "RXEDIT_CONFIG"

type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Decoder  DecoderConfig  `yaml:"decoder"`
	Sessions SessionsConfig `yaml:"sessions"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

type DecoderConfig struct {
	// KnownClasses are decoded as editable objects. Every other class is
	// carried through opaquely.
	KnownClasses []string `yaml:"known_classes"`
	MaxDepth     int      `yaml:"max_depth"`
}

type SessionsConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"`
	// Workers bounds how many batch jobs run at once
	Workers int `yaml:"workers"`
}

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Decoder: DecoderConfig{
			KnownClasses: append([]string(nil), schema.KnownClasses...),
			MaxDepth:     marshal.DefaultMaxDepth,
		},
		Sessions: SessionsConfig{
			IdleTimeout: 30 * time.Minute,
			MaxSessions: 64,
			Workers:     4,
		},
	}
}

// Load reads the file at path, or the file named by RXEDIT_CONFIG if path
// is empty. With no file at all it returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := parseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	if len(c.Decoder.KnownClasses) == 0 {
		errs = append(errs, errors.New("decoder.known_classes must not be empty"))
	}
	if c.Decoder.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("decoder.max_depth must be positive, got %d", c.Decoder.MaxDepth))
	}
	if c.Sessions.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("sessions.idle_timeout must not be negative, got %s", c.Sessions.IdleTimeout))
	}
	if c.Sessions.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("sessions.max_sessions must not be negative, got %d", c.Sessions.MaxSessions))
	}
	if c.Sessions.Workers < 1 {
		errs = append(errs, fmt.Errorf("sessions.workers must be positive, got %d", c.Sessions.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// NewLogger builds a logger writing to w in the configured format
func (c LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", c.Format)
}

func parseLevel(level string) (slog.Level, error) {
	var ret slog.Level
	if err := ret.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return ret, fmt.Errorf("logging.level: %w", err)
	}
	return ret, nil
}
