// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/epaper/epaper"
	"gopkg.in/yaml.v3"
)

// Config holds the command configuration. It is read from a YAML file and
// flags override it.
type Config struct {
	Model    string `yaml:"model"`
	Partial  bool   `yaml:"partial"`
	LogLevel string `yaml:"log_level"`
	Simulate bool   `yaml:"simulate"`
	Scale    int    `yaml:"scale"`

	SPI  string `yaml:"spi"`
	Pins Pins   `yaml:"pins"`

	PollInterval time.Duration `yaml:"poll_interval"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
}

// Pins names the GPIO lines. All empty selects the Waveshare HAT.
type Pins struct {
	DC   string `yaml:"dc"`
	CS   string `yaml:"cs"`
	RST  string `yaml:"rst"`
	Busy string `yaml:"busy"`
}

func (p *Pins) hat() bool {
	return *p == Pins{}
}

func defaultConfig() Config {
	return Config{
		Model:        epaper.EPD2in9.String(),
		LogLevel:     "info",
		Scale:        4,
		PollInterval: epaper.DefaultPollInterval,
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// opts validates the configuration and returns the device options.
func (c *Config) opts() (*epaper.Opts, error) {
	m, err := epaper.ParseModel(c.Model)
	if err != nil {
		return nil, err
	}
	if c.PollInterval < 0 || c.BusyTimeout < 0 {
		return nil, fmt.Errorf("negative poll interval or busy timeout")
	}
	if !c.Pins.hat() && (c.Pins.DC == "" || c.Pins.RST == "" || c.Pins.Busy == "") {
		return nil, fmt.Errorf("pins: dc, rst and busy are required")
	}
	return &epaper.Opts{
		Model:        m,
		Mode:         epaper.PartialUpdate(c.Partial),
		PollInterval: c.PollInterval,
		BusyTimeout:  c.BusyTimeout,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
