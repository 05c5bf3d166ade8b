package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type config struct {
	MaxFrameSize int
	LogLevel     string
	Hex          bool
}

func defaultConfig() config {
	return config{LogLevel: "info"}
}

type fileConfig struct {
	MaxFrameSize int    `toml:"max_frame_size"`
	LogLevel     string `toml:"log_level"`
	Hex          bool   `toml:"hex"`
}

// loadConfig reads path and overlays the values it defines onto the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("max_frame_size") {
		cfg.MaxFrameSize = raw.MaxFrameSize
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = raw.LogLevel
	}
	if meta.IsDefined("hex") {
		cfg.Hex = raw.Hex
	}
	return cfg, nil
}
