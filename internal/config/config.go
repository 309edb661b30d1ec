// Package config loads the viewpane.json / viewpane.yaml configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/recera/viewpane/pkg/viewport"
)

// Config represents the viewpane configuration file.
type Config struct {
	// Viewport engine configuration
	Viewport *ViewportConfig `json:"viewport,omitempty" yaml:"viewport,omitempty"`

	// Serve command configuration
	Serve *ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`
}

// ViewportConfig contains engine tunables. Durations are in milliseconds.
type ViewportConfig struct {
	// Maximum zoom in percent (minimum is fixed at 10)
	ZoomMax float64 `json:"zoomMax,omitempty" yaml:"zoomMax,omitempty"`

	// Zoom step per wheel notch or keyboard shortcut, in percent
	ZoomStep float64 `json:"zoomStep,omitempty" yaml:"zoomStep,omitempty"`

	// Pan step per arrow key, in pixels
	ArrowPanStep float64 `json:"arrowPanStep,omitempty" yaml:"arrowPanStep,omitempty"`

	// Fraction of the viewport height scrolled per PageUp/PageDown
	PageScrollFraction float64 `json:"pageScrollFraction,omitempty" yaml:"pageScrollFraction,omitempty"`

	// Minimum thumb size in pixels
	MinThumbPx float64 `json:"minThumbPx,omitempty" yaml:"minThumbPx,omitempty"`

	// Indicator auto-hide delay in milliseconds
	IndicatorHideDelayMs int `json:"indicatorHideDelayMs,omitempty" yaml:"indicatorHideDelayMs,omitempty"`

	// Content measurement settle delay in milliseconds
	SettleDelayMs int `json:"settleDelayMs,omitempty" yaml:"settleDelayMs,omitempty"`
}

// ServeConfig contains preview server configuration.
type ServeConfig struct {
	// Server host
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Server port
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Document to serve and watch
	Document string `json:"document,omitempty" yaml:"document,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Viewport: &ViewportConfig{},
		Serve: &ServeConfig{
			Host: "localhost",
			Port: 7173,
		},
	}
}

// Load reads viewpane.json or viewpane.yaml from dir. A missing file is not
// an error: defaults are returned.
func Load(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, "viewpane.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		cfg := Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
		return normalize(cfg), nil
	}

	yamlPath := filepath.Join(dir, "viewpane.yaml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		cfg := Default()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", yamlPath, err)
		}
		return normalize(cfg), nil
	}

	return Default(), nil
}

func normalize(cfg *Config) *Config {
	if cfg.Viewport == nil {
		cfg.Viewport = &ViewportConfig{}
	}
	if cfg.Serve == nil {
		cfg.Serve = Default().Serve
	}
	if cfg.Serve.Host == "" {
		cfg.Serve.Host = "localhost"
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 7173
	}
	return cfg
}

// ViewportOptions converts the file representation into the engine config.
// Zero values defer to the engine defaults.
func (c *Config) ViewportOptions() *viewport.Config {
	v := c.Viewport
	if v == nil {
		return nil
	}
	return &viewport.Config{
		ZoomMax:            v.ZoomMax,
		ZoomStep:           v.ZoomStep,
		ArrowPanStep:       v.ArrowPanStep,
		PageScrollFraction: v.PageScrollFraction,
		MinThumbPx:         v.MinThumbPx,
		IndicatorHideDelay: time.Duration(v.IndicatorHideDelayMs) * time.Millisecond,
		SettleDelay:        time.Duration(v.SettleDelayMs) * time.Millisecond,
	}
}
