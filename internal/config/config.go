// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the canvasview configuration file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/collab"
	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "canvasview.toml"

// DefaultAPIKey is used with the in-process collaboration service when no
// key is configured.
const DefaultAPIKey = "local"

// Config is the canvasview configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Canvas  CanvasConfig  `toml:"canvas"`
	Session SessionConfig `toml:"session"`
	Feed    FeedConfig    `toml:"feed"`
}

// WindowConfig controls the interactive window and the rendered surface.
type WindowConfig struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Focused bool   `toml:"focused"`
	GPU     bool   `toml:"gpu"`
}

// CanvasConfig tunes the viewer.
type CanvasConfig struct {
	Background    string   `toml:"background"`
	Border        string   `toml:"border"`
	DragThreshold *float64 `toml:"drag_threshold"`
	ZoomIntensity float64  `toml:"zoom_intensity"`
	Pan           *bool    `toml:"pan"`
	Zoom          *bool    `toml:"zoom"`
	Labels        *bool    `toml:"labels"`
}

// SessionConfig describes the collaboration session.
type SessionConfig struct {
	APIKey       string       `toml:"api_key"`
	DocumentID   string       `toml:"document_id"`
	DocumentName string       `toml:"document_name"`
	DarkMode     *bool        `toml:"dark_mode"`
	User         *collab.User `toml:"user"`
}

// FeedConfig points at an annotation feed file.
type FeedConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.Window.Title == "" {
		c.Window.Title = "Canvas"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = int(canvas.DefaultViewportSize.Width)
	}
	if c.Window.Height <= 0 {
		c.Window.Height = int(canvas.DefaultViewportSize.Height)
		if !c.Window.Focused {
			c.Window.Height += canvas.ToolbarHeight
		}
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = "#1E1E1E"
	}
	if c.Canvas.Border == "" {
		c.Canvas.Border = "#00000000"
	}
	if c.Canvas.DragThreshold == nil {
		px := canvas.DefaultDragThreshold
		c.Canvas.DragThreshold = &px
	}
	if c.Canvas.ZoomIntensity <= 0 {
		c.Canvas.ZoomIntensity = canvas.DefaultZoomIntensity
	}
	if c.Session.APIKey == "" {
		c.Session.APIKey = DefaultAPIKey
	}
	if c.Session.DocumentID == "" {
		c.Session.DocumentID = collab.DefaultDocumentID
	}
	if c.Session.DocumentName == "" {
		c.Session.DocumentName = collab.DefaultDocumentName
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := gg.ParseHex(c.Canvas.Background); err != nil {
		return fmt.Errorf("config: canvas.background: %w", err)
	}
	if _, err := gg.ParseHex(c.Canvas.Border); err != nil {
		return fmt.Errorf("config: canvas.border: %w", err)
	}
	if px := c.Canvas.DragThreshold; px != nil && (*px < 0 || math.IsNaN(*px)) {
		return fmt.Errorf("config: canvas.drag_threshold: must be >= 0, got %v", *px)
	}
	if c.Session.User != nil && c.Session.User.UserID == "" {
		return errors.New("config: session.user: missing id")
	}
	return nil
}

// Load reads path, fills defaults for unset fields and validates the
// result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML, fills defaults and validates.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	c.defaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns ~/.canvasview/canvasview.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".canvasview", FileName), nil
}

// ViewerOptions converts the canvas and window sections into viewer options.
func (c Config) ViewerOptions() []canvas.ViewerOption {
	return []canvas.ViewerOption{
		canvas.WithSurfaceSize(float64(c.Window.Width), float64(c.Window.Height)),
		canvas.WithFocused(c.Window.Focused),
		canvas.WithBackground(gg.Hex(c.Canvas.Background)),
		canvas.WithBorderColor(gg.Hex(c.Canvas.Border)),
		canvas.WithDragThreshold(floatOr(c.Canvas.DragThreshold, canvas.DefaultDragThreshold)),
		canvas.WithZoomIntensity(c.Canvas.ZoomIntensity),
		canvas.WithPanEnabled(boolOr(c.Canvas.Pan, true)),
		canvas.WithZoomEnabled(boolOr(c.Canvas.Zoom, true)),
		canvas.WithCommentConfigID(canvas.DefaultCommentConfigID),
	}
}

// LabelsEnabled reports whether toolbar and pin labels are drawn.
func (c Config) LabelsEnabled() bool { return boolOr(c.Canvas.Labels, true) }

// Collab converts the session section into a collab.Config.
func (c Config) Collab() collab.Config {
	return collab.Config{
		APIKey:       c.Session.APIKey,
		User:         c.Session.User,
		DocumentID:   c.Session.DocumentID,
		DocumentName: c.Session.DocumentName,
		DarkMode:     boolOr(c.Session.DarkMode, true),
	}
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
