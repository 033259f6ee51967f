// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/collab"
	"github.com/gogpu/canvas/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	verbose    bool
	focused    bool
	pageURL    string

	cfg    config.Config
	logger = canvas.Logger()
)

var rootCmd = &cobra.Command{
	Use:          "canvasview",
	Short:        "Pannable, zoomable canvas with comment pins",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		canvas.SetLogger(logger)

		path := configPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if focused || (pageURL != "" && collab.Focused(pageURL)) {
			c.Window.Focused = true
		}
		cfg = c
		logger.Debug("canvasview: config loaded", "path", path, "focused", cfg.Window.Focused)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.canvasview/canvasview.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&focused, "focused", false, "focused mode: hide the toolbar")
	pf.StringVar(&pageURL, "url", "", "page URL; focused=true in its query enables focused mode")
}

// viewerOptions returns the configured viewer options, with the label font
// when labels are enabled.
func viewerOptions() ([]canvas.ViewerOption, error) {
	opts := cfg.ViewerOptions()
	if cfg.LabelsEnabled() {
		face, err := canvas.DefaultFace(canvas.LabelSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, canvas.WithFontFace(face))
	}
	return opts, nil
}
