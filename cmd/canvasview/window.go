// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/gogpu/canvas/integration/window"
	"github.com/spf13/cobra"
)

var windowFeed string

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the canvas in a window",
	Long: `Window opens an interactive canvas. Drag to pan, use the wheel or a pinch
to zoom, click to place a marker. Keys: = zoom in, - zoom out, 0 reset,
C add a comment at the pointer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := viewerOptions()
		if err != nil {
			return err
		}
		feed := windowFeed
		if feed == "" {
			feed = cfg.Feed.Path
		}
		return window.Run(cmd.Context(), window.Config{
			Title:    cfg.Window.Title,
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Viewer:   opts,
			Session:  cfg.Collab(),
			FeedPath: feed,
			Log:      logger,
		})
	},
}

func init() {
	windowCmd.Flags().StringVar(&windowFeed, "feed", "", "JSON annotation file to watch (overrides feed.path)")
	rootCmd.AddCommand(windowCmd)
}
