// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/collab"
	"github.com/gogpu/canvas/internal/script"
	"github.com/spf13/cobra"
)

var renderFlags struct {
	output string
	script string
	feed   string
	width  int
	height int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Replay an event script and write the frame as PNG",
	Long: `Render builds the canvas headless, loads annotations from the feed file,
replays the event script against it and writes the final frame as PNG.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if renderFlags.width > 0 {
			cfg.Window.Width = renderFlags.width
		}
		if renderFlags.height > 0 {
			cfg.Window.Height = renderFlags.height
		}
		feedPath := renderFlags.feed
		if feedPath == "" {
			feedPath = cfg.Feed.Path
		}

		opts, err := viewerOptions()
		if err != nil {
			return err
		}
		v, err := canvas.NewViewer(append(opts, canvas.WithLogger(logger))...)
		if err != nil {
			return err
		}

		svc := collab.NewLocal(logger)
		el, err := collab.Start(cmd.Context(), svc, cfg.Collab())
		if err != nil {
			return err
		}
		defer collab.Bind(el, v, logger)()

		if feedPath != "" {
			list, err := collab.NewFileFeed(feedPath, logger).Load()
			if err != nil {
				return err
			}
			svc.Load(list)
			v.Drain()
		}
		if renderFlags.script != "" {
			s, err := script.Load(renderFlags.script)
			if err != nil {
				return err
			}
			if err := s.Replay(v, svc); err != nil {
				return err
			}
		}

		if err := v.SavePNG(renderFlags.output); err != nil {
			return err
		}
		cam := v.Camera()
		cmd.Printf("wrote %s: %d markers, %d pins, scale %.3f, offset (%.1f, %.1f)\n",
			renderFlags.output, len(v.Markers()), v.Overlay().Len(), cam.Scale, cam.OffsetX, cam.OffsetY)
		return nil
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "canvas.png", "output PNG file")
	f.StringVarP(&renderFlags.script, "script", "s", "", "YAML event script to replay")
	f.StringVar(&renderFlags.feed, "feed", "", "JSON annotation file (overrides feed.path)")
	f.IntVar(&renderFlags.width, "width", 0, "surface width (overrides window.width)")
	f.IntVar(&renderFlags.height, "height", 0, "surface height (overrides window.height)")
	rootCmd.AddCommand(renderCmd)
}
