// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command canvasview renders the collaborative canvas headless or in a
// window.
//
// Usage:
//
//	canvasview render --script session.yaml --feed annotations.json -o canvas.png
//	canvasview window --feed annotations.json
//	canvasview version
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
