// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Marker is a user-placed point in content space.
type Marker struct {
	X, Y float64
}

// Marker ring appearance.
const (
	MarkerRadius    = 10
	markerLineWidth = 2
	shapeLineWidth  = 2
)

var markerColor = gg.Hex("#00FFFF")

// decoration is one of the fixed shapes drawn under the markers.
type decoration struct {
	color gg.RGBA
	trace func(dc *gg.Context)
}

// decorations are defined in content space and never change.
var decorations = []decoration{
	{color: gg.Hex("#FF4DF8"), trace: func(dc *gg.Context) { traceStar(dc, 320, 350, 5, 60, 30) }},
	{color: gg.Hex("#FF7162"), trace: func(dc *gg.Context) { dc.DrawRectangle(450, 300, 100, 100) }},
	{color: gg.Hex("#FFEF00"), trace: func(dc *gg.Context) {
		dc.MoveTo(670, 400)
		dc.LineTo(620, 300)
		dc.LineTo(720, 300)
		dc.ClosePath()
	}},
}

// traceStar adds a star outline starting from the top spike.
func traceStar(dc *gg.Context, cx, cy float64, spikes int, outer, inner float64) {
	rot := math.Pi / 2 * 3
	step := math.Pi / float64(spikes)

	dc.MoveTo(cx, cy-outer)
	for i := 0; i < spikes; i++ {
		dc.LineTo(cx+math.Cos(rot)*outer, cy+math.Sin(rot)*outer)
		rot += step
		dc.LineTo(cx+math.Cos(rot)*inner, cy+math.Sin(rot)*inner)
		rot += step
	}
	dc.LineTo(cx, cy-outer)
	dc.ClosePath()
}

// inContent reports whether p lies inside the content rectangle, edges included.
func inContent(p gg.Point) bool {
	return p.X >= 0 && p.X <= ContentBounds.Width && p.Y >= 0 && p.Y <= ContentBounds.Height
}
