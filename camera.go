// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Size is a width/height pair in logical pixels.
type Size struct {
	Width, Height float64
}

// ContentBounds is the extent of the logical drawing surface in content space.
// Pan clamping and marker placement both use it; the decorative shapes in
// scene.go lie inside it.
var ContentBounds = Size{Width: 1000, Height: 720}

// DefaultViewportSize is the visible surface size used when none is configured.
var DefaultViewportSize = Size{Width: 800, Height: 500}

// Scale limits and the home camera.
const (
	MinScale = 0.9
	MaxScale = 1.5

	homeScale   = 1
	homeOffsetX = -100
	homeOffsetY = -80
)

// HomeCamera is the camera restored by Reset.
var HomeCamera = Camera{Scale: homeScale, OffsetX: homeOffsetX, OffsetY: homeOffsetY}

// Camera maps content space to screen space:
//
//	screen = offset + scale * content
type Camera struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Matrix returns the camera as an affine transform, translate then scale.
func (c Camera) Matrix() gg.Matrix {
	return gg.Translate(c.OffsetX, c.OffsetY).Multiply(gg.Scale(c.Scale, c.Scale))
}

// ToScreen maps a content-space point to screen space.
func (c Camera) ToScreen(p gg.Point) gg.Point {
	return gg.Pt(p.X*c.Scale+c.OffsetX, p.Y*c.Scale+c.OffsetY)
}

// ToContent maps a screen-space point to content space.
// A camera with a zero scale maps everything to the origin.
func (c Camera) ToContent(p gg.Point) gg.Point {
	if c.Scale == 0 {
		return gg.Point{}
	}
	return gg.Pt((p.X-c.OffsetX)/c.Scale, (p.Y-c.OffsetY)/c.Scale)
}

// clamped returns c with its offset limited so the scaled content never
// exposes area outside the content rectangle.
func (c Camera) clamped(content, viewport Size) Camera {
	maxX := math.Max(0, content.Width*c.Scale-viewport.Width)
	maxY := math.Max(0, content.Height*c.Scale-viewport.Height)
	c.OffsetX = math.Max(-maxX, math.Min(0, c.OffsetX))
	c.OffsetY = math.Max(-maxY, math.Min(0, c.OffsetY))
	return c
}

func clampScale(s float64) float64 {
	return math.Min(math.Max(s, MinScale), MaxScale)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
