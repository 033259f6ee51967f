// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"log/slog"
)

// Toolbar zoom steps applied about the viewport centre.
const (
	zoomInStep  = 1.05
	zoomOutStep = 0.95
)

// Viewport owns the camera for one visible surface and keeps it inside the
// scale and pan limits. Every mutating method returns true when the camera
// actually changed.
//
// Viewport is NOT safe for concurrent use.
type Viewport struct {
	cam     Camera
	home    Camera
	content Size
	size    Size

	panEnabled  bool
	zoomEnabled bool

	log *slog.Logger
}

// NewViewport creates a viewport of the given size showing ContentBounds
// from the home camera.
func NewViewport(size Size) (*Viewport, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%g, height=%g", ErrInvalidViewport, size.Width, size.Height)
	}
	v := &Viewport{
		home:        HomeCamera,
		content:     ContentBounds,
		size:        size,
		panEnabled:  true,
		zoomEnabled: true,
		log:         Logger(),
	}
	v.cam = v.home.clamped(v.content, v.size)
	return v, nil
}

// Camera returns the current camera.
func (v *Viewport) Camera() Camera { return v.cam }

// Size returns the viewport size.
func (v *Viewport) Size() Size { return v.size }

// Content returns the content bounds used for clamping.
func (v *Viewport) Content() Size { return v.content }

// SetPanEnabled enables or disables PanBy.
func (v *Viewport) SetPanEnabled(enabled bool) { v.panEnabled = enabled }

// SetZoomEnabled enables or disables Zoom, ZoomIn and ZoomOut.
func (v *Viewport) SetZoomEnabled(enabled bool) { v.zoomEnabled = enabled }

// PanEnabled reports whether panning is allowed.
func (v *Viewport) PanEnabled() bool { return v.panEnabled }

// ZoomEnabled reports whether zooming is allowed.
func (v *Viewport) ZoomEnabled() bool { return v.zoomEnabled }

// Zoom multiplies the scale by factor, keeping the content point under the
// pivot (in viewport coordinates) fixed on screen. The new scale is clamped
// to [MinScale, MaxScale] and the offset is clamped afterwards.
//
// Factors that are not finite and positive are ignored.
func (v *Viewport) Zoom(factor, pivotX, pivotY float64) bool {
	if !v.zoomEnabled || !finite(factor) || factor <= 0 || !finite(pivotX) || !finite(pivotY) {
		return false
	}
	old := v.cam
	newScale := clampScale(old.Scale * factor)
	if newScale == old.Scale {
		return false
	}
	k := newScale / old.Scale
	next := Camera{
		Scale:   newScale,
		OffsetX: pivotX - k*(pivotX-old.OffsetX),
		OffsetY: pivotY - k*(pivotY-old.OffsetY),
	}
	return v.set(next.clamped(v.content, v.size), "zoom")
}

// ZoomIn zooms one toolbar step in about the viewport centre.
func (v *Viewport) ZoomIn() bool {
	return v.Zoom(zoomInStep, v.size.Width/2, v.size.Height/2)
}

// ZoomOut zooms one toolbar step out about the viewport centre.
func (v *Viewport) ZoomOut() bool {
	return v.Zoom(zoomOutStep, v.size.Width/2, v.size.Height/2)
}

// PanBy moves the camera by (dx, dy) screen pixels, then clamps.
func (v *Viewport) PanBy(dx, dy float64) bool {
	if !v.panEnabled || !finite(dx) || !finite(dy) {
		return false
	}
	next := v.cam
	next.OffsetX += dx
	next.OffsetY += dy
	return v.set(next.clamped(v.content, v.size), "pan")
}

// Reset restores the home camera.
func (v *Viewport) Reset() bool {
	return v.set(v.home.clamped(v.content, v.size), "reset")
}

// Resize changes the visible surface size and re-clamps the offset.
func (v *Viewport) Resize(size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("%w: width=%g, height=%g", ErrInvalidViewport, size.Width, size.Height)
	}
	v.size = size
	v.set(v.cam.clamped(v.content, v.size), "resize")
	return nil
}

func (v *Viewport) set(next Camera, op string) bool {
	if next == v.cam {
		return false
	}
	v.cam = next
	v.log.Debug("canvas: camera changed",
		"op", op, "scale", next.Scale, "offsetX", next.OffsetX, "offsetY", next.OffsetY)
	return true
}
