// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Renderer draws one frame of the viewer onto a gg context: toolbar,
// decorative shapes, markers and the composited overlay.
type Renderer struct {
	dc         *gg.Context
	background gg.RGBA
	border     gg.RGBA
	labels     bool
	frames     uint64
}

// NewRenderer creates a renderer drawing into dc. A nil face disables text.
func NewRenderer(dc *gg.Context, background, border gg.RGBA, face text.Face) *Renderer {
	if face != nil {
		dc.SetFont(face)
	}
	return &Renderer{dc: dc, background: background, border: border, labels: face != nil}
}

// Context returns the drawing context.
func (r *Renderer) Context() *gg.Context { return r.dc }

// Frames returns how many frames have been drawn.
func (r *Renderer) Frames() uint64 { return r.frames }

// frame is everything a single redraw reads.
type frame struct {
	camera   Camera
	origin   gg.Point
	viewport Size
	toolbar  bool
	markers  []Marker
	overlay  *Overlay
}

// Draw clears the surface and redraws f. The canvas layer is drawn with
// the camera applied as translate then scale; the overlay follows with its
// own synced transform.
func (r *Renderer) Draw(f frame) {
	dc := r.dc
	dc.ClearWithColor(r.background)
	if f.toolbar {
		drawToolbar(dc, float64(dc.Width()), r.labels)
	}

	dc.Push()
	dc.Translate(f.origin.X, f.origin.Y)
	dc.ClipRect(0, 0, f.viewport.Width, f.viewport.Height)

	dc.Push()
	dc.Translate(f.camera.OffsetX, f.camera.OffsetY)
	dc.Scale(f.camera.Scale, f.camera.Scale)

	dc.SetColor(r.border)
	dc.SetLineWidth(1 / f.camera.Scale)
	dc.DrawRectangle(0, 0, ContentBounds.Width, ContentBounds.Height)
	_ = dc.Stroke()

	dc.SetLineWidth(shapeLineWidth)
	for _, d := range decorations {
		dc.SetColor(d.color)
		d.trace(dc)
		_ = dc.Stroke()
	}

	dc.SetColor(markerColor)
	dc.SetLineWidth(markerLineWidth)
	for _, m := range f.markers {
		dc.DrawCircle(m.X, m.Y, MarkerRadius)
		_ = dc.Stroke()
	}
	dc.Pop()

	if f.overlay != nil {
		f.overlay.draw(dc, r.labels)
	}
	dc.Pop()
	r.frames++
}

// EncodePNG writes the current surface as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the current surface to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}
