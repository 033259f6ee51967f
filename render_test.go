// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
)

type rgb8 struct{ r, g, b uint8 }

func pixelAt(t *testing.T, v *Viewer, x, y int) rgb8 {
	t.Helper()
	r, g, b, _ := v.Context().Image().At(x, y).RGBA()
	return rgb8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func closeTo(got rgb8, want gg.RGBA) bool {
	diff := func(a uint8, b float64) bool {
		d := int(a) - int(b*255+0.5)
		return d >= -3 && d <= 3
	}
	return diff(got.r, want.R) && diff(got.g, want.G) && diff(got.b, want.B)
}

func newFocusedViewer(t *testing.T, opts ...ViewerOption) *Viewer {
	t.Helper()
	opts = append([]ViewerOption{WithSurfaceSize(800, 500), WithFocused(true)}, opts...)
	v, err := NewViewer(opts...)
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	return v
}

func TestRenderer_DrawsScene(t *testing.T) {
	v := newFocusedViewer(t)

	if got := pixelAt(t, v, 10, 10); !closeTo(got, gg.Hex("#1E1E1E")) {
		t.Errorf("background pixel = %+v", got)
	}
	// Left edge of the rectangle: content x=450 maps to screen x=350 at
	// the home camera; the 2px stroke covers pixels 349 and 350.
	if got := pixelAt(t, v, 349, 270); !closeTo(got, gg.Hex("#FF7162")) {
		t.Errorf("rectangle edge pixel = %+v", got)
	}
}

func TestRenderer_DrawsMarkerRing(t *testing.T) {
	v := newFocusedViewer(t)
	before := pixelAt(t, v, 409, 250)
	if !v.AddMarker(gg.Pt(500, 330)) {
		t.Fatal("AddMarker rejected an in-bounds point")
	}
	got := pixelAt(t, v, 409, 250)
	if got == before || !closeTo(got, markerColor) {
		t.Errorf("marker ring pixel = %+v (before %+v)", got, before)
	}
	// The ring is not filled.
	if centre := pixelAt(t, v, 400, 250); centre != before {
		t.Errorf("marker centre changed to %+v", centre)
	}
}

func TestRenderer_CompositesOverlay(t *testing.T) {
	v := newFocusedViewer(t)
	v.RenderAnnotations([]Annotation{annotationAt("a", 500, 330)})
	if got := pixelAt(t, v, 400, 250); !closeTo(got, pinColor) {
		t.Errorf("pin centre pixel = %+v", got)
	}
	v.PanBy(-50, 0)
	if got := pixelAt(t, v, 350, 250); !closeTo(got, pinColor) {
		t.Errorf("pin did not follow the pan, pixel = %+v", got)
	}
}

func TestRenderer_CountsFrames(t *testing.T) {
	v := newFocusedViewer(t)
	if got := v.Frames(); got != 1 {
		t.Fatalf("initial frames = %d, want 1", got)
	}
	v.PanBy(-10, 0)
	if got := v.Frames(); got != 2 {
		t.Errorf("frames after pan = %d, want 2", got)
	}
	v.PanBy(0, 0)
	if got := v.Frames(); got != 2 {
		t.Errorf("no-op pan redrew, frames = %d", got)
	}
}

func TestViewer_EncodePNG(t *testing.T) {
	v := newFocusedViewer(t)
	var buf bytes.Buffer
	if err := v.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 500 {
		t.Errorf("image bounds = %v, want 800x500", b)
	}
}
