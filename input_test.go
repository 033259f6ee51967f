// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

func mouse(typ gpucontext.PointerEventType, x, y float64) gpucontext.PointerEvent {
	ev := gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   1,
		X:           x,
		Y:           y,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
		Button:      gpucontext.ButtonNone,
	}
	if typ == gpucontext.PointerDown || typ == gpucontext.PointerUp {
		ev.Button = gpucontext.ButtonLeft
	}
	return ev
}

func touch(typ gpucontext.PointerEventType, id int, x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   id,
		X:           x,
		Y:           y,
		PointerType: gpucontext.PointerTypeTouch,
		IsPrimary:   id == 1,
	}
}

func newTestInput(t *testing.T) (*Input, *Viewport) {
	t.Helper()
	vp := newTestViewport(t)
	return NewInput(vp, DefaultDragThreshold, DefaultZoomIntensity), vp
}

func TestInput_ClickVersusDrag(t *testing.T) {
	tests := []struct {
		name      string
		moves     []gg.Point
		release   gg.Point
		wantClick bool
	}{
		{"tap", nil, gg.Pt(100, 100), true},
		{"jitter within threshold", []gg.Point{{X: 102, Y: 101}, {X: 103, Y: 103}}, gg.Pt(103, 103), true},
		{"exactly at threshold", []gg.Point{{X: 105, Y: 100}}, gg.Pt(105, 100), true},
		{"past threshold", []gg.Point{{X: 106, Y: 100}}, gg.Pt(106, 100), false},
		{"out and back", []gg.Point{{X: 120, Y: 100}, {X: 100, Y: 100}}, gg.Pt(100, 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := newTestInput(t)
			in.HandlePointer(mouse(gpucontext.PointerDown, 100, 100))
			for _, m := range tt.moves {
				in.HandlePointer(mouse(gpucontext.PointerMove, m.X, m.Y))
			}
			res := in.HandlePointer(mouse(gpucontext.PointerUp, tt.release.X, tt.release.Y))
			if res.Clicked != tt.wantClick {
				t.Fatalf("Clicked = %v, want %v", res.Clicked, tt.wantClick)
			}
			if res.Clicked && res.Click != tt.release {
				t.Errorf("Click = %v, want release point %v", res.Click, tt.release)
			}
		})
	}
}

func TestInput_NoPanInsideThreshold(t *testing.T) {
	in, vp := newTestInput(t)
	in.HandlePointer(mouse(gpucontext.PointerDown, 100, 100))
	res := in.HandlePointer(mouse(gpucontext.PointerMove, 97, 98))
	if res.CameraChanged || vp.Camera() != HomeCamera {
		t.Errorf("movement within threshold panned: %+v", vp.Camera())
	}
}

func TestInput_DragPansByFullDisplacement(t *testing.T) {
	in, vp := newTestInput(t)
	in.HandlePointer(mouse(gpucontext.PointerDown, 300, 300))
	in.HandlePointer(mouse(gpucontext.PointerMove, 297, 300))
	in.HandlePointer(mouse(gpucontext.PointerMove, 290, 296))
	if !in.Dragging() {
		t.Fatal("expected drag")
	}
	in.HandlePointer(mouse(gpucontext.PointerMove, 280, 290))
	in.HandlePointer(mouse(gpucontext.PointerUp, 280, 290))

	want := Camera{Scale: 1, OffsetX: -120, OffsetY: -90}
	if got := vp.Camera(); got != want {
		t.Errorf("camera = %+v, want %+v", got, want)
	}
}

func TestInput_ReleaseWithoutMove(t *testing.T) {
	tests := []struct {
		name        string
		release     gg.Point
		wantClick   bool
		wantChanged bool
		want        Camera
	}{
		{"at down point", gg.Pt(300, 300), true, false, HomeCamera},
		{"within threshold", gg.Pt(303, 304), true, false, HomeCamera},
		{"past threshold", gg.Pt(250, 270), false, true, Camera{Scale: 1, OffsetX: -150, OffsetY: -110}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, vp := newTestInput(t)
			in.HandlePointer(mouse(gpucontext.PointerDown, 300, 300))
			res := in.HandlePointer(mouse(gpucontext.PointerUp, tt.release.X, tt.release.Y))
			if res.Clicked != tt.wantClick || res.CameraChanged != tt.wantChanged {
				t.Errorf("result = %+v, want Clicked=%v CameraChanged=%v", res, tt.wantClick, tt.wantChanged)
			}
			if got := vp.Camera(); got != tt.want {
				t.Errorf("camera = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInput_PanDisabledStillClicks(t *testing.T) {
	in, vp := newTestInput(t)
	vp.SetPanEnabled(false)
	in.HandlePointer(mouse(gpucontext.PointerDown, 300, 300))
	in.HandlePointer(mouse(gpucontext.PointerMove, 260, 280))
	if in.Dragging() {
		t.Error("pointer classified as drag with panning disabled")
	}
	res := in.HandlePointer(mouse(gpucontext.PointerUp, 260, 280))
	if !res.Clicked || res.Click != gg.Pt(260, 280) {
		t.Errorf("result = %+v, want click at (260, 280)", res)
	}
	if vp.Camera() != HomeCamera {
		t.Errorf("camera moved: %+v", vp.Camera())
	}
}

func TestInput_IgnoresNonLeftButtons(t *testing.T) {
	in, _ := newTestInput(t)
	down := mouse(gpucontext.PointerDown, 100, 100)
	down.Button = gpucontext.ButtonRight
	in.HandlePointer(down)
	up := mouse(gpucontext.PointerUp, 100, 100)
	up.Button = gpucontext.ButtonRight
	if res := in.HandlePointer(up); res.Clicked {
		t.Error("right button produced a click")
	}
}

func TestInput_CancelDropsClick(t *testing.T) {
	in, _ := newTestInput(t)
	in.HandlePointer(mouse(gpucontext.PointerDown, 100, 100))
	in.HandlePointer(mouse(gpucontext.PointerCancel, 100, 100))
	if res := in.HandlePointer(mouse(gpucontext.PointerUp, 100, 100)); res.Clicked {
		t.Error("release after cancel produced a click")
	}
}

func TestInput_PinchZoomsAboutCentroid(t *testing.T) {
	in, vp := newTestInput(t)
	in.HandlePointer(touch(gpucontext.PointerDown, 1, 350, 250))
	in.HandlePointer(touch(gpucontext.PointerDown, 2, 450, 250))

	content := vp.Camera().ToContent(gg.Pt(400, 250))
	// Fingers spread symmetrically: distance 100 -> 120, centroid fixed.
	in.HandlePointer(touch(gpucontext.PointerMove, 1, 340, 250))
	res := in.HandlePointer(touch(gpucontext.PointerMove, 2, 460, 250))
	if !res.CameraChanged {
		t.Fatal("pinch did not change the camera")
	}
	if got := vp.Camera().Scale; !near(got, 1.2) {
		t.Errorf("scale = %v, want 1.2", got)
	}
	got := vp.Camera().ToScreen(content)
	if !near(got.X, 400) || !near(got.Y, 250) {
		t.Errorf("centroid content maps to %v, want (400, 250)", got)
	}

	in.HandlePointer(touch(gpucontext.PointerUp, 2, 460, 250))
	if res := in.HandlePointer(touch(gpucontext.PointerUp, 1, 340, 250)); res.Clicked {
		t.Error("two-finger gesture produced a click")
	}
}

func TestInput_TwoFingerPan(t *testing.T) {
	in, vp := newTestInput(t)
	in.HandlePointer(touch(gpucontext.PointerDown, 1, 300, 200))
	in.HandlePointer(touch(gpucontext.PointerDown, 2, 400, 200))
	// Each finger moves separately, so the intermediate step also zooms;
	// the second step restores the distance and the scale.
	in.HandlePointer(touch(gpucontext.PointerMove, 1, 290, 190))
	in.HandlePointer(touch(gpucontext.PointerMove, 2, 390, 190))

	// Content (450, 280) was under the centroid (350, 200) and follows it
	// to (340, 190).
	want := Camera{Scale: 1, OffsetX: -110, OffsetY: -90}
	if got := vp.Camera(); !near(got.Scale, 1) || !near(got.OffsetX, want.OffsetX) || !near(got.OffsetY, want.OffsetY) {
		t.Errorf("camera = %+v, want %+v", got, want)
	}
}

func TestInput_ZeroDistancePinchGuarded(t *testing.T) {
	in, vp := newTestInput(t)
	in.HandlePointer(touch(gpucontext.PointerDown, 1, 300, 200))
	in.HandlePointer(touch(gpucontext.PointerDown, 2, 300, 200))
	in.HandlePointer(touch(gpucontext.PointerMove, 2, 330, 200))
	if got := vp.Camera().Scale; got != 1 {
		t.Errorf("zero starting distance zoomed to %v", got)
	}
}

func TestInput_Wheel(t *testing.T) {
	tests := []struct {
		name      string
		ev        gpucontext.ScrollEvent
		wantScale float64
	}{
		{"pixel up", gpucontext.ScrollEvent{X: 400, Y: 250, DeltaY: -100}, 1.125},
		{"pixel down", gpucontext.ScrollEvent{X: 400, Y: 250, DeltaY: 40}, 0.95},
		{"line up", gpucontext.ScrollEvent{X: 400, Y: 250, DeltaY: -5, DeltaMode: gpucontext.ScrollDeltaLine}, 1.1},
		{"horizontal only", gpucontext.ScrollEvent{X: 400, Y: 250, DeltaX: 30}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, vp := newTestInput(t)
			in.HandleScroll(tt.ev)
			if got := vp.Camera().Scale; !near(got, tt.wantScale) {
				t.Errorf("scale = %v, want %v", got, tt.wantScale)
			}
		})
	}
}

func TestInput_Gesture(t *testing.T) {
	in, vp := newTestInput(t)
	if in.HandleGesture(gpucontext.GestureEvent{NumPointers: 1, ZoomDelta: 2}) {
		t.Error("single-pointer gesture changed the camera")
	}
	in.HandleGesture(gpucontext.GestureEvent{
		NumPointers: 2,
		ZoomDelta:   1.08,
		Center:      gpucontext.Point{X: 400, Y: 250},
	})
	if got := vp.Camera().Scale; !near(got, 1.1) {
		t.Errorf("scale = %v, want 1.1", got)
	}
	before := vp.Camera()
	in.HandleGesture(gpucontext.GestureEvent{
		NumPointers:      2,
		ZoomDelta:        1,
		TranslationDelta: gpucontext.Point{X: -10, Y: -5},
	})
	if got := vp.Camera(); !near(got.OffsetX, before.OffsetX-10) || !near(got.OffsetY, before.OffsetY-5) {
		t.Errorf("camera = %+v, want pan by (-10, -5) from %+v", got, before)
	}
}

func TestInput_GestureSupportSkipsRawPair(t *testing.T) {
	in, vp := newTestInput(t)
	in.SetGestureSupport(true)
	in.HandlePointer(touch(gpucontext.PointerDown, 1, 350, 250))
	in.HandlePointer(touch(gpucontext.PointerDown, 2, 450, 250))
	in.HandlePointer(touch(gpucontext.PointerMove, 2, 500, 250))
	if vp.Camera() != HomeCamera {
		t.Errorf("raw pair moved the camera with gesture support on: %+v", vp.Camera())
	}
}
