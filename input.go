// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"maps"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// Input tuning defaults.
const (
	// DefaultDragThreshold is the distance in pixels a pointer must travel
	// from where it went down before the gesture becomes a pan.
	DefaultDragThreshold = 5.0

	// DefaultZoomIntensity scales wheel and platform gesture zoom.
	DefaultZoomIntensity = 1.25

	wheelPixelScale = 0.001
	wheelLineHeight = 16.0
	minWheelFactor  = 0.1
)

// InputResult describes what one input event did.
type InputResult struct {
	// CameraChanged is set when the event moved or zoomed the camera.
	CameraChanged bool

	// Clicked is set when a pointer was released without exceeding the
	// drag threshold. Click holds the release position in viewport
	// coordinates.
	Clicked bool
	Click   gg.Point
}

// Input turns pointer, wheel and gesture events into viewport operations
// and separates clicks from drags. Positions are in viewport coordinates.
//
// One primary pointer (mouse button, pen or first finger) pans once it has
// moved beyond the drag threshold. A second finger starts a two-finger
// gesture: the change in finger distance zooms about the centroid and the
// centroid movement pans. When the platform delivers precomputed gestures
// the raw finger pair is not tracked.
type Input struct {
	vp        *Viewport
	threshold float64
	intensity float64
	gestures  bool

	// primary pointer
	active    bool
	pointerID int
	start     gg.Point
	last      gg.Point
	dragging  bool

	// touch contacts by pointer id
	touches  map[int]gg.Point
	pair     [2]int
	pairing  bool
	lastDist float64
	lastMid  gg.Point
}

// NewInput creates an input handler driving vp.
func NewInput(vp *Viewport, threshold, intensity float64) *Input {
	return &Input{
		vp:        vp,
		threshold: threshold,
		intensity: intensity,
		touches:   make(map[int]gg.Point),
	}
}

// SetGestureSupport switches between platform gestures (true) and raw
// finger pair tracking (false).
func (in *Input) SetGestureSupport(enabled bool) { in.gestures = enabled }

// Dragging reports whether the active pointer has been classified as a drag.
func (in *Input) Dragging() bool { return in.active && in.dragging }

// Reset drops all pointer state.
func (in *Input) Reset() {
	in.active = false
	in.dragging = false
	in.pairing = false
	in.lastDist = 0
	clear(in.touches)
}

// HandlePointer processes one pointer event.
func (in *Input) HandlePointer(ev gpucontext.PointerEvent) InputResult {
	p := gg.Pt(ev.X, ev.Y)
	touch := ev.PointerType == gpucontext.PointerTypeTouch

	switch ev.Type {
	case gpucontext.PointerDown:
		if touch {
			in.touches[ev.PointerID] = p
			if len(in.touches) >= 2 {
				in.beginPair()
				return InputResult{}
			}
		} else if ev.Button != gpucontext.ButtonLeft {
			return InputResult{}
		}
		if !in.active {
			in.active = true
			in.pointerID = ev.PointerID
			in.start, in.last = p, p
			in.dragging = false
		}

	case gpucontext.PointerMove:
		if touch {
			if _, ok := in.touches[ev.PointerID]; ok {
				in.touches[ev.PointerID] = p
			}
			if in.pairing && (ev.PointerID == in.pair[0] || ev.PointerID == in.pair[1]) {
				return InputResult{CameraChanged: in.movePair()}
			}
		}
		if in.active && ev.PointerID == in.pointerID {
			return InputResult{CameraChanged: in.moveDrag(p)}
		}

	case gpucontext.PointerUp:
		if touch {
			in.endTouch(ev.PointerID)
		}
		if in.active && ev.PointerID == in.pointerID {
			// Moves may be coalesced away, so the release position is
			// classified like a final move.
			changed := in.moveDrag(p)
			in.active = false
			if !in.dragging {
				return InputResult{Clicked: true, Click: p}
			}
			return InputResult{CameraChanged: changed}
		}

	case gpucontext.PointerCancel:
		if touch {
			in.endTouch(ev.PointerID)
		}
		if in.active && ev.PointerID == in.pointerID {
			in.active = false
		}
	}
	return InputResult{}
}

// moveDrag pans once the pointer has left the threshold circle around its
// down position. The first pan includes the movement made inside the circle.
// With panning disabled the pointer is never classified as a drag, so its
// release still clicks.
func (in *Input) moveDrag(p gg.Point) bool {
	if !in.vp.PanEnabled() {
		return false
	}
	if !in.dragging {
		if p.Sub(in.start).Length() <= in.threshold {
			return false
		}
		in.dragging = true
		in.last = in.start
	}
	d := p.Sub(in.last)
	in.last = p
	return in.vp.PanBy(d.X, d.Y)
}

// beginPair starts a two-finger gesture. The primary pointer stops panning
// and can no longer produce a click.
func (in *Input) beginPair() {
	in.active = false
	if in.gestures || in.pairing {
		return
	}
	// Platforms hand out increasing ids, so the two lowest are the first
	// fingers down.
	ids := slices.Sorted(maps.Keys(in.touches))
	in.pair = [2]int{ids[0], ids[1]}
	in.pairing = true
	in.lastMid, in.lastDist = in.pairGeometry()
}

func (in *Input) pairGeometry() (mid gg.Point, dist float64) {
	a, b := in.touches[in.pair[0]], in.touches[in.pair[1]]
	return a.Add(b).Div(2), a.Sub(b).Length()
}

// movePair pans by the centroid movement, then zooms about the new
// centroid, so the content under the fingers follows them.
func (in *Input) movePair() bool {
	mid, dist := in.pairGeometry()
	d := mid.Sub(in.lastMid)
	changed := in.vp.PanBy(d.X, d.Y)
	if in.lastDist > 0 && dist > 0 && in.vp.Zoom(dist/in.lastDist, mid.X, mid.Y) {
		changed = true
	}
	in.lastMid, in.lastDist = mid, dist
	return changed
}

func (in *Input) endTouch(id int) {
	delete(in.touches, id)
	if in.pairing && (id == in.pair[0] || id == in.pair[1]) {
		in.pairing = false
		in.lastDist = 0
	}
}

// HandleScroll zooms about the pointer. Wheel deltas are converted to
// pixels before applying 1 - delta*0.001*intensity.
func (in *Input) HandleScroll(ev gpucontext.ScrollEvent) bool {
	dy := ev.DeltaY
	switch ev.DeltaMode {
	case gpucontext.ScrollDeltaLine:
		dy *= wheelLineHeight
	case gpucontext.ScrollDeltaPage:
		dy *= in.vp.Size().Height
	}
	if dy == 0 || !finite(dy) {
		return false
	}
	factor := math.Max(1-dy*wheelPixelScale*in.intensity, minWheelFactor)
	return in.vp.Zoom(factor, ev.X, ev.Y)
}

// HandleGesture applies a platform gesture: zoom about its centre, then pan
// by its translation.
func (in *Input) HandleGesture(ev gpucontext.GestureEvent) bool {
	if ev.NumPointers < 2 {
		return false
	}
	changed := false
	if ev.ZoomDelta > 0 {
		factor := 1 - (1-ev.ZoomDelta)*in.intensity
		if factor > 0 {
			changed = in.vp.Zoom(factor, ev.Center.X, ev.Center.Y)
		}
	}
	if in.vp.PanBy(ev.TranslationDelta.X, ev.TranslationDelta.Y) {
		changed = true
	}
	return changed
}
