// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// Viewer is a pannable, zoomable canvas with a synced annotation overlay.
//
// It owns the camera, the marker list and the overlay. Every camera change
// is followed, in the same call, by an overlay sync and a redraw, so the
// canvas and the overlay never disagree between events.
//
// Viewer is NOT safe for concurrent use. The only exception is Post, which
// may be called from any goroutine; call Drain from the UI thread.
type Viewer struct {
	opts     viewerOptions
	log      *slog.Logger
	vp       *Viewport
	input    *Input
	overlay  *Overlay
	bridge   *Bridge
	renderer *Renderer
	markers  []Marker
	origin   gg.Point
	owned    bool
	inbox    chan []Annotation
}

// NewViewer creates a viewer and draws its first frame.
//
// Returns ErrInvalidViewport if the surface leaves no room for the canvas.
func NewViewer(opts ...ViewerOption) (*Viewer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	dc, owned := o.context, false
	if dc == nil {
		if o.surface.Width < 1 || o.surface.Height < 1 {
			return nil, fmt.Errorf("%w: surface %gx%g", ErrInvalidViewport, o.surface.Width, o.surface.Height)
		}
		dc, owned = gg.NewContext(int(o.surface.Width), int(o.surface.Height)), true
	}

	var origin gg.Point
	if !o.focused {
		origin.Y = ToolbarHeight
	}
	vp, err := NewViewport(Size{
		Width:  float64(dc.Width()) - origin.X,
		Height: float64(dc.Height()) - origin.Y,
	})
	if err != nil {
		return nil, err
	}
	vp.log = log
	vp.SetPanEnabled(o.panEnabled)
	vp.SetZoomEnabled(o.zoomEnabled)

	in := NewInput(vp, o.dragThreshold, o.zoomIntensity)
	in.SetGestureSupport(o.gestureSupport)

	overlay := NewOverlay(origin)
	v := &Viewer{
		opts:     o,
		log:      log,
		vp:       vp,
		input:    in,
		overlay:  overlay,
		bridge:   NewBridge(overlay, o.pinFactory, o.commentID, log),
		renderer: NewRenderer(dc, o.background, o.border, o.face),
		origin:   origin,
		owned:    owned,
		inbox:    make(chan []Annotation, o.inboxSize),
	}
	v.commit()
	return v, nil
}

// Camera returns the current camera.
func (v *Viewer) Camera() Camera { return v.vp.Camera() }

// ViewportSize returns the canvas area in pixels, toolbar excluded.
func (v *Viewer) ViewportSize() Size { return v.vp.Size() }

// PanEnabled reports whether pointer drags pan the camera.
func (v *Viewer) PanEnabled() bool { return v.vp.PanEnabled() }

// ZoomEnabled reports whether wheel, pinch and toolbar zoom are active.
func (v *Viewer) ZoomEnabled() bool { return v.vp.ZoomEnabled() }

// Overlay returns the annotation overlay.
func (v *Viewer) Overlay() *Overlay { return v.overlay }

// Bridge returns the annotation bridge.
func (v *Viewer) Bridge() *Bridge { return v.bridge }

// Context returns the drawing context.
func (v *Viewer) Context() *gg.Context { return v.renderer.Context() }

// Frames returns how many frames have been drawn. Hosts compare it between
// events to decide whether the surface needs presenting.
func (v *Viewer) Frames() uint64 { return v.renderer.Frames() }

// Focused reports whether the viewer runs in focused mode (no toolbar).
func (v *Viewer) Focused() bool { return v.opts.focused }

// Origin returns the canvas top-left corner in surface coordinates.
func (v *Viewer) Origin() gg.Point { return v.origin }

// Markers returns a copy of the placed markers in placement order.
func (v *Viewer) Markers() []Marker {
	out := make([]Marker, len(v.markers))
	copy(out, v.markers)
	return out
}

// Render redraws the surface from the current state.
func (v *Viewer) Render() {
	v.renderer.Draw(frame{
		camera:   v.vp.Camera(),
		origin:   v.origin,
		viewport: v.vp.Size(),
		toolbar:  !v.opts.focused,
		markers:  v.markers,
		overlay:  v.overlay,
	})
}

// commit pushes the camera to the overlay and redraws. The overlay is
// synced first because the frame composites it.
func (v *Viewer) commit() {
	v.overlay.Sync(v.vp.Camera())
	v.Render()
}

func (v *Viewer) commitIf(changed bool) bool {
	if changed {
		v.commit()
	}
	return changed
}

// Zoom zooms by factor about a pivot given in surface coordinates.
func (v *Viewer) Zoom(factor, x, y float64) bool {
	return v.commitIf(v.vp.Zoom(factor, x-v.origin.X, y-v.origin.Y))
}

// PanBy moves the camera by (dx, dy) pixels.
func (v *Viewer) PanBy(dx, dy float64) bool { return v.commitIf(v.vp.PanBy(dx, dy)) }

// Reset restores the home camera.
func (v *Viewer) Reset() bool { return v.commitIf(v.vp.Reset()) }

// ZoomIn zooms one toolbar step in.
func (v *Viewer) ZoomIn() bool { return v.commitIf(v.vp.ZoomIn()) }

// ZoomOut zooms one toolbar step out.
func (v *Viewer) ZoomOut() bool { return v.commitIf(v.vp.ZoomOut()) }

// Apply runs a toolbar action.
func (v *Viewer) Apply(a ToolbarAction) bool {
	v.log.Debug("canvas: toolbar", "action", a)
	switch a {
	case ToolbarZoomIn:
		return v.ZoomIn()
	case ToolbarZoomOut:
		return v.ZoomOut()
	case ToolbarReset:
		return v.Reset()
	}
	return false
}

// Resize adapts the viewer to a new surface size. A context created by
// the viewer is resized too; a context passed with WithContext must already
// have been resized by its owner.
func (v *Viewer) Resize(width, height int) error {
	err := v.vp.Resize(Size{
		Width:  float64(width) - v.origin.X,
		Height: float64(height) - v.origin.Y,
	})
	if err != nil {
		return err
	}
	if v.owned {
		if err := v.renderer.dc.Resize(width, height); err != nil {
			return fmt.Errorf("canvas: resize surface: %w", err)
		}
	}
	v.commit()
	return nil
}

// AddMarker places a marker at a content-space position. Positions
// outside ContentBounds are rejected.
func (v *Viewer) AddMarker(p gg.Point) bool {
	if !inContent(p) {
		return false
	}
	v.markers = append(v.markers, Marker{X: p.X, Y: p.Y})
	v.log.Info("canvas: marker placed", "x", p.X, "y", p.Y, "count", len(v.markers))
	v.Render()
	return true
}

func (v *Viewer) inViewport(p gg.Point) bool {
	s := v.vp.Size()
	x, y := p.X-v.origin.X, p.Y-v.origin.Y
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// HandlePointer processes a pointer event in surface coordinates.
func (v *Viewer) HandlePointer(ev gpucontext.PointerEvent) {
	p := gg.Pt(ev.X, ev.Y)
	switch ev.Type {
	case gpucontext.PointerMove:
		v.bridge.TrackPointer(ev.X, ev.Y)
	case gpucontext.PointerDown:
		if !v.opts.focused {
			if a, ok := toolbarHit(p); ok {
				v.Apply(a)
				return
			}
		}
		if !v.inViewport(p) {
			return
		}
	}

	local := ev
	local.X -= v.origin.X
	local.Y -= v.origin.Y
	res := v.input.HandlePointer(local)
	v.commitIf(res.CameraChanged)
	if res.Clicked && v.inViewport(p) {
		v.click(res.Click)
	}
}

// click handles a released, non-dragged pointer at a viewport position.
// A click on a pin belongs to the pin, not the canvas.
func (v *Viewer) click(p gg.Point) {
	if id, ok := v.overlay.HitTest(p); ok {
		v.log.Debug("canvas: pin clicked", "annotation", id)
		return
	}
	v.AddMarker(v.vp.Camera().ToContent(p))
}

// HandleScroll zooms about the pointer for a wheel event in surface
// coordinates. Wheel events outside the canvas are ignored.
func (v *Viewer) HandleScroll(ev gpucontext.ScrollEvent) {
	if !v.inViewport(gg.Pt(ev.X, ev.Y)) {
		return
	}
	ev.X -= v.origin.X
	ev.Y -= v.origin.Y
	v.commitIf(v.input.HandleScroll(ev))
}

// HandleGesture applies a platform pinch/pan gesture in surface coordinates.
func (v *Viewer) HandleGesture(ev gpucontext.GestureEvent) {
	ev.Center.X -= v.origin.X
	ev.Center.Y -= v.origin.Y
	v.commitIf(v.input.HandleGesture(ev))
}

// Capabilities reports which event streams Attach connected.
type Capabilities struct {
	Pointer bool
	Scroll  bool
	Gesture bool
}

// Attach registers the viewer's handlers on an event source. Pointer,
// detailed scroll and gesture support are detected by type assertion; a
// plain gpucontext.EventSource still provides wheel zoom about the last
// pointer position.
func (v *Viewer) Attach(source any) Capabilities {
	var c Capabilities
	if ps, ok := source.(gpucontext.PointerEventSource); ok {
		ps.OnPointer(v.HandlePointer)
		c.Pointer = true
	}
	if gs, ok := source.(gpucontext.GestureEventSource); ok {
		v.input.SetGestureSupport(true)
		gs.OnGesture(v.HandleGesture)
		c.Gesture = true
	}
	if ss, ok := source.(gpucontext.ScrollEventSource); ok {
		ss.OnScrollEvent(v.HandleScroll)
		c.Scroll = true
	} else if es, ok := source.(gpucontext.EventSource); ok {
		es.OnScroll(func(_, dy float64) {
			p := v.bridge.Pointer()
			v.HandleScroll(gpucontext.ScrollEvent{X: p.X, Y: p.Y, DeltaY: dy, DeltaMode: gpucontext.ScrollDeltaLine})
		})
		c.Scroll = true
	}
	v.log.Debug("canvas: attached", "pointer", c.Pointer, "scroll", c.Scroll, "gesture", c.Gesture)
	return c
}

// CommentAdded attaches the content-space position of the last pointer
// to a comment being created.
func (v *Viewer) CommentAdded(ev CommentAdder) CommentContext {
	return v.bridge.Annotate(ev, v.vp.Camera())
}

// RenderAnnotations creates pins for annotations not yet on the overlay
// and redraws if any were added. Failing annotations are logged and
// skipped. It returns the number of pins created.
func (v *Viewer) RenderAnnotations(annotations []Annotation) int {
	created, err := v.bridge.Render(annotations)
	if err != nil {
		v.log.Warn("canvas: some annotations were skipped", "err", err)
	}
	if created > 0 {
		v.Render()
	}
	return created
}

// Post queues an annotation list for the UI thread. It never blocks: if
// the queue is full the oldest pending list is dropped, since every
// delivery carries the complete list. Safe for concurrent use.
func (v *Viewer) Post(annotations []Annotation) {
	for {
		select {
		case v.inbox <- annotations:
			return
		default:
		}
		select {
		case <-v.inbox:
		default:
		}
	}
}

// Drain renders every queued annotation list and returns the number of
// pins created.
func (v *Viewer) Drain() int {
	created := 0
	for {
		select {
		case list := <-v.inbox:
			created += v.RenderAnnotations(list)
		default:
			return created
		}
	}
}

// EncodePNG writes the current frame as PNG.
func (v *Viewer) EncodePNG(w io.Writer) error { return v.renderer.EncodePNG(w) }

// SavePNG writes the current frame to a PNG file.
func (v *Viewer) SavePNG(path string) error { return v.renderer.SavePNG(path) }
