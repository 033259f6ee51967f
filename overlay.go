// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"github.com/gogpu/gg"
)

// PinRadius is the radius of an annotation pin in content units.
const PinRadius = 12

// Pin is an overlay element anchored at a content-space position.
// Pins are laid out unscaled; the overlay transform places them on screen.
type Pin struct {
	ID       string
	Position gg.Point
	Label    string
	Color    gg.RGBA
}

// Overlay is the retained layer that hosts annotation pins above the
// canvas. It carries a single transform that mirrors the camera, so pins
// stay aligned with canvas content across pan and zoom.
//
// Overlay is NOT safe for concurrent use.
type Overlay struct {
	origin    gg.Point
	transform gg.Matrix
	pins      map[string]*Pin
	order     []string
}

// NewOverlay creates an empty overlay whose top-left corner sits at origin
// on the surface.
func NewOverlay(origin gg.Point) *Overlay {
	return &Overlay{
		origin:    origin,
		transform: gg.Identity(),
		pins:      make(map[string]*Pin),
	}
}

// Sync applies the camera to the overlay transform.
func (o *Overlay) Sync(c Camera) {
	o.transform = c.Matrix()
}

// Transform returns the overlay transform relative to the overlay origin.
func (o *Overlay) Transform() gg.Matrix { return o.transform }

// Origin returns the overlay's top-left corner in surface coordinates.
func (o *Overlay) Origin() gg.Point { return o.origin }

// Has reports whether a pin with the given id exists.
func (o *Overlay) Has(id string) bool {
	_, ok := o.pins[id]
	return ok
}

// Add inserts p unless a pin with the same id already exists.
// It reports whether the pin was inserted.
func (o *Overlay) Add(p Pin) bool {
	if o.Has(p.ID) {
		return false
	}
	o.pins[p.ID] = &p
	o.order = append(o.order, p.ID)
	return true
}

// Len returns the number of pins.
func (o *Overlay) Len() int { return len(o.order) }

// Pins returns a copy of all pins in insertion order.
func (o *Overlay) Pins() []Pin {
	out := make([]Pin, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, *o.pins[id])
	}
	return out
}

// ScreenPosition returns where the pin anchor appears, in viewport
// coordinates.
func (o *Overlay) ScreenPosition(id string) (gg.Point, bool) {
	p, ok := o.pins[id]
	if !ok {
		return gg.Point{}, false
	}
	return o.transform.TransformPoint(p.Position), true
}

// HitTest returns the topmost pin under pt (viewport coordinates).
func (o *Overlay) HitTest(pt gg.Point) (string, bool) {
	local := o.transform.Invert().TransformPoint(pt)
	for i := len(o.order) - 1; i >= 0; i-- {
		p := o.pins[o.order[i]]
		if local.Sub(p.Position).LengthSquared() <= PinRadius*PinRadius {
			return p.ID, true
		}
	}
	return "", false
}

// draw composites the pins onto dc. The caller has already translated dc
// to the overlay origin.
func (o *Overlay) draw(dc *gg.Context, labels bool) {
	if len(o.order) == 0 {
		return
	}
	dc.Push()
	defer dc.Pop()
	dc.Transform(o.transform)
	for _, id := range o.order {
		p := o.pins[id]
		dc.SetColor(p.Color)
		dc.DrawCircle(p.Position.X, p.Position.Y, PinRadius)
		_ = dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(p.Position.X, p.Position.Y, PinRadius)
		_ = dc.Stroke()

		if labels && p.Label != "" {
			dc.DrawStringAnchored(p.Label, p.Position.X, p.Position.Y, 0.5, 0.5)
		}
	}
}
