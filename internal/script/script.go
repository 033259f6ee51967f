// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package script replays recorded input against a canvas.Viewer.
//
// A script is a YAML document with a list of steps. Each step holds
// exactly one action:
//
//	steps:
//	  - click: {x: 400, y: 290}
//	  - drag: {from: {x: 400, y: 290}, to: {x: 300, y: 250}, steps: 4}
//	  - scroll: {x: 400, y: 290, dy: -120}
//	  - gesture: {x: 400, y: 290, zoom: 1.1}
//	  - toolbar: zoom-in
//	  - pointer: {type: move, x: 420, y: 300}
//	  - comment: "Check this corner"
//	  - annotations: [{annotationId: a1, context: {...}}]
//	  - resize: {width: 1024, height: 768}
//
// Coordinates are surface pixels.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"gopkg.in/yaml.v3"
)

// ErrNoCommenter is returned when a script adds a comment but no comment
// sink was configured.
var ErrNoCommenter = errors.New("script: comment step without a comment sink")

// Script is a parsed event script.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Point is a surface position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Step is one scripted action. Exactly one field is set.
type Step struct {
	Pointer     *PointerStep        `yaml:"pointer,omitempty"`
	Click       *Point              `yaml:"click,omitempty"`
	Drag        *DragStep           `yaml:"drag,omitempty"`
	Scroll      *ScrollStep         `yaml:"scroll,omitempty"`
	Gesture     *GestureStep        `yaml:"gesture,omitempty"`
	Toolbar     string              `yaml:"toolbar,omitempty"`
	Comment     string              `yaml:"comment,omitempty"`
	Annotations []canvas.Annotation `yaml:"annotations,omitempty"`
	Resize      *ResizeStep         `yaml:"resize,omitempty"`
}

// PointerStep is a raw pointer event.
type PointerStep struct {
	Type   string  `yaml:"type"` // down, up, move, cancel
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ID     int     `yaml:"id"`
	Kind   string  `yaml:"kind"`   // mouse (default), touch, pen
	Button string  `yaml:"button"` // left (default), middle, right
}

// DragStep presses at From, moves to To in Steps increments and releases.
type DragStep struct {
	From  Point `yaml:"from"`
	To    Point `yaml:"to"`
	Steps int   `yaml:"steps"`
}

// ScrollStep is a wheel event.
type ScrollStep struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	DX   float64 `yaml:"dx"`
	DY   float64 `yaml:"dy"`
	Mode string  `yaml:"mode"` // pixel (default), line, page
}

// GestureStep is a platform pinch/pan gesture.
type GestureStep struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Zoom     float64 `yaml:"zoom"`
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Pointers int     `yaml:"pointers"`
}

// ResizeStep resizes the surface.
type ResizeStep struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (s *Step) defaults() {
	if p := s.Pointer; p != nil {
		if p.ID == 0 {
			p.ID = 1
		}
		if p.Kind == "" {
			p.Kind = "mouse"
		}
		if p.Button == "" {
			p.Button = "left"
		}
	}
	if s.Drag != nil && s.Drag.Steps <= 0 {
		s.Drag.Steps = 1
	}
	if s.Scroll != nil && s.Scroll.Mode == "" {
		s.Scroll.Mode = "pixel"
	}
	if g := s.Gesture; g != nil {
		if g.Zoom == 0 {
			g.Zoom = 1
		}
		if g.Pointers == 0 {
			g.Pointers = 2
		}
	}
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Pointer != nil, s.Click != nil, s.Drag != nil, s.Scroll != nil,
		s.Gesture != nil, s.Toolbar != "", s.Comment != "", s.Annotations != nil, s.Resize != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		if n := st.actions(); n != 1 {
			return nil, fmt.Errorf("script: step %d: want exactly one action, got %d", i+1, n)
		}
		st.defaults()
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("script: step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Parse(data)
}

func (s Step) validate() error {
	if p := s.Pointer; p != nil {
		if _, err := pointerType(p.Type); err != nil {
			return err
		}
		if _, err := pointerKind(p.Kind); err != nil {
			return err
		}
		if _, err := button(p.Button); err != nil {
			return err
		}
	}
	if s.Scroll != nil {
		if _, err := deltaMode(s.Scroll.Mode); err != nil {
			return err
		}
	}
	if s.Toolbar != "" {
		if _, err := toolbarAction(s.Toolbar); err != nil {
			return err
		}
	}
	return nil
}

func pointerType(s string) (gpucontext.PointerEventType, error) {
	switch strings.ToLower(s) {
	case "down":
		return gpucontext.PointerDown, nil
	case "up":
		return gpucontext.PointerUp, nil
	case "move":
		return gpucontext.PointerMove, nil
	case "cancel":
		return gpucontext.PointerCancel, nil
	}
	return 0, fmt.Errorf("unknown pointer type %q", s)
}

func pointerKind(s string) (gpucontext.PointerType, error) {
	switch strings.ToLower(s) {
	case "mouse":
		return gpucontext.PointerTypeMouse, nil
	case "touch":
		return gpucontext.PointerTypeTouch, nil
	case "pen":
		return gpucontext.PointerTypePen, nil
	}
	return 0, fmt.Errorf("unknown pointer kind %q", s)
}

func button(s string) (gpucontext.Button, error) {
	switch strings.ToLower(s) {
	case "left":
		return gpucontext.ButtonLeft, nil
	case "middle":
		return gpucontext.ButtonMiddle, nil
	case "right":
		return gpucontext.ButtonRight, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func deltaMode(s string) (gpucontext.ScrollDeltaMode, error) {
	switch strings.ToLower(s) {
	case "pixel":
		return gpucontext.ScrollDeltaPixel, nil
	case "line":
		return gpucontext.ScrollDeltaLine, nil
	case "page":
		return gpucontext.ScrollDeltaPage, nil
	}
	return 0, fmt.Errorf("unknown scroll mode %q", s)
}

func toolbarAction(s string) (canvas.ToolbarAction, error) {
	switch strings.ToLower(s) {
	case "zoom-in", "zoomin", "+":
		return canvas.ToolbarZoomIn, nil
	case "zoom-out", "zoomout", "-":
		return canvas.ToolbarZoomOut, nil
	case "reset", "0":
		return canvas.ToolbarReset, nil
	}
	return 0, fmt.Errorf("unknown toolbar action %q", s)
}

// Commenter creates a comment at the last pointer position.
type Commenter interface {
	AddComment(text string) (canvas.Annotation, error)
}

// Replay applies the script to v. Comment steps go to c, which may be nil
// for scripts without comments. Queued annotation deliveries are drained
// after every step.
func (s *Script) Replay(v *canvas.Viewer, c Commenter) error {
	for i, st := range s.Steps {
		if err := st.apply(v, c); err != nil {
			return fmt.Errorf("script: step %d: %w", i+1, err)
		}
		v.Drain()
	}
	return nil
}

func (s Step) apply(v *canvas.Viewer, c Commenter) error {
	switch {
	case s.Pointer != nil:
		ev, err := s.Pointer.event()
		if err != nil {
			return err
		}
		v.HandlePointer(ev)
	case s.Click != nil:
		v.HandlePointer(mouseEvent(gpucontext.PointerMove, s.Click.X, s.Click.Y))
		v.HandlePointer(mouseEvent(gpucontext.PointerDown, s.Click.X, s.Click.Y))
		v.HandlePointer(mouseEvent(gpucontext.PointerUp, s.Click.X, s.Click.Y))
	case s.Drag != nil:
		d := s.Drag
		from, to := gg.Pt(d.From.X, d.From.Y), gg.Pt(d.To.X, d.To.Y)
		v.HandlePointer(mouseEvent(gpucontext.PointerDown, from.X, from.Y))
		for i := 1; i <= d.Steps; i++ {
			p := from.Lerp(to, float64(i)/float64(d.Steps))
			v.HandlePointer(mouseEvent(gpucontext.PointerMove, p.X, p.Y))
		}
		v.HandlePointer(mouseEvent(gpucontext.PointerUp, to.X, to.Y))
	case s.Scroll != nil:
		mode, err := deltaMode(s.Scroll.Mode)
		if err != nil {
			return err
		}
		v.HandleScroll(gpucontext.ScrollEvent{
			X: s.Scroll.X, Y: s.Scroll.Y,
			DeltaX: s.Scroll.DX, DeltaY: s.Scroll.DY,
			DeltaMode: mode,
		})
	case s.Gesture != nil:
		g := s.Gesture
		v.HandleGesture(gpucontext.GestureEvent{
			NumPointers:      g.Pointers,
			ZoomDelta:        g.Zoom,
			Center:           gpucontext.Point{X: g.X, Y: g.Y},
			TranslationDelta: gpucontext.Point{X: g.DX, Y: g.DY},
		})
	case s.Toolbar != "":
		a, err := toolbarAction(s.Toolbar)
		if err != nil {
			return err
		}
		v.Apply(a)
	case s.Comment != "":
		if c == nil {
			return ErrNoCommenter
		}
		if _, err := c.AddComment(s.Comment); err != nil {
			return err
		}
	case s.Annotations != nil:
		v.Post(s.Annotations)
	case s.Resize != nil:
		return v.Resize(s.Resize.Width, s.Resize.Height)
	}
	return nil
}

func (p PointerStep) event() (gpucontext.PointerEvent, error) {
	typ, err := pointerType(p.Type)
	if err != nil {
		return gpucontext.PointerEvent{}, err
	}
	kind, err := pointerKind(p.Kind)
	if err != nil {
		return gpucontext.PointerEvent{}, err
	}
	btn, err := button(p.Button)
	if err != nil {
		return gpucontext.PointerEvent{}, err
	}
	if typ == gpucontext.PointerMove {
		btn = gpucontext.ButtonNone
	}
	return gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   p.ID,
		X:           p.X,
		Y:           p.Y,
		PointerType: kind,
		IsPrimary:   p.ID == 1,
		Button:      btn,
	}, nil
}

func mouseEvent(typ gpucontext.PointerEventType, x, y float64) gpucontext.PointerEvent {
	btn := gpucontext.ButtonLeft
	if typ == gpucontext.PointerMove {
		btn = gpucontext.ButtonNone
	}
	return gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   1,
		X:           x,
		Y:           y,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
		Button:      btn,
	}
}
