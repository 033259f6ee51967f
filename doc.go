// Package canvas provides a pannable, zoomable 2D canvas viewer with an
// annotation overlay.
//
// # Overview
//
// A Viewer draws a fixed scene and user-placed markers onto a gg.Context
// through a camera (scale plus offset). Above the canvas sits an overlay
// of annotation pins that follows the same camera, so comments attached
// by a collaboration service stay pinned to the content they refer to.
//
// # Quick Start
//
//	import "github.com/gogpu/canvas"
//
//	v, err := canvas.NewViewer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wheel zoom about the pointer, then save the frame
//	v.HandleScroll(gpucontext.ScrollEvent{X: 400, Y: 290, DeltaY: -120})
//	v.SavePNG("canvas.png")
//
// # Coordinate Spaces
//
// Three spaces are involved:
//   - Surface: pixels of the whole drawing surface, toolbar included
//   - Viewport: surface shifted by the canvas origin (the toolbar height,
//     or zero in focused mode)
//   - Content: the logical 1000x720 drawing, mapped to viewport space by
//     screen = offset + scale*content
//
// Input events are given in surface coordinates. Markers, annotation
// positions and the decorative scene are in content space.
//
// # Camera
//
// The scale is clamped to [MinScale, MaxScale]. Each offset is clamped to
// [-max(0, content*scale - viewport), 0] so the content never leaves a gap
// at the viewport edge. Zoom keeps the content point under the pivot fixed.
//
// # Annotations
//
// The Bridge converts the last pointer position into the content-space
// context of a new comment, and turns delivered annotations into overlay
// pins. Pins are created once per annotation id; deliveries repeat the
// full list and are safe to apply any number of times.
//
// # Threading
//
// A Viewer is used from one goroutine, normally the UI thread. Annotation
// feeds running elsewhere hand their lists over with Viewer.Post; the UI
// thread applies them with Viewer.Drain.
//
// # Logging
//
// The package logs through log/slog and is silent by default. Use
// SetLogger, or WithLogger for a single viewer.
package canvas
