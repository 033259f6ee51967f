// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "github.com/gogpu/gg"

// ToolbarHeight is the height of the toolbar strip shown above the canvas
// outside focused mode.
const ToolbarHeight = 40

// ToolbarAction identifies a toolbar button.
type ToolbarAction uint8

const (
	// ToolbarZoomIn zooms one step in about the viewport centre.
	ToolbarZoomIn ToolbarAction = iota + 1
	// ToolbarZoomOut zooms one step out about the viewport centre.
	ToolbarZoomOut
	// ToolbarReset restores the home camera.
	ToolbarReset
)

// String returns the action name for debugging.
func (a ToolbarAction) String() string {
	switch a {
	case ToolbarZoomIn:
		return "ZoomIn"
	case ToolbarZoomOut:
		return "ZoomOut"
	case ToolbarReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

type toolbarButton struct {
	action ToolbarAction
	label  string
	x, w   float64
}

const (
	toolbarPad     = 4
	toolbarButtonH = ToolbarHeight - 2*toolbarPad
)

var toolbarButtons = []toolbarButton{
	{action: ToolbarZoomIn, label: "+", x: 8, w: 32},
	{action: ToolbarZoomOut, label: "-", x: 48, w: 32},
	{action: ToolbarReset, label: "Reset", x: 88, w: 64},
}

var (
	toolbarFill    = gg.Hex("#2B2B2B")
	toolbarKeyFill = gg.Hex("#3C3C3C")
)

// toolbarHit returns the button under p (surface coordinates).
func toolbarHit(p gg.Point) (ToolbarAction, bool) {
	if p.Y < toolbarPad || p.Y > toolbarPad+toolbarButtonH {
		return 0, false
	}
	for _, b := range toolbarButtons {
		if p.X >= b.x && p.X <= b.x+b.w {
			return b.action, true
		}
	}
	return 0, false
}

func drawToolbar(dc *gg.Context, width float64, labels bool) {
	dc.SetColor(toolbarFill)
	dc.DrawRectangle(0, 0, width, ToolbarHeight)
	_ = dc.Fill()

	for _, b := range toolbarButtons {
		dc.SetColor(toolbarKeyFill)
		dc.DrawRoundedRectangle(b.x, toolbarPad, b.w, toolbarButtonH, 6)
		_ = dc.Fill()
		if labels {
			dc.SetRGB(1, 1, 1)
			dc.DrawStringAnchored(b.label, b.x+b.w/2, ToolbarHeight/2, 0.5, 0.5)
		}
	}
}
