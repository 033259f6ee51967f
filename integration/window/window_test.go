// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/collab"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

// The frame callback presents through the gogpu render target adapter.
var _ ggcanvas.RenderTarget = (*gogpu.ContextRenderTarget)(nil)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key    gpucontext.Key
		want   canvas.ToolbarAction
		wantOK bool
	}{
		{gpucontext.KeyEqual, canvas.ToolbarZoomIn, true},
		{gpucontext.KeyMinus, canvas.ToolbarZoomOut, true},
		{gpucontext.Key0, canvas.ToolbarReset, true},
		{gpucontext.KeyA, 0, false},
	}
	for _, tt := range tests {
		got, ok := keyAction(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("keyAction(%v) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

type pointerOnly struct {
	fn func(gpucontext.PointerEvent)
}

func (p *pointerOnly) OnPointer(fn func(gpucontext.PointerEvent)) { p.fn = fn }

func newHost(t *testing.T) (*host, *pointerOnly) {
	t.Helper()
	svc := collab.NewLocal(nil)
	el, err := collab.Start(context.Background(), svc, collab.DefaultConfig("key"))
	if err != nil {
		t.Fatal(err)
	}
	v, err := canvas.NewViewer()
	if err != nil {
		t.Fatal(err)
	}
	h := &host{log: canvas.Logger(), svc: svc, element: el}
	src := &pointerOnly{}
	if caps := h.attach(v, src); !caps.Pointer {
		t.Fatalf("caps = %+v", caps)
	}
	t.Cleanup(h.close)
	return h, src
}

func TestHost_KeysBeforeViewerIgnored(t *testing.T) {
	h := &host{}
	h.key(gpucontext.KeyEqual)
}

func TestHost_Shortcuts(t *testing.T) {
	h, _ := newHost(t)
	h.key(gpucontext.KeyEqual)
	if got := h.viewer.Camera().Scale; got != 1.05 {
		t.Errorf("scale = %v, want 1.05", got)
	}
	h.key(gpucontext.Key0)
	if h.viewer.Camera() != canvas.HomeCamera {
		t.Errorf("camera = %+v, want home", h.viewer.Camera())
	}
}

func TestHost_CommentKeyCreatesPin(t *testing.T) {
	h, src := newHost(t)
	h.dirty()

	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerMove, X: 400, Y: 290, PointerType: gpucontext.PointerTypeMouse})
	h.key(gpucontext.KeyC)

	if !h.dirty() {
		t.Error("new pin was not reported as a change")
	}
	if n := h.viewer.Overlay().Len(); n != 1 {
		t.Fatalf("overlay has %d pins, want 1", n)
	}
	pin := h.viewer.Overlay().Pins()[0]
	if pin.Position.X != 500 || pin.Position.Y != 330 {
		t.Errorf("pin at %v, want (500, 330)", pin.Position)
	}
	if h.dirty() {
		t.Error("unchanged frame reported as dirty")
	}
}
