// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window runs a canvas.Viewer in a gogpu window.
//
// Architecture:
//
//	gpucontext events → canvas.Viewer → gg.Context → ggcanvas.Canvas → window surface
//
// The viewer draws into the ggcanvas context whenever its camera, markers
// or pins change; each window frame drains pending annotation deliveries
// and uploads the canvas only when the viewer drew since the last frame.
package window

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/collab"
	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

// Config describes the window.
type Config struct {
	Title   string
	Width   int
	Height  int
	Viewer  []canvas.ViewerOption
	Session collab.Config
	// FeedPath, when set, is watched for annotation updates.
	FeedPath string
	Log      *slog.Logger
}

// host holds the per-window state shared by the gogpu callbacks. All
// methods run on the UI thread.
type host struct {
	log       *slog.Logger
	svc       *collab.Local
	element   collab.CommentElement
	viewer    *canvas.Viewer
	presented uint64
	unbind    func()
}

// keyAction maps keyboard shortcuts to toolbar actions: "=" zooms in,
// "-" zooms out and "0" resets.
func keyAction(key gpucontext.Key) (canvas.ToolbarAction, bool) {
	switch key {
	case gpucontext.KeyEqual:
		return canvas.ToolbarZoomIn, true
	case gpucontext.KeyMinus:
		return canvas.ToolbarZoomOut, true
	case gpucontext.Key0:
		return canvas.ToolbarReset, true
	}
	return 0, false
}

// attach connects a freshly created viewer to the event source and the
// collaboration session.
func (h *host) attach(v *canvas.Viewer, source any) canvas.Capabilities {
	h.viewer = v
	caps := v.Attach(source)
	h.unbind = collab.Bind(h.element, v, h.log)
	return caps
}

// key handles a key press. C creates a comment at the pointer.
func (h *host) key(key gpucontext.Key) {
	if h.viewer == nil {
		return
	}
	if a, ok := keyAction(key); ok {
		h.viewer.Apply(a)
		return
	}
	if key == gpucontext.KeyC {
		if _, err := h.svc.AddComment("comment"); err != nil {
			h.log.Warn("window: add comment", "err", err)
		}
	}
}

// dirty applies queued deliveries and reports whether the viewer drew
// since the last presented frame.
func (h *host) dirty() bool {
	h.viewer.Drain()
	if f := h.viewer.Frames(); f != h.presented {
		h.presented = f
		return true
	}
	return false
}

func (h *host) close() {
	if h.unbind != nil {
		h.unbind()
	}
}

// Run opens the window and blocks until it is closed. Cancelling ctx
// stops the annotation feed.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log
	if log == nil {
		log = canvas.Logger()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	svc := collab.NewLocal(log)
	el, err := collab.Start(ctx, svc, cfg.Session)
	if err != nil {
		return err
	}
	h := &host{log: log, svc: svc, element: el}
	defer h.close()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	var (
		cv        *ggcanvas.Canvas
		animToken *gogpu.AnimationToken
	)

	app.OnDraw(func(dc *gogpu.Context) {
		w, ht := dc.Width(), dc.Height()
		if w <= 0 || ht <= 0 {
			return
		}

		if cv == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			cv, err = ggcanvas.New(provider, w, ht)
			if err != nil {
				log.Error("window: create canvas", "err", err)
				return
			}
			opts := append(cfg.Viewer[:len(cfg.Viewer):len(cfg.Viewer)], canvas.WithContext(cv.Context()), canvas.WithLogger(log))
			v, verr := canvas.NewViewer(opts...)
			if verr != nil {
				log.Error("window: create viewer", "err", verr)
				return
			}
			var src any = app.EventSource()
			caps := h.attach(v, src)
			log.Info("window: ready", "backend", dc.Backend(), "width", w, "height", ht,
				"pointer", caps.Pointer, "scroll", caps.Scroll, "gesture", caps.Gesture)

			if cfg.FeedPath != "" {
				feed := collab.NewFileFeed(cfg.FeedPath, log)
				go func() {
					if ferr := feed.Run(ctx, h.viewer.Post); ferr != nil {
						log.Warn("window: annotation feed stopped", "err", ferr)
					}
				}()
			}
			// Render at VSync while the window is open so input and
			// feed deliveries are presented without polling.
			animToken = app.StartAnimation()
		}

		if cw, ch := cv.Size(); cw != w || ch != ht {
			if rerr := cv.Resize(w, ht); rerr != nil {
				log.Warn("window: resize canvas", "err", rerr)
			} else if rerr := h.viewer.Resize(w, ht); rerr != nil {
				log.Warn("window: resize viewer", "err", rerr)
			}
		}

		if h.dirty() {
			cv.MarkDirty()
		}
		if rerr := cv.Render(dc.RenderTarget()); rerr != nil {
			log.Warn("window: present", "err", rerr)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		h.key(key)
	})

	app.OnClose(func() {
		cancel()
		if animToken != nil {
			animToken.Stop()
		}
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
