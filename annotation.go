// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gogpu/gg"
)

// CommentTypeManual marks comments anchored by clicking on the canvas.
const CommentTypeManual = "manual"

// DefaultCommentConfigID is the canvasCommentConfig id sent with new comments.
const DefaultCommentConfigID = "sample-canvas-comment"

// Position is a content-space coordinate in the annotation payload.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// CanvasCommentConfig anchors a comment on the canvas.
type CanvasCommentConfig struct {
	ID       string   `json:"id" yaml:"id"`
	Position Position `json:"position" yaml:"position"`
}

// CommentContext is the opaque context attached to a new comment and
// returned with every annotation that carries it.
type CommentContext struct {
	CanvasCommentConfig CanvasCommentConfig `json:"canvasCommentConfig" yaml:"canvasCommentConfig"`
	CommentType         string              `json:"commentType" yaml:"commentType"`
}

// Annotation is an existing comment as delivered by the collaboration SDK.
// Only the id and the stored canvas position are read.
type Annotation struct {
	AnnotationID string          `json:"annotationId" yaml:"annotationId"`
	Context      *CommentContext `json:"context,omitempty" yaml:"context,omitempty"`
}

// CommentAdder is the comment-creation event of the collaboration SDK.
type CommentAdder interface {
	AddContext(ctx CommentContext)
}

// PinFactory builds the overlay element for an annotation. index is the
// 1-based position of the pin in creation order.
type PinFactory func(a Annotation, index int) (Pin, error)

var pinColor = gg.Hex("#625DF5")

// DefaultPinFactory places a numbered pin at the annotation's stored position.
func DefaultPinFactory(a Annotation, index int) (Pin, error) {
	pos := a.Context.CanvasCommentConfig.Position
	return Pin{
		ID:       a.AnnotationID,
		Position: gg.Pt(pos.X, pos.Y),
		Label:    strconv.Itoa(index),
		Color:    pinColor,
	}, nil
}

// Bridge connects the canvas to the external annotation layer.
//
// Outbound it turns the last pointer position into a content-space comment
// context. Inbound it renders pins for delivered annotations, at most one
// per annotation id.
type Bridge struct {
	overlay   *Overlay
	factory   PinFactory
	commentID string
	log       *slog.Logger

	pointer gg.Point // surface coordinates
}

// NewBridge creates a bridge rendering pins into overlay.
func NewBridge(overlay *Overlay, factory PinFactory, commentID string, log *slog.Logger) *Bridge {
	if factory == nil {
		factory = DefaultPinFactory
	}
	if commentID == "" {
		commentID = DefaultCommentConfigID
	}
	if log == nil {
		log = Logger()
	}
	return &Bridge{overlay: overlay, factory: factory, commentID: commentID, log: log}
}

// TrackPointer records the latest pointer position in surface coordinates.
func (b *Bridge) TrackPointer(x, y float64) {
	b.pointer = gg.Pt(x, y)
}

// Pointer returns the last tracked pointer position.
func (b *Bridge) Pointer() gg.Point { return b.pointer }

// CommentContext converts the last pointer position into the context for
// a new comment:
//
//	content = (pointer - overlayOrigin - offset) / scale
//
// The tracked pointer is reset afterwards.
func (b *Bridge) CommentContext(c Camera) CommentContext {
	p := c.ToContent(b.pointer.Sub(b.overlay.Origin()))
	b.pointer = gg.Point{}
	return CommentContext{
		CanvasCommentConfig: CanvasCommentConfig{
			ID:       b.commentID,
			Position: Position{X: p.X, Y: p.Y},
		},
		CommentType: CommentTypeManual,
	}
}

// Annotate attaches the comment context for the current pointer to ev.
func (b *Bridge) Annotate(ev CommentAdder, c Camera) CommentContext {
	ctx := b.CommentContext(c)
	ev.AddContext(ctx)
	b.log.Info("canvas: comment anchored",
		"id", ctx.CanvasCommentConfig.ID, "x", ctx.CanvasCommentConfig.Position.X, "y", ctx.CanvasCommentConfig.Position.Y)
	return ctx
}

// Render creates pins for annotations that do not have one yet. Pins are
// placed at the stored content-space position, never re-derived from the
// current camera.
//
// Annotations without a canvas context are skipped silently. Any other
// failure affects only that annotation: it is logged, collected into the
// returned error and the rest of the batch is still rendered.
func (b *Bridge) Render(annotations []Annotation) (created int, err error) {
	var errs []error
	for _, a := range annotations {
		if a.Context == nil {
			continue
		}
		if b.overlay.Has(a.AnnotationID) {
			continue
		}
		if perr := b.renderPin(a); perr != nil {
			b.log.Error("canvas: annotation pin failed", "annotation", a.AnnotationID, "err", perr)
			errs = append(errs, perr)
			continue
		}
		created++
	}
	if created > 0 {
		b.log.Info("canvas: pins created", "count", created, "total", b.overlay.Len())
	}
	return created, errors.Join(errs...)
}

func (b *Bridge) renderPin(a Annotation) (err error) {
	if a.AnnotationID == "" {
		return ErrEmptyID
	}
	pos := a.Context.CanvasCommentConfig.Position
	if !finite(pos.X) || !finite(pos.Y) {
		return fmt.Errorf("%w: %q at (%v, %v)", ErrInvalidPosition, a.AnnotationID, pos.X, pos.Y)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("canvas: pin factory panicked for %q: %v", a.AnnotationID, r)
		}
	}()
	pin, err := b.factory(a, b.overlay.Len()+1)
	if err != nil {
		return fmt.Errorf("canvas: build pin %q: %w", a.AnnotationID, err)
	}
	pin.ID = a.AnnotationID
	b.overlay.Add(pin)
	return nil
}
