package canvas

import (
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// ViewerOption configures a Viewer during creation.
//
// Example:
//
//	// Default 800x500 surface with a toolbar strip
//	v, err := canvas.NewViewer()
//
//	// Focused mode on a caller-owned context
//	v, err := canvas.NewViewer(
//	    canvas.WithContext(dc),
//	    canvas.WithFocused(true),
//	)
type ViewerOption func(*viewerOptions)

// viewerOptions holds optional configuration for Viewer creation.
type viewerOptions struct {
	surface        Size
	context        *gg.Context
	focused        bool
	logger         *slog.Logger
	panEnabled     bool
	zoomEnabled    bool
	dragThreshold  float64
	zoomIntensity  float64
	background     gg.RGBA
	border         gg.RGBA
	face           text.Face
	pinFactory     PinFactory
	commentID      string
	inboxSize      int
	gestureSupport bool
}

// defaultOptions returns the default viewer options.
func defaultOptions() viewerOptions {
	return viewerOptions{
		surface:       Size{Width: DefaultViewportSize.Width, Height: DefaultViewportSize.Height + ToolbarHeight},
		panEnabled:    true,
		zoomEnabled:   true,
		dragThreshold: DefaultDragThreshold,
		zoomIntensity: DefaultZoomIntensity,
		background:    gg.Hex("#1E1E1E"),
		border:        gg.Transparent,
		pinFactory:    DefaultPinFactory,
		commentID:     DefaultCommentConfigID,
		inboxSize:     16,
	}
}

// WithSurfaceSize sets the size of the whole drawing surface, toolbar
// included. Ignored when WithContext is given.
func WithSurfaceSize(width, height float64) ViewerOption {
	return func(o *viewerOptions) {
		o.surface = Size{Width: width, Height: height}
	}
}

// WithContext makes the viewer draw into an existing gg context, for
// example the one owned by a ggcanvas.Canvas. The surface size is taken
// from the context.
func WithContext(dc *gg.Context) ViewerOption {
	return func(o *viewerOptions) {
		o.context = dc
	}
}

// WithFocused selects the focused display mode: no toolbar, the canvas
// fills the whole surface.
func WithFocused(focused bool) ViewerOption {
	return func(o *viewerOptions) {
		o.focused = focused
	}
}

// WithLogger sets the logger for this viewer. Defaults to Logger().
func WithLogger(l *slog.Logger) ViewerOption {
	return func(o *viewerOptions) {
		o.logger = l
	}
}

// WithPanEnabled enables or disables panning.
func WithPanEnabled(enabled bool) ViewerOption {
	return func(o *viewerOptions) {
		o.panEnabled = enabled
	}
}

// WithZoomEnabled enables or disables zooming.
func WithZoomEnabled(enabled bool) ViewerOption {
	return func(o *viewerOptions) {
		o.zoomEnabled = enabled
	}
}

// WithDragThreshold sets how far, in pixels, a pointer must move from where
// it went down before the gesture counts as a drag instead of a click.
func WithDragThreshold(px float64) ViewerOption {
	return func(o *viewerOptions) {
		if px >= 0 {
			o.dragThreshold = px
		}
	}
}

// WithZoomIntensity scales wheel and platform gesture zoom.
func WithZoomIntensity(k float64) ViewerOption {
	return func(o *viewerOptions) {
		if k > 0 {
			o.zoomIntensity = k
		}
	}
}

// WithBackground sets the colour the surface is cleared to before each frame.
func WithBackground(c gg.RGBA) ViewerOption {
	return func(o *viewerOptions) {
		o.background = c
	}
}

// WithBorderColor sets the colour of the content-bounds outline.
// The default is fully transparent.
func WithBorderColor(c gg.RGBA) ViewerOption {
	return func(o *viewerOptions) {
		o.border = c
	}
}

// WithFontFace enables text: toolbar labels and pin labels.
func WithFontFace(face text.Face) ViewerOption {
	return func(o *viewerOptions) {
		o.face = face
	}
}

// WithPinFactory overrides how annotation pins are built.
func WithPinFactory(f PinFactory) ViewerOption {
	return func(o *viewerOptions) {
		if f != nil {
			o.pinFactory = f
		}
	}
}

// WithCommentConfigID sets the id sent in the canvasCommentConfig of new comments.
func WithCommentConfigID(id string) ViewerOption {
	return func(o *viewerOptions) {
		if id != "" {
			o.commentID = id
		}
	}
}

// WithGestureSupport tells the viewer that pinch and two-finger pan arrive
// as precomputed gesture events, so raw touch pairs are not tracked.
// Attach sets this automatically for sources that deliver gestures.
func WithGestureSupport(enabled bool) ViewerOption {
	return func(o *viewerOptions) {
		o.gestureSupport = enabled
	}
}
