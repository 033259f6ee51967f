// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package collab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/canvas"
)

// Sentinel errors.
var (
	// ErrMissingAPIKey is returned when a session is started without an API key.
	ErrMissingAPIKey = errors.New("collab: missing API key")

	// ErrNotInitialized is returned by client calls made before Initialize.
	ErrNotInitialized = errors.New("collab: client not initialized")

	// ErrMissingUserID is returned when identifying a user without an id.
	ErrMissingUserID = errors.New("collab: user has no id")

	// ErrNoDocument is returned when comments are added before a document is set.
	ErrNoDocument = errors.New("collab: no document set")
)

// Default document the canvas comments live in.
const (
	DefaultDocumentID   = "canvas"
	DefaultDocumentName = "canvas"
)

// User is the identity presented to the collaboration service.
type User struct {
	UserID         string `json:"userId" toml:"id" yaml:"userId"`
	Name           string `json:"name" toml:"name" yaml:"name"`
	Email          string `json:"email,omitempty" toml:"email" yaml:"email,omitempty"`
	PhotoURL       string `json:"photoUrl,omitempty" toml:"photo_url" yaml:"photoUrl,omitempty"`
	OrganizationID string `json:"organizationId,omitempty" toml:"organization_id" yaml:"organizationId,omitempty"`
}

// Config describes one collaboration session.
type Config struct {
	APIKey       string
	User         *User // nil: anonymous session
	DocumentID   string
	DocumentName string
	DarkMode     bool
}

// DefaultConfig returns a session on the default document in dark mode.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:       apiKey,
		DocumentID:   DefaultDocumentID,
		DocumentName: DefaultDocumentName,
		DarkMode:     true,
	}
}

// CommentAddEvent is fired when a user starts a new comment. Handlers
// attach the comment's canvas context with AddContext.
type CommentAddEvent struct {
	Text    string
	context *canvas.CommentContext
}

// AddContext attaches ctx to the comment being created.
func (e *CommentAddEvent) AddContext(ctx canvas.CommentContext) {
	e.context = &ctx
}

// Context returns the attached context, or nil if no handler added one.
func (e *CommentAddEvent) Context() *canvas.CommentContext { return e.context }

// CommentElement is the comment surface of the service.
type CommentElement interface {
	// OnCommentAdd registers fn for new comments and returns a function
	// that removes it.
	OnCommentAdd(fn func(*CommentAddEvent)) (cancel func())

	// SubscribeAnnotations registers fn for annotation updates. Every
	// delivery carries the complete list. The returned function
	// unsubscribes.
	SubscribeAnnotations(fn func([]canvas.Annotation)) (cancel func())
}

// Client is a collaboration service client.
type Client interface {
	Initialize(ctx context.Context, apiKey string) error
	Identify(ctx context.Context, user User) error
	SetDocument(id, name string) error
	SetDarkMode(enabled bool)
	CommentElement() CommentElement
}

// Start bootstraps a session on c and returns its comment element.
func Start(ctx context.Context, c Client, cfg Config) (CommentElement, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.DocumentID == "" {
		cfg.DocumentID = DefaultDocumentID
	}
	if cfg.DocumentName == "" {
		cfg.DocumentName = cfg.DocumentID
	}

	if err := c.Initialize(ctx, cfg.APIKey); err != nil {
		return nil, fmt.Errorf("collab: initialize: %w", err)
	}
	if cfg.User != nil {
		if err := c.Identify(ctx, *cfg.User); err != nil {
			return nil, fmt.Errorf("collab: identify %q: %w", cfg.User.UserID, err)
		}
	}
	if err := c.SetDocument(cfg.DocumentID, cfg.DocumentName); err != nil {
		return nil, fmt.Errorf("collab: set document %q: %w", cfg.DocumentID, err)
	}
	c.SetDarkMode(cfg.DarkMode)
	return c.CommentElement(), nil
}

// Bind routes comment creation on el to v and forwards annotation
// deliveries to v.Post. The returned function detaches both.
//
// Comment-add handlers touch viewer state, so comments must be created on
// the viewer's goroutine. Annotation deliveries may arrive on any
// goroutine; call v.Drain on the viewer's goroutine to apply them.
func Bind(el CommentElement, v *canvas.Viewer, log *slog.Logger) (cancel func()) {
	if log == nil {
		log = canvas.Logger()
	}
	stopAdd := el.OnCommentAdd(func(ev *CommentAddEvent) {
		v.CommentAdded(ev)
	})
	stopSub := el.SubscribeAnnotations(func(list []canvas.Annotation) {
		log.Debug("collab: annotations delivered", "count", len(list))
		v.Post(list)
	})
	return func() {
		stopAdd()
		stopSub()
	}
}
