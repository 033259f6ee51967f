// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package collab

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/canvas"
	"github.com/google/uuid"
)

// Comment is a comment stored by Local.
type Comment struct {
	Annotation canvas.Annotation
	Text       string
	Author     *User
	CreatedAt  time.Time
}

// Local is an in-process collaboration service. It keeps comments in
// memory, assigns UUIDs to new annotations and delivers the full list to
// subscribers after every change.
//
// Local is safe for concurrent use. Handlers run on the goroutine that
// triggered them, without Local's lock held.
type Local struct {
	log *slog.Logger

	mu          sync.Mutex
	initialized bool
	apiKey      string
	user        *User
	documentID  string
	darkMode    bool
	comments    []Comment
	nextHandler int
	onAdd       map[int]func(*CommentAddEvent)
	subscribers map[int]func([]canvas.Annotation)
}

// NewLocal creates an empty in-process service. A nil logger uses
// canvas.Logger().
func NewLocal(log *slog.Logger) *Local {
	if log == nil {
		log = canvas.Logger()
	}
	return &Local{
		log:         log,
		onAdd:       make(map[int]func(*CommentAddEvent)),
		subscribers: make(map[int]func([]canvas.Annotation)),
	}
}

// Initialize implements Client.
func (l *Local) Initialize(ctx context.Context, apiKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if apiKey == "" {
		return ErrMissingAPIKey
	}
	l.mu.Lock()
	l.initialized, l.apiKey = true, apiKey
	l.mu.Unlock()
	l.log.Info("collab: initialized")
	return nil
}

// Identify implements Client.
func (l *Local) Identify(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user.UserID == "" {
		return ErrMissingUserID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.initialized {
		return ErrNotInitialized
	}
	l.user = &user
	l.log.Info("collab: user identified", "user", user.UserID)
	return nil
}

// SetDocument implements Client.
func (l *Local) SetDocument(id, name string) error {
	if id == "" {
		return fmt.Errorf("collab: empty document id")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.initialized {
		return ErrNotInitialized
	}
	l.documentID = id
	l.log.Info("collab: document set", "id", id, "name", name)
	return nil
}

// SetDarkMode implements Client.
func (l *Local) SetDarkMode(enabled bool) {
	l.mu.Lock()
	l.darkMode = enabled
	l.mu.Unlock()
}

// DarkMode reports the current dark mode setting.
func (l *Local) DarkMode() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.darkMode
}

// Document returns the current document id.
func (l *Local) Document() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.documentID
}

// User returns the identified user, or nil.
func (l *Local) User() *User {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.user == nil {
		return nil
	}
	u := *l.user
	return &u
}

// CommentElement implements Client. Local is its own comment element.
func (l *Local) CommentElement() CommentElement { return l }

// OnCommentAdd implements CommentElement.
func (l *Local) OnCommentAdd(fn func(*CommentAddEvent)) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextHandler
	l.nextHandler++
	l.onAdd[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.onAdd, id)
		l.mu.Unlock()
	}
}

// SubscribeAnnotations implements CommentElement. If annotations already
// exist, fn receives the current list before SubscribeAnnotations returns.
func (l *Local) SubscribeAnnotations(fn func([]canvas.Annotation)) (cancel func()) {
	l.mu.Lock()
	id := l.nextHandler
	l.nextHandler++
	l.subscribers[id] = fn
	current := l.annotationsLocked()
	l.mu.Unlock()

	if len(current) > 0 {
		fn(current)
	}
	return func() {
		l.mu.Lock()
		delete(l.subscribers, id)
		l.mu.Unlock()
	}
}

// AddComment creates a comment. Comment-add handlers run first and may
// attach a canvas context; the new annotation is then published to all
// subscribers.
func (l *Local) AddComment(text string) (canvas.Annotation, error) {
	l.mu.Lock()
	if l.documentID == "" {
		l.mu.Unlock()
		return canvas.Annotation{}, ErrNoDocument
	}
	handlers := sortedValues(l.onAdd)
	author := l.user
	l.mu.Unlock()

	ev := &CommentAddEvent{Text: text}
	for _, fn := range handlers {
		fn(ev)
	}

	a := canvas.Annotation{AnnotationID: uuid.NewString(), Context: ev.Context()}
	l.mu.Lock()
	l.comments = append(l.comments, Comment{
		Annotation: a,
		Text:       text,
		Author:     author,
		CreatedAt:  time.Now(),
	})
	l.mu.Unlock()

	l.log.Info("collab: comment added", "annotation", a.AnnotationID, "anchored", a.Context != nil)
	l.publish()
	return a, nil
}

// Load replaces the stored annotations, for example with the contents of a
// feed file, and publishes them.
func (l *Local) Load(annotations []canvas.Annotation) {
	l.mu.Lock()
	l.comments = l.comments[:0]
	for _, a := range annotations {
		l.comments = append(l.comments, Comment{Annotation: a})
	}
	l.mu.Unlock()
	l.publish()
}

// Annotations returns the current annotation list.
func (l *Local) Annotations() []canvas.Annotation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.annotationsLocked()
}

// Comments returns a copy of the stored comments in creation order.
func (l *Local) Comments() []Comment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.comments)
}

func (l *Local) annotationsLocked() []canvas.Annotation {
	out := make([]canvas.Annotation, len(l.comments))
	for i, c := range l.comments {
		out[i] = c.Annotation
	}
	return out
}

func (l *Local) publish() {
	l.mu.Lock()
	subs := sortedValues(l.subscribers)
	list := l.annotationsLocked()
	l.mu.Unlock()
	for _, fn := range subs {
		fn(list)
	}
}

// sortedValues returns the handlers in registration order.
func sortedValues[F any](m map[int]F) []F {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]F, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
