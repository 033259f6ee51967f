// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package collab connects a canvas.Viewer to a collaboration service that
// owns comments and annotations.
//
// The service is reached through the Client interface. Start runs the
// session bootstrap in the order the service expects: initialise with an
// API key, identify the user, select the document, switch to dark mode.
// Bind then routes comment creation to the viewer and hands annotation
// deliveries over with Viewer.Post.
//
// Local is an in-process Client used by the canvasview tool and by tests.
// FileFeed watches a JSON file of annotations and re-delivers the whole
// list whenever it changes.
package collab
