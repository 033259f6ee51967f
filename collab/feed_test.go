// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package collab

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/canvas"
)

const feedJSON = `[
  {"annotationId": "a1", "context": {"canvasCommentConfig": {"id": "sample-canvas-comment", "position": {"x": 320, "y": 350}}, "commentType": "manual"}},
  {"annotationId": "a2"}
]`

func TestFileFeed_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	if err := os.WriteFile(path, []byte(feedJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	list, err := NewFileFeed(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Context == nil || list[0].Context.CanvasCommentConfig.Position != (canvas.Position{X: 320, Y: 350}) {
		t.Errorf("first annotation = %+v", list[0])
	}
	if list[1].Context != nil {
		t.Errorf("second annotation has a context: %+v", list[1].Context)
	}
}

func TestFileFeed_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewFileFeed(filepath.Join(dir, "missing.json"), nil).Load(); err == nil {
		t.Error("missing file: expected error")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"annotationId":`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileFeed(bad, nil).Load(); err == nil {
		t.Error("truncated file: expected error")
	}
}

func TestFileFeed_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	if err := os.WriteFile(path, []byte(`[{"annotationId": "a1"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan []canvas.Annotation, 16)
	done := make(chan error, 1)
	go func() {
		done <- NewFileFeed(path, nil).Run(ctx, func(list []canvas.Annotation) { got <- list })
	}()

	wait := func(n int) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case list := <-got:
				if len(list) == n {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for a delivery of %d annotations", n)
			}
		}
	}
	wait(1)

	if err := os.WriteFile(path, []byte(`[{"annotationId": "a1"}, {"annotationId": "a2"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	wait(2)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
