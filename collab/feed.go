// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/canvas"
)

// FileFeed delivers the annotations stored in a JSON file. The file holds
// an array of annotation records:
//
//	[{"annotationId": "a1", "context": {"canvasCommentConfig": {...}, "commentType": "manual"}}]
type FileFeed struct {
	path string
	log  *slog.Logger
}

// NewFileFeed creates a feed for path. A nil logger uses canvas.Logger().
func NewFileFeed(path string, log *slog.Logger) *FileFeed {
	if log == nil {
		log = canvas.Logger()
	}
	return &FileFeed{path: filepath.Clean(path), log: log}
}

// Path returns the watched file.
func (f *FileFeed) Path() string { return f.path }

// Load reads and decodes the file.
func (f *FileFeed) Load() ([]canvas.Annotation, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("collab: read feed: %w", err)
	}
	var list []canvas.Annotation
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("collab: decode feed %s: %w", f.path, err)
	}
	return list, nil
}

// Run delivers the current list, then the full list again after every
// change to the file, until ctx is done. The directory is watched rather
// than the file so editors that replace the file by rename keep working.
//
// A change that cannot be decoded (for example a partially written file)
// is logged and skipped; the next write delivers again.
func (f *FileFeed) Run(ctx context.Context, deliver func([]canvas.Annotation)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("collab: create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("collab: watch %s: %w", filepath.Dir(f.path), err)
	}

	f.reload(deliver, true)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				f.log.Debug("collab: feed changed", "path", f.path, "op", ev.Op.String())
				f.reload(deliver, false)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.log.Warn("collab: feed watcher error", "path", f.path, "err", err)
		}
	}
}

func (f *FileFeed) reload(deliver func([]canvas.Annotation), initial bool) {
	list, err := f.Load()
	if err != nil {
		if initial && errors.Is(err, fs.ErrNotExist) {
			return
		}
		f.log.Warn("collab: feed skipped", "err", err)
		return
	}
	deliver(list)
}
