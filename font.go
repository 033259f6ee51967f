// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LabelSize is the font size used for toolbar and pin labels.
const LabelSize = 13

var labelSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// DefaultFace returns the embedded Go Regular face at size, for use with
// WithFontFace.
func DefaultFace(size float64) (text.Face, error) {
	src, err := labelSource()
	if err != nil {
		return nil, fmt.Errorf("canvas: load label font: %w", err)
	}
	return src.Face(size), nil
}
