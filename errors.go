// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "errors"

// Common errors returned by canvas operations.
var (
	// ErrInvalidViewport is returned when a viewport width or height is not positive.
	ErrInvalidViewport = errors.New("canvas: invalid viewport size")

	// ErrInvalidPosition is returned for an annotation whose stored position is not finite.
	ErrInvalidPosition = errors.New("canvas: annotation position is not finite")

	// ErrEmptyID is returned for an annotation without an id.
	ErrEmptyID = errors.New("canvas: annotation id is empty")
)
