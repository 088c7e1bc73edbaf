// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/truncio

package truncio

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrNilReader       = errors.New("reader is nil")
	ErrNegativeLength  = errors.New("length must be non-negative")
	ErrEmptySentinel   = errors.New("sentinel is empty")
	ErrMissingSentinel = errors.New("stream exhausted before sentinel")
	ErrSeekUnsupported = errors.New("underlying reader does not support seeking")
	ErrPeekUnsupported = errors.New("underlying reader does not support peeking")
	ErrNotMarked       = errors.New("reset without a prior mark")
	ErrInvalidWhence   = errors.New("invalid seek whence")
)
