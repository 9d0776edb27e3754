// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/rendergraph"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when Builder is called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// RenderBackend supplies the physical resource builder a render graph
// allocates from. Backends are registered via Register and selected with
// Get or Default.
type RenderBackend interface {
	// Name returns the backend identifier (e.g. "software", "noop").
	Name() string

	// Init acquires the backend's device. It must be called before
	// Builder.
	Init() error

	// Close releases the device. Resources built by the backend must be
	// disposed first.
	Close()

	// Builder returns the builder creating physical resources.
	Builder() (rendergraph.Builder, error)
}
