// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend/software"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU backend.
	BackendSoftware = "software"

	// BackendNoop is the name of the wgpu-hal noop device backend,
	// registered by importing backend/native.
	BackendNoop = "noop"
)

// SoftwareBackend allocates physical resources as CPU images.
type SoftwareBackend struct {
	builder *software.Builder
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init prepares the builder. Calling Init twice keeps the first builder.
func (b *SoftwareBackend) Init() error {
	if b.builder == nil {
		b.builder = software.NewBuilder()
	}
	return nil
}

// Close drops the builder.
func (b *SoftwareBackend) Close() {
	b.builder = nil
}

// Builder returns the software builder.
func (b *SoftwareBackend) Builder() (rendergraph.Builder, error) {
	if b.builder == nil {
		return nil, ErrNotInitialized
	}
	return b.builder, nil
}

// SoftwareBuilder returns the concrete builder for allocation statistics,
// or nil before Init.
func (b *SoftwareBackend) SoftwareBuilder() *software.Builder {
	return b.builder
}
